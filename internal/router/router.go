package router

import (
	"net/http"
	"time"

	mem "caretrack/internal/adapters/storage/memory"
	"caretrack/internal/docs"
	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/history"
	"caretrack/internal/domain/restrictions"
	"caretrack/internal/domain/schedules"
	"caretrack/internal/middleware"
	"caretrack/internal/notify"
	"caretrack/internal/platform/clock"
	"caretrack/internal/platform/localtime"
	"caretrack/internal/platform/logger"
	"caretrack/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Store es lo que exponen los adapters de storage (memory, sqlstore, redisstore).
type Store interface {
	Schedules() schedules.Repository
	History() history.Repository
	Medications() catalog.Repository
	Restrictions() restrictions.Repository
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, in-memory.
	Store Store

	Logger     logger.Logger
	Clock      clock.Clock
	Zone       *localtime.Zone
	NearWindow time.Duration

	// Notifier recibe los cambios de schedules (el refresher de recordatorios).
	Notifier  schedules.ChangeNotifier
	Reminders notify.Reminders
	Inbox     *notify.Inbox
	Hub       *notify.Hub // nil = sin /notifications/stream

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	zone := opts.Zone
	if zone == nil {
		zone = localtime.New(nil, clk)
	}
	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}
	inbox := opts.Inbox
	if inbox == nil {
		inbox = notify.NewInbox(notify.PermissionDefault)
	}
	reminders := opts.Reminders
	if reminders == nil {
		reminders = noReminders{}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSAllowedOrigins, opts.CORSAllowCredentials))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	// Services por módulo
	schedulesSvc := schedules.NewService(store.Schedules(), schedules.Options{
		Clock:      clk,
		Notifier:   opts.Notifier,
		NearWindow: opts.NearWindow,
	})
	historySvc := history.NewService(store.History(), clk)
	catalogSvc := catalog.NewService(store.Medications())
	restrictionsSvc := restrictions.NewService(store.Restrictions())

	// Rutas por módulo. Con verifier configurado, todo exige token.
	r.Group(func(api chi.Router) {
		if opts.AuthVerifier != nil {
			api.Use(middleware.RequireClaims)
		}

		schedules.RegisterRoutes(api, schedulesSvc, zone)
		history.RegisterRoutes(api, historySvc, zone)
		catalog.RegisterRoutes(api, catalogSvc)
		restrictions.RegisterRoutes(api, restrictionsSvc)
		notify.RegisterRoutes(api, inbox, opts.Hub, reminders)
	})

	return r
}

type noReminders struct{}

func (noReminders) PermissionNeeded() bool { return false }
func (noReminders) Resync()                {}
