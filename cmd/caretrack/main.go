// @title caretrack API
// @version 1.0
// @description Horarios de medicación, historial de cuidados y recordatorios.
// @BasePath /
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"caretrack/internal/adapters/auth/jwtauth"
	mem "caretrack/internal/adapters/storage/memory"
	"caretrack/internal/adapters/storage/redisstore"
	"caretrack/internal/adapters/storage/sqlstore"
	"caretrack/internal/config"
	"caretrack/internal/notify"
	"caretrack/internal/platform/clock"
	"caretrack/internal/platform/httpclient"
	"caretrack/internal/platform/localtime"
	"caretrack/internal/platform/logger"
	"caretrack/internal/ports/auth"
	"caretrack/internal/reminders"
	"caretrack/internal/router"

	"golang.org/x/sync/errgroup"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", logger.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	clk := clock.Real{}

	zone, err := localtime.Load(cfg.App.TimeZone, clk)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var verifier auth.AuthVerifier
	if cfg.Auth.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(cfg.Auth.JWTSecret, clk)
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("JWT_SECRET not set, running in dev mode (X-Debug-User-ID)", nil)
	}

	// Canales de notificación: la bandeja y el stream siempre; NATS y webhook si están configurados.
	inbox := notify.NewInbox(notify.ParsePermission(cfg.Notify.Permission))
	hub := notify.NewHub(log, cfg.HTTP.CORSAllowedOrigins)
	defer hub.Close()

	channels := []notify.Channel{hub}
	if cfg.Notify.NATSURL != "" {
		nc, err := notify.ConnectNATS(cfg.Notify.NATSURL, cfg.Notify.NATSSubject, log)
		if err != nil {
			return err
		}
		defer nc.Close()
		channels = append(channels, nc)
	}
	if cfg.Notify.WebhookURL != "" {
		client, err := httpclient.New(httpclient.Options{})
		if err != nil {
			return err
		}
		channels = append(channels, notify.NewWebhookChannel(client, cfg.Notify.WebhookURL))
	}

	engine := reminders.NewEngine(notify.NewDispatcher(inbox, log, channels...), reminders.Options{
		Clock:  clk,
		Logger: log.With(map[string]any{"component": "reminders"}),
	})
	refresher := reminders.NewRefresher(engine, store.Schedules(), log, cfg.Notify.RefreshInterval)

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: router.NewRouter(router.Options{
			AuthVerifier:         verifier,
			Store:                store,
			Logger:               log,
			Clock:                clk,
			Zone:                 zone,
			NearWindow:           cfg.App.NearWindow,
			Notifier:             refresher,
			Reminders:            refresher,
			Inbox:                inbox,
			Hub:                  hub,
			CORSAllowedOrigins:   cfg.HTTP.CORSAllowedOrigins,
			CORSAllowCredentials: cfg.HTTP.CORSAllowCredentials,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		refresher.Start(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":      cfg.HTTP.Addr,
			"storage":   cfg.Storage.Backend,
			"time_zone": zone.Location().String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (router.Store, func(), error) {
	switch cfg.Backend {
	case config.StoragePostgres:
		db, err := sqlstore.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewStore(db), closer(db, log), nil

	case config.StorageSQLite:
		db, err := sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewStore(db), closer(db, log), nil

	case config.StorageRedis:
		rdb, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(rdb), closer(rdb, log), nil

	default:
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return mem.NewStore(), func() {}, nil
	}
}

func closer(c io.Closer, log logger.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("failed to close storage", logger.Err(err))
		}
	}
}

// issueToken imprime un token para un cuidador o familiar:
//
//	caretrack token -user ana -name "Ana" -ttl 720h
func issueToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	user := fs.String("user", "", "user id (sub)")
	name := fs.String("name", "", "nombre que aparece como autor en el historial")
	email := fs.String("email", "", "email")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "validez del token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	v, err := jwtauth.NewVerifier(cfg.Auth.JWTSecret, nil)
	if err != nil {
		return err
	}
	tok, err := v.Sign(auth.Claims{UserID: *user, Name: *name, Email: *email}, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
