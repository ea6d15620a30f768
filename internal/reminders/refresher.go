package reminders

import (
	"context"
	"time"

	"caretrack/internal/domain/schedules"
	"caretrack/internal/platform/logger"
)

const DefaultRefreshInterval = time.Minute

// Lister es la fuente de schedules (el schedules.Service o un Repository).
type Lister interface {
	List(ctx context.Context) ([]schedules.Schedule, error)
}

// Refresher relee los schedules del store y re-sincroniza el Engine: en cada
// tick y cada vez que alguien avisa un cambio.
type Refresher struct {
	engine   *Engine
	source   Lister
	log      logger.Logger
	interval time.Duration
	trigger  chan struct{}
}

func NewRefresher(engine *Engine, source Lister, log logger.Logger, interval time.Duration) *Refresher {
	if log == nil {
		log = logger.Nop()
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		engine:   engine,
		source:   source,
		log:      log,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Start bloquea hasta que ctx termina; al salir detiene el Engine.
func (r *Refresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.engine.Stop()

	r.log.Info("reminder refresher started", map[string]any{"interval": r.interval.String()})

	r.refresh(ctx)
	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-r.trigger:
			r.refresh(ctx)
		case <-ctx.Done():
			r.log.Info("reminder refresher stopped", nil)
			return
		}
	}
}

// Trigger pide un refresh sin bloquear; varios avisos seguidos se juntan en uno.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// SyncNow relee y sincroniza en el goroutine actual.
func (r *Refresher) SyncNow(ctx context.Context) error {
	list, err := r.source.List(ctx)
	if err != nil {
		return err
	}
	r.engine.Sync(ctx, list)
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.SyncNow(ctx); err != nil {
		r.log.Error("failed to list schedules for reminders", logger.Err(err))
		return
	}
	r.log.Debug("reminders synced", map[string]any{"armed": r.engine.Live()})
}

// SchedulesChanged implementa schedules.ChangeNotifier.
func (r *Refresher) SchedulesChanged() { r.Trigger() }

// Resync y PermissionNeeded implementan notify.Reminders.
func (r *Refresher) Resync() { r.Trigger() }

func (r *Refresher) PermissionNeeded() bool { return r.engine.PermissionNeeded() }
