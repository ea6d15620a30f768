// Package reminders mantiene un timer por schedule activo y avisa al
// cuidador cuando vence cada dosis.
//
// El Engine nunca escribe en el store: trabaja sobre copias privadas de los
// schedules que recibe en Sync.
package reminders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"caretrack/internal/domain/schedules"
	"caretrack/internal/notify"
	"caretrack/internal/platform/clock"
	"caretrack/internal/platform/logger"
)

const DefaultDeliveryTimeout = 10 * time.Second

type Options struct {
	Clock           clock.Clock
	Logger          logger.Logger
	DeliveryTimeout time.Duration
}

type Engine struct {
	// mu serializa todas las transiciones (sync, disparo, stop).
	mu sync.Mutex

	clk     clock.Clock
	sink    notify.Sink
	log     logger.Logger
	timeout time.Duration

	timers  *Registry
	tracked map[string]*tracked

	permissionNeeded bool
	stopped          bool
}

type tracked struct {
	fingerprint string
	sched       schedules.Schedule // copia privada; LastTakenAt avanza con cada disparo
	lastFired   *time.Time
}

// Pending describe un timer armado.
type Pending struct {
	ScheduleID string
	DueAt      time.Time
}

func NewEngine(sink notify.Sink, opts Options) *Engine {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	timeout := opts.DeliveryTimeout
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}

	return &Engine{
		clk:     clk,
		sink:    sink,
		log:     log,
		timeout: timeout,
		timers:  NewRegistry(clk),
		tracked: map[string]*tracked{},
	}
}

// Sync reconcilia los timers con la lista actual de schedules.
// Los schedules sin cambios conservan su timer; los editados se re-arman y
// los que ya no están se cancelan. Sin permiso se cancela todo.
func (e *Engine) Sync(ctx context.Context, list []schedules.Schedule) {
	granted := e.sink.PermissionGranted(ctx)
	if !granted {
		var err error
		granted, err = e.sink.RequestPermission(ctx)
		if err != nil {
			e.log.Warn("notification permission request failed", logger.Err(err))
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}

	if !granted {
		if !e.permissionNeeded {
			e.log.Info("notification permission missing, reminders paused", map[string]any{"armed": e.timers.Len()})
		}
		e.timers.CancelAll()
		e.tracked = map[string]*tracked{}
		e.permissionNeeded = true
		return
	}
	e.permissionNeeded = false

	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		seen[s.ID] = struct{}{}
		fp := fingerprint(s)

		prev, ok := e.tracked[s.ID]
		if ok && prev.fingerprint == fp {
			continue
		}

		t := &tracked{fingerprint: fp, sched: s}
		if ok {
			t.lastFired = prev.lastFired
		}
		e.tracked[s.ID] = t
		e.armLocked(s.ID, t)
	}

	for id := range e.tracked {
		if _, ok := seen[id]; !ok {
			e.timers.Cancel(id)
			delete(e.tracked, id)
		}
	}
}

// armLocked arma la próxima ocurrencia del schedule, si existe.
// Nunca arma una ocurrencia igual o anterior a la última disparada.
func (e *Engine) armLocked(id string, t *tracked) {
	now := e.clk.Now()
	next, ok := schedules.NextDue(t.sched, now)
	if ok && t.lastFired != nil && !next.After(*t.lastFired) {
		next, ok = schedules.NextDue(t.sched, t.lastFired.Add(time.Nanosecond))
	}
	if !ok {
		e.timers.Cancel(id)
		return
	}

	e.timers.Arm(id, next, func(token uint64) { e.fire(id, token, next) })
}

func (e *Engine) fire(id string, token uint64, dueAt time.Time) {
	e.mu.Lock()
	if e.stopped || !e.timers.Claim(id, token) {
		e.mu.Unlock()
		return
	}
	t, ok := e.tracked[id]
	if !ok {
		e.mu.Unlock()
		return
	}

	n := buildNotification(t.sched, dueAt, e.clk.Now())

	// Re-armar antes de entregar: la entrega corre fuera del lock y un Sync
	// concurrente debe encontrar el estado ya avanzado.
	fired := dueAt
	t.lastFired = &fired
	t.sched.LastTakenAt = &fired
	e.armLocked(id, t)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	if err := e.sink.Show(ctx, n); err != nil {
		e.log.Warn("reminder delivery failed", map[string]any{
			"schedule_id": id,
			"key":         n.Key,
			"error":       err.Error(),
		})
		return
	}
	e.log.Info("reminder shown", map[string]any{"schedule_id": id, "due_at": dueAt})
}

// Stop cancela todos los timers; un Engine detenido no vuelve a armar.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopped = true
	e.timers.CancelAll()
	e.tracked = map[string]*tracked{}
}

func (e *Engine) PermissionNeeded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.permissionNeeded
}

// Live devuelve cuántos timers hay armados.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timers.Len()
}

// Pending lista los timers armados por instante de vencimiento.
func (e *Engine) Pending() []Pending {
	e.mu.Lock()
	out := make([]Pending, 0, e.timers.Len())
	for id := range e.tracked {
		if at, ok := e.timers.At(id); ok {
			out = append(out, Pending{ScheduleID: id, DueAt: at})
		}
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ScheduleID < out[j].ScheduleID
	})
	return out
}

func fingerprint(s schedules.Schedule) string {
	return fmt.Sprintf("%s|%s|%d|%d|%d|%d|%s",
		s.MedicationName, s.Dosage, s.Frequency, s.StartAt.UnixNano(),
		unixNanoOrZero(s.EndAt), unixNanoOrZero(s.LastTakenAt), s.Notes)
}

func unixNanoOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixNano()
}
