package reminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"caretrack/internal/domain/schedules"
	"caretrack/internal/notify"
	"caretrack/internal/platform/clock"
)

var t0 = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type fakeSink struct {
	mu       sync.Mutex
	granted  bool
	showErr  error
	requests int
	shown    []notify.Notification
}

func (s *fakeSink) PermissionGranted(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granted
}

func (s *fakeSink) RequestPermission(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	return s.granted, nil
}

func (s *fakeSink) Show(ctx context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, n)
	return s.showErr
}

func (s *fakeSink) setGranted(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted = v
}

func (s *fakeSink) shownCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

// countingClock cuenta cuántos timers se armaron.
type countingClock struct {
	*clock.Fake
	arms int
}

func (c *countingClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.arms++
	return c.Fake.AfterFunc(d, f)
}

func newTestEngine() (*Engine, *fakeSink, *countingClock) {
	clk := &countingClock{Fake: clock.NewFake(t0)}
	sink := &fakeSink{granted: true}
	return NewEngine(sink, Options{Clock: clk}), sink, clk
}

func hourly(id string, start time.Time) schedules.Schedule {
	return schedules.Schedule{
		ID:             id,
		MedicationName: "Dipirona",
		Dosage:         "1g",
		Frequency:      time.Hour,
		StartAt:        start,
	}
}

func TestEngine_Sync_OneTimerPerSchedule(t *testing.T) {
	e, _, clk := newTestEngine()
	ctx := context.Background()

	s := hourly("1", t0.Add(30*time.Minute))
	e.Sync(ctx, []schedules.Schedule{s})

	// Cambio de frecuencia: el timer viejo se cancela antes de armar el nuevo.
	s.Frequency = 2 * time.Hour
	s.StartAt = t0.Add(90 * time.Minute)
	e.Sync(ctx, []schedules.Schedule{s})

	if e.Live() != 1 || clk.Pending() != 1 {
		t.Fatalf("expected exactly one timer, live=%d clock=%d", e.Live(), clk.Pending())
	}
	p := e.Pending()
	if !p[0].DueAt.Equal(t0.Add(90 * time.Minute)) {
		t.Fatalf("expected re-armed at new start, got %v", p[0].DueAt)
	}
}

func TestEngine_Sync_UnchangedScheduleKeepsTimer(t *testing.T) {
	e, _, clk := newTestEngine()
	ctx := context.Background()

	list := []schedules.Schedule{hourly("1", t0.Add(time.Hour)), hourly("2", t0.Add(2*time.Hour))}
	e.Sync(ctx, list)
	e.Sync(ctx, list)

	if clk.arms != 2 {
		t.Fatalf("expected timers to survive an identical sync, armed %d times", clk.arms)
	}

	// Quitar un schedule cancela solo su timer.
	e.Sync(ctx, list[:1])
	if e.Live() != 1 || clk.Pending() != 1 || clk.arms != 2 {
		t.Fatalf("expected only removed schedule cancelled, live=%d pending=%d arms=%d", e.Live(), clk.Pending(), clk.arms)
	}
}

func TestEngine_Fire_ShowsAndRearms(t *testing.T) {
	e, sink, clk := newTestEngine()

	s := hourly("abc", t0.Add(time.Hour))
	s.Notes = "Tomar com água"
	e.Sync(context.Background(), []schedules.Schedule{s})

	clk.Advance(time.Hour)

	if sink.shownCount() != 1 {
		t.Fatalf("expected one notification, got %d", sink.shownCount())
	}
	n := sink.shown[0]
	if n.Key != "schedule-abc" || n.Title != "Time for medication: Dipirona" || n.Body != "Dose: 1g\nTomar com água" {
		t.Fatalf("unexpected notification %#v", n)
	}
	if !n.DueAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("expected due at %v, got %v", t0.Add(time.Hour), n.DueAt)
	}

	p := e.Pending()
	if len(p) != 1 || !p[0].DueAt.Equal(t0.Add(2*time.Hour)) {
		t.Fatalf("expected re-arm one period later, got %#v", p)
	}

	clk.Advance(time.Hour)
	if sink.shownCount() != 2 {
		t.Fatalf("expected second notification, got %d", sink.shownCount())
	}
}

func TestEngine_Fire_StopsAtEnd(t *testing.T) {
	e, sink, clk := newTestEngine()

	s := hourly("1", t0)
	end := t0.Add(2 * time.Hour)
	s.EndAt = &end
	e.Sync(context.Background(), []schedules.Schedule{s})

	clk.Advance(5 * time.Hour)

	// t0, t0+1h y t0+2h (end_at es inclusivo).
	if sink.shownCount() != 3 {
		t.Fatalf("expected 3 notifications, got %d", sink.shownCount())
	}
	if e.Live() != 0 || clk.Pending() != 0 {
		t.Fatalf("expected no timer after end, live=%d pending=%d", e.Live(), clk.Pending())
	}
}

func TestEngine_Fire_SinkErrorStillRearms(t *testing.T) {
	e, sink, clk := newTestEngine()
	sink.showErr = errors.New("device offline")

	e.Sync(context.Background(), []schedules.Schedule{hourly("1", t0.Add(time.Minute))})
	clk.Advance(time.Minute)

	if sink.shownCount() != 1 || e.Live() != 1 {
		t.Fatalf("expected delivery attempt and re-arm, shown=%d live=%d", sink.shownCount(), e.Live())
	}
}

func TestEngine_PermissionMissing_CancelsAndDoesNotRetry(t *testing.T) {
	e, sink, clk := newTestEngine()
	ctx := context.Background()
	list := []schedules.Schedule{hourly("1", t0.Add(time.Hour)), hourly("2", t0.Add(time.Hour))}

	e.Sync(ctx, list)
	if e.Live() != 2 {
		t.Fatalf("expected 2 timers, got %d", e.Live())
	}

	sink.setGranted(false)
	e.Sync(ctx, list)

	if e.Live() != 0 || clk.Pending() != 0 || !e.PermissionNeeded() {
		t.Fatalf("expected all timers cancelled and permission needed, live=%d pending=%d", e.Live(), clk.Pending())
	}

	clk.Advance(24 * time.Hour)
	if sink.requests != 1 || sink.shownCount() != 0 {
		t.Fatalf("expected no retry loop, requests=%d shown=%d", sink.requests, sink.shownCount())
	}

	// Conceder y re-sincronizar vuelve a armar todo.
	sink.setGranted(true)
	e.Sync(ctx, list)
	if e.Live() != 2 || e.PermissionNeeded() {
		t.Fatalf("expected timers re-armed after grant, live=%d", e.Live())
	}
}

func TestEngine_Stop_Teardown(t *testing.T) {
	e, sink, clk := newTestEngine()
	ctx := context.Background()
	list := []schedules.Schedule{hourly("1", t0.Add(time.Hour))}

	e.Sync(ctx, list)
	e.Stop()

	if clk.Pending() != 0 {
		t.Fatalf("expected pending timers stopped, got %d", clk.Pending())
	}

	e.Sync(ctx, list)
	clk.Advance(3 * time.Hour)
	if e.Live() != 0 || sink.shownCount() != 0 {
		t.Fatalf("stopped engine must not arm again, live=%d shown=%d", e.Live(), sink.shownCount())
	}
}

func TestEngine_ResyncAtDueInstant_DoesNotFireTwice(t *testing.T) {
	e, sink, clk := newTestEngine()
	ctx := context.Background()

	s := hourly("1", t0)
	e.Sync(ctx, []schedules.Schedule{s})
	clk.Advance(0)

	if sink.shownCount() != 1 {
		t.Fatalf("expected first occurrence shown, got %d", sink.shownCount())
	}

	// Una edición llega en el mismo instante: NextDue vuelve a dar t0.
	s.Notes = "com comida"
	e.Sync(ctx, []schedules.Schedule{s})
	clk.Advance(0)

	if sink.shownCount() != 1 {
		t.Fatalf("occurrence fired twice")
	}
	if p := e.Pending(); len(p) != 1 || !p[0].DueAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("expected next occurrence armed, got %#v", p)
	}
}

func TestEngine_LoggedDose_RearmsFromLastTaken(t *testing.T) {
	e, _, clk := newTestEngine()
	ctx := context.Background()

	s := hourly("1", t0.Add(-3*time.Hour))
	s.Frequency = 8 * time.Hour
	e.Sync(ctx, []schedules.Schedule{s})

	clk.Advance(20 * time.Minute)
	taken := clk.Now()
	s.LastTakenAt = &taken
	e.Sync(ctx, []schedules.Schedule{s})

	p := e.Pending()
	if len(p) != 1 || !p[0].DueAt.Equal(taken.Add(8*time.Hour)) {
		t.Fatalf("expected next at last taken + 8h, got %#v", p)
	}
}
