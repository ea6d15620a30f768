package localtime

import (
	"testing"
	"time"
	_ "time/tzdata"

	"caretrack/internal/platform/clock"
)

func mustZone(t *testing.T, name string, now time.Time) *Zone {
	t.Helper()
	z, err := Load(name, clock.NewFake(now))
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return z
}

func TestParse_DateOnly_IsEndOfDayInReferenceZone(t *testing.T) {
	z := mustZone(t, "America/Sao_Paulo", time.Now())

	got := z.Parse("2024-03-10", ModeDateOnly)

	// São Paulo está en UTC-3 (sin horario de verano desde 2019).
	want := time.Date(2024, 3, 11, 2, 59, 59, int(999*time.Millisecond), time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.UTC())
	}
}

func TestParse_DateOnly_RoundTrip(t *testing.T) {
	z := mustZone(t, "America/Sao_Paulo", time.Now())

	if s := z.FormatDate(z.Parse("2024-03-10", ModeDateOnly)); s != "2024-03-10" {
		t.Fatalf("expected 2024-03-10, got %s", s)
	}
}

func TestParse_DateTime_IndependentOfSystemZone(t *testing.T) {
	z := mustZone(t, "America/Sao_Paulo", time.Now())

	got := z.Parse("2024-01-01T08:00", ModeDateTime)
	want := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.UTC())
	}
	if s := z.FormatDateTime(got); s != "2024-01-01T08:00" {
		t.Fatalf("round trip: expected 2024-01-01T08:00, got %s", s)
	}
}

func TestParse_DateTime_WithSecondsAndFraction(t *testing.T) {
	z := mustZone(t, "UTC", time.Now())

	got := z.Parse("2024-05-02T10:15:30.250", ModeDateTime)
	want := time.Date(2024, 5, 2, 10, 15, 30, int(250*time.Millisecond), time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParse_DateTime_AcrossDSTZone(t *testing.T) {
	z := mustZone(t, "America/New_York", time.Now())

	// 2024-07-01 en NY es EDT (UTC-4); 2024-01-15 es EST (UTC-5).
	summer := z.Parse("2024-07-01T09:30", ModeDateTime)
	if !summer.Equal(time.Date(2024, 7, 1, 13, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected summer instant %v", summer.UTC())
	}
	winter := z.Parse("2024-01-15T09:30", ModeDateTime)
	if !winter.Equal(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected winter instant %v", winter.UTC())
	}
}

func TestParse_DateOnlyTextInDateTimeMode_IsStartOfDay(t *testing.T) {
	z := mustZone(t, "UTC", time.Now())

	got := z.Parse("2024-03-10", ModeDateTime)
	if !got.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestParse_EmptyOrGarbage_FallsBackToNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	z := mustZone(t, "America/Sao_Paulo", now)

	for _, in := range []string{"", "   ", "not a date", "2024-13-45"} {
		if got := z.Parse(in, ModeDateTime); !got.Equal(now) {
			t.Fatalf("input %q: expected now, got %v", in, got)
		}
	}
}

func TestParse_EpochMillisAndRFC3339(t *testing.T) {
	z := mustZone(t, "America/Sao_Paulo", time.Now())

	if got := z.Parse("1704096000000", ModeDateTime); !got.Equal(time.UnixMilli(1704096000000)) {
		t.Fatalf("epoch ms not honoured: %v", got)
	}

	got := z.Parse("2024-01-01T10:00:00Z", ModeDateTime)
	if !got.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 offset not honoured: %v", got)
	}
}

func TestParseOptional_EmptyIsAbsent(t *testing.T) {
	z := mustZone(t, "UTC", time.Now())

	if z.ParseOptional("", ModeDateOnly) != nil {
		t.Fatalf("expected nil for empty optional input")
	}
	if z.ParseOptional("2024-03-10", ModeDateOnly) == nil {
		t.Fatalf("expected value for present input")
	}
}
