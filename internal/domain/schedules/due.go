package schedules

import "time"

// NextDue calcula la próxima dosis de s a partir de now.
// ok=false significa "no hay más dosis" (el plan terminó).
//
// Sin tomas registradas la primera dosis es StartAt; con una toma registrada
// la siguiente es LastTakenAt + Frequency. Si esa dosis ya quedó atrás se
// avanza por períodos enteros en O(1) hasta el primer vencimiento >= now.
func NextDue(s Schedule, now time.Time) (time.Time, bool) {
	if s.Frequency <= 0 {
		return time.Time{}, false
	}
	if s.EndAt != nil && now.After(*s.EndAt) {
		return time.Time{}, false
	}

	base := s.StartAt
	first := s.StartAt
	if s.LastTakenAt != nil {
		base = *s.LastTakenAt
		first = base.Add(s.Frequency)
	}

	next := first
	if next.Before(now) {
		next = base.Add(periodsUntil(now.Sub(base), s.Frequency) * s.Frequency)
	}

	if s.EndAt != nil && next.After(*s.EndAt) {
		return time.Time{}, false
	}
	return next, true
}

// periodsUntil es ceil(elapsed / freq) para elapsed > 0.
func periodsUntil(elapsed, freq time.Duration) time.Duration {
	k := elapsed / freq
	if elapsed%freq != 0 {
		k++
	}
	return k
}
