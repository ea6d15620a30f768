package reminders

import (
	"time"

	"caretrack/internal/platform/clock"
)

// Registry es el conjunto de timers pendientes, uno por schedule como máximo.
// No tiene lock propio: lo protege el mutex del Engine.
type Registry struct {
	clk     clock.Clock
	seq     uint64
	handles map[string]handle
}

type handle struct {
	token uint64
	at    time.Time
	timer clock.Timer
}

func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{clk: clk, handles: map[string]handle{}}
}

// Arm programa fire para el instante at, reemplazando (y deteniendo) el
// timer anterior del mismo schedule. fire recibe el token del armado; un
// token que ya no es el vigente indica un callback tardío.
func (r *Registry) Arm(id string, at time.Time, fire func(token uint64)) uint64 {
	r.Cancel(id)

	r.seq++
	tok := r.seq
	delay := at.Sub(r.clk.Now())
	if delay < 0 {
		delay = 0
	}
	t := r.clk.AfterFunc(delay, func() { fire(tok) })

	r.handles[id] = handle{token: tok, at: at, timer: t}
	return tok
}

// Claim consume el handle si token es el vigente (el timer disparó de verdad).
func (r *Registry) Claim(id string, token uint64) bool {
	h, ok := r.handles[id]
	if !ok || h.token != token {
		return false
	}
	delete(r.handles, id)
	return true
}

func (r *Registry) Cancel(id string) {
	if h, ok := r.handles[id]; ok {
		h.timer.Stop()
		delete(r.handles, id)
	}
}

func (r *Registry) CancelAll() {
	for id, h := range r.handles {
		h.timer.Stop()
		delete(r.handles, id)
	}
}

func (r *Registry) Has(id string) bool {
	_, ok := r.handles[id]
	return ok
}

// At devuelve el instante armado para el schedule.
func (r *Registry) At(id string) (time.Time, bool) {
	h, ok := r.handles[id]
	return h.at, ok
}

func (r *Registry) Len() int { return len(r.handles) }
