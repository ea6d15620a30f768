// Package clock centraliza la lectura de "ahora" y el armado de timers.
//
// La lógica de dominio no llama time.Now() ni time.AfterFunc directamente:
// recibe un Clock inyectado, así los tests pueden simular cualquier instante
// (ver Fake) sin depender del reloj real.
package clock

import "time"

// Timer es el handle de un timer armado.
// Stop devuelve false si el timer ya disparó o ya estaba detenido.
type Timer interface {
	Stop() bool
}

// Clock entrega la hora actual y arma timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real usa el reloj del sistema.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

var _ Clock = Real{}
