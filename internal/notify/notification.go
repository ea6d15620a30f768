// Package notify entrega recordatorios al cuidador: una bandeja en memoria
// (lo que la app muestra) y canales opcionales hacia otros dispositivos.
package notify

import (
	"context"
	"errors"
	"time"
)

type Permission string

const (
	PermissionDefault Permission = "default" // todavía no se preguntó
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted, PermissionDenied:
		return Permission(s)
	default:
		return PermissionDefault
	}
}

var ErrChannelUnavailable = errors.New("notification channel unavailable")

// Notification es un aviso visible. Key deduplica: mostrar otra con la
// misma Key reemplaza a la anterior.
type Notification struct {
	Key        string    `json:"key"`
	ScheduleID string    `json:"schedule_id,omitempty"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	DueAt      time.Time `json:"due_at"`
	ShownAt    time.Time `json:"shown_at"`
}

// Sink es lo que necesita el motor de recordatorios.
type Sink interface {
	PermissionGranted(ctx context.Context) bool
	RequestPermission(ctx context.Context) (bool, error)
	Show(ctx context.Context, n Notification) error
}

// Channel es un destino adicional de la notificación (websocket, NATS, webhook).
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n Notification) error
}
