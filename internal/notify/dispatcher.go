package notify

import (
	"context"
	"errors"
	"fmt"

	"caretrack/internal/platform/logger"
)

// Dispatcher implementa Sink: la bandeja siempre recibe la notificación y
// después se reparte a los canales configurados.
type Dispatcher struct {
	inbox    *Inbox
	channels []Channel
	log      logger.Logger
}

func NewDispatcher(inbox *Inbox, log logger.Logger, channels ...Channel) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{inbox: inbox, channels: channels, log: log}
}

func (d *Dispatcher) PermissionGranted(ctx context.Context) bool {
	return d.inbox.Permission() == PermissionGranted
}

// RequestPermission no puede preguntarle a nadie desde el servidor: deja el
// pedido pendiente para que la UI lo muestre y responde con el estado actual.
func (d *Dispatcher) RequestPermission(ctx context.Context) (bool, error) {
	if d.inbox.markRequested() {
		d.log.Info("notification permission requested", nil)
	}
	return d.inbox.Permission() == PermissionGranted, nil
}

func (d *Dispatcher) Show(ctx context.Context, n Notification) error {
	if n.Key == "" {
		return errors.New("notification key is required")
	}
	d.inbox.Put(n)

	var errs []error
	for _, ch := range d.channels {
		if err := ch.Deliver(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}
