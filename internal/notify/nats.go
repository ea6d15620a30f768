package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"caretrack/internal/platform/logger"

	"github.com/nats-io/nats.go"
)

const DefaultNATSSubject = "caretrack.reminders"

// NATSChannel publica cada recordatorio para que un worker externo lo lleve
// a otros dispositivos (push, SMS...).
type NATSChannel struct {
	nc      *nats.Conn
	subject string
	log     logger.Logger
}

func ConnectNATS(url, subject string, log logger.Logger) (*NATSChannel, error) {
	if log == nil {
		log = logger.Nop()
	}
	nc, err := nats.Connect(url,
		nats.Name("caretrack"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", map[string]any{"url": c.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	log.Info("connected to nats", map[string]any{"url": url})
	return NewNATSChannel(nc, subject, log), nil
}

func NewNATSChannel(nc *nats.Conn, subject string, log logger.Logger) *NATSChannel {
	if subject == "" {
		subject = DefaultNATSSubject
	}
	if log == nil {
		log = logger.Nop()
	}
	return &NATSChannel{nc: nc, subject: subject, log: log}
}

func (c *NATSChannel) Name() string { return "nats" }

func (c *NATSChannel) Deliver(ctx context.Context, n Notification) error {
	if c.nc == nil || !c.nc.IsConnected() {
		return ErrChannelUnavailable
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := nats.NewMsg(c.subject)
	msg.Data = data
	// Un id por ocurrencia; el tag permite al consumidor reemplazar la anterior.
	msg.Header.Set(nats.MsgIdHdr, n.Key+":"+strconv.FormatInt(n.DueAt.UnixMilli(), 10))
	msg.Header.Set("Caretrack-Tag", n.Key)

	if err := c.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	c.log.Debug("published reminder", map[string]any{"subject": c.subject, "key": n.Key})
	return nil
}

func (c *NATSChannel) Close() {
	if c.nc != nil {
		c.nc.Close()
	}
}
