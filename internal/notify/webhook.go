package notify

import (
	"context"
	"net/http"
	"strconv"

	"caretrack/internal/platform/httpclient"
)

// WebhookChannel hace POST del recordatorio a una URL externa.
type WebhookChannel struct {
	client *httpclient.Client
	url    string
}

func NewWebhookChannel(client *httpclient.Client, url string) *WebhookChannel {
	return &WebhookChannel{client: client, url: url}
}

func (c *WebhookChannel) Name() string { return "webhook" }

func (c *WebhookChannel) Deliver(ctx context.Context, n Notification) error {
	headers := map[string]string{
		"Idempotency-Key": n.Key + ":" + strconv.FormatInt(n.DueAt.UnixMilli(), 10),
	}
	return c.client.DoJSON(ctx, http.MethodPost, c.url, headers, n, nil)
}
