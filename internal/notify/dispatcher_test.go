package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"caretrack/internal/platform/logger"
)

type recordingChannel struct {
	name string
	err  error
	got  []Notification
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Deliver(ctx context.Context, n Notification) error {
	c.got = append(c.got, n)
	return c.err
}

func TestDispatcher_Show_ReplacesByKey(t *testing.T) {
	inbox := NewInbox(PermissionGranted)
	d := NewDispatcher(inbox, nil)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		n := Notification{Key: "schedule-1", Title: "Time for medication: Dipirona", ShownAt: t0.Add(time.Duration(i) * time.Hour)}
		if err := d.Show(ctx, n); err != nil {
			t.Fatalf("Show error: %v", err)
		}
	}
	if err := d.Show(ctx, Notification{Key: "schedule-2", ShownAt: t0}); err != nil {
		t.Fatalf("Show error: %v", err)
	}

	items := inbox.List()
	if len(items) != 2 {
		t.Fatalf("expected one visible notification per key, got %d", len(items))
	}
	if items[0].Key != "schedule-1" || !items[0].ShownAt.Equal(t0.Add(2*time.Hour)) {
		t.Fatalf("expected latest schedule-1 first, got %#v", items[0])
	}
}

func TestDispatcher_Show_JoinsChannelErrors(t *testing.T) {
	inbox := NewInbox(PermissionGranted)
	ok := &recordingChannel{name: "ok"}
	bad := &recordingChannel{name: "bad", err: ErrChannelUnavailable}
	d := NewDispatcher(inbox, nil, bad, ok)

	err := d.Show(context.Background(), Notification{Key: "schedule-9"})
	if !errors.Is(err, ErrChannelUnavailable) || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected joined channel error, got %v", err)
	}
	// Un canal caído no impide los demás ni la bandeja.
	if len(ok.got) != 1 || len(inbox.List()) != 1 {
		t.Fatalf("expected delivery to inbox and remaining channels")
	}
}

func TestDispatcher_RequestPermission_MarksPending(t *testing.T) {
	inbox := NewInbox(PermissionDefault)
	d := NewDispatcher(inbox, nil)

	granted, err := d.RequestPermission(context.Background())
	if err != nil || granted {
		t.Fatalf("expected pending request, granted=%v err=%v", granted, err)
	}
	if !inbox.Requested() {
		t.Fatalf("expected request to be pending")
	}

	inbox.SetPermission(PermissionGranted)
	if inbox.Requested() || !d.PermissionGranted(context.Background()) {
		t.Fatalf("expected granted permission to clear the pending request")
	}
}

func TestDispatcher_RequestPermission_LogsOnce(t *testing.T) {
	var buf bytes.Buffer
	inbox := NewInbox(PermissionDefault)
	d := NewDispatcher(inbox, logger.New(logger.Options{Output: &buf}))

	for i := 0; i < 3; i++ {
		if _, err := d.RequestPermission(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n := strings.Count(buf.String(), "notification permission requested"); n != 1 {
		t.Fatalf("expected a single log line, got %d", n)
	}
}

func TestInbox_Ack(t *testing.T) {
	inbox := NewInbox(PermissionGranted)
	inbox.Put(Notification{Key: "schedule-1"})

	if !inbox.Ack("schedule-1") {
		t.Fatalf("expected ack to remove visible notification")
	}
	if inbox.Ack("schedule-1") {
		t.Fatalf("second ack must report not found")
	}
}
