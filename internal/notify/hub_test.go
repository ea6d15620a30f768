package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHub_StreamsDeliveredNotifications(t *testing.T) {
	hub := NewHub(nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// El handler se suscribe después del upgrade.
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := hub.Deliver(context.Background(), Notification{Key: "schedule-7", Title: "Time for medication: Soro"}); err != nil {
		t.Fatalf("Deliver error: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Notification
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Key != "schedule-7" {
		t.Fatalf("unexpected notification %#v", got)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://care.example"})

	r := httptest.NewRequest("GET", "/notifications/stream", nil)
	r.Header.Set("Origin", "https://evil.example")
	if check(r) {
		t.Fatalf("expected foreign origin to be rejected")
	}
	r.Header.Set("Origin", "https://care.example")
	if !check(r) {
		t.Fatalf("expected allowed origin")
	}
}
