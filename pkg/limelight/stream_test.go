package limelight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStreamResultsDelivers(t *testing.T) {
	upgrader := websocket.Upgrader{}
	frames := []string{
		`{"tx": 1.0}`,
		`definitely not json`, // skipped, must not kill the stream
		`{"tx": 2.0, "v": 1}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("Failed to parse server port: %v", err)
	}

	cfg := Config{Host: u.Hostname(), Port: DefaultPort, PollInterval: time.Millisecond}
	client, err := New(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sub := client.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streamDone := make(chan error, 1)
	go func() {
		streamDone <- client.StreamResultsPort(ctx, port)
	}()

	// The malformed frame is skipped; the two good ones arrive in order.
	for _, want := range []float64{1.0, 2.0} {
		select {
		case res := <-sub.C():
			if res.Tx == nil || *res.Tx != want {
				t.Errorf("Expected tx=%v, got %v", want, res.Tx)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for streamed result")
		}
	}

	latest := client.GetLatestResult()
	if latest == nil || !latest.HasTargets() {
		t.Errorf("Expected stream to update the cached result, got %+v", latest)
	}

	cancel()
	select {
	case err := <-streamDone:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled after cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stream did not shut down after cancel")
	}
}

func TestStreamResultsDialFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	client, err := New(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// Port 1 is almost certainly closed.
	err = client.StreamResultsPort(ctx, 1)
	if err == nil {
		t.Fatal("Expected dial failure")
	}
	if !IsTransport(err) {
		t.Errorf("Expected TransportError, got %T: %v", err, err)
	}
}
