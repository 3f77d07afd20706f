package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// sseHandler writes n events and then holds the connection open until the
// client goes away.
func sseHandler(n int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "no flusher", http.StatusInternalServerError)
			return
		}
		flusher.Flush()
		for i := 0; i < n; i++ {
			fmt.Fprintf(w, "data: {\"title\":\"Page %d\"}\n\n", i)
			flusher.Flush()
		}
		<-r.Context().Done()
	}
}

func TestClientSubscribeDeliversMessages(t *testing.T) {
	srv := httptest.NewServer(sseHandler(3))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opened := make(chan struct{}, 1)
	got := make(chan []byte, 16)

	client := NewClient(srv.URL, nil)
	done := make(chan error, 1)
	go func() {
		done <- client.Subscribe(ctx,
			func() { opened <- struct{}{} },
			func(data []byte) { got <- data },
		)
	}()

	select {
	case <-opened:
	case <-time.After(2 * time.Second):
		t.Fatal("onOpen never fired")
	}

	for i := 0; i < 3; i++ {
		select {
		case data := <-got:
			want := fmt.Sprintf(`{"title":"Page %d"}`, i)
			if string(data) != want {
				t.Errorf("message %d = %q, want %q", i, data, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("message %d never arrived", i)
		}
	}

	// Cancellation ends the subscription cleanly.
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Subscribe after cancel = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

func TestClientServerCloseEndsSubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"title\":\"only\"}\n\n")
		// Returning closes the stream; no reconnect may happen.
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := NewClient(srv.URL, nil)
	done := make(chan error, 1)
	go func() {
		done <- client.Subscribe(ctx, func() {}, func([]byte) {})
	}()

	select {
	case <-done:
		// Either a clean EOF or an error is fine; what matters is that
		// Subscribe returned instead of retrying forever.
	case <-time.After(3 * time.Second):
		t.Fatal("Subscribe kept running after the server closed the stream")
	}
}

func TestClientDefaultURL(t *testing.T) {
	c := NewClient("", nil)
	if c.url != DefaultURL {
		t.Errorf("url = %q, want %q", c.url, DefaultURL)
	}
}

// TestClientLiveStream hits the real Wikimedia endpoint.
// Run with: go test -v -run TestClientLiveStream ./internal/stream/
func TestClientLiveStream(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping live stream test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	got := make(chan []byte, 1)
	client := NewClient(DefaultURL, nil)
	go client.Subscribe(ctx, func() {}, func(data []byte) {
		select {
		case got <- data:
		default:
		}
	})

	select {
	case data := <-got:
		t.Logf("received %d bytes from live stream", len(data))
	case <-ctx.Done():
		t.Fatal("no event from the live stream within 15s")
	}
}
