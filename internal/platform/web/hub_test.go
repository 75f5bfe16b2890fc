package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readSnapshot(t *testing.T, ws *websocket.Conn) snake.Snapshot {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type     string `json:"type"`
		Snapshot struct {
			Tick    uint64              `json:"tick"`
			Status  string              `json:"status"`
			Score   int                 `json:"score"`
			Combo   float64             `json:"combo"`
			Effects snake.ActiveEffects `json:"effects"`
		} `json:"snapshot"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	if msg.Type != "snapshot" {
		t.Fatalf("message type = %q, expected snapshot", msg.Type)
	}
	return snake.Snapshot{
		Tick:    msg.Snapshot.Tick,
		Score:   msg.Snapshot.Score,
		Combo:   msg.Snapshot.Combo,
		Effects: msg.Snapshot.Effects,
	}
}

func TestHubBroadcastsChangedFrames(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })

	hub.Render(snake.Snapshot{Tick: 1, Score: 10})
	if got := readSnapshot(t, ws); got.Tick != 1 || got.Score != 10 {
		t.Fatalf("first frame = %+v, expected tick 1 score 10", got)
	}

	// Same tick on a later animation frame: nothing new to show.
	hub.Render(snake.Snapshot{Frame: 9, Tick: 1, Score: 10})
	hub.Render(snake.Snapshot{Tick: 2, Score: 20})
	if got := readSnapshot(t, ws); got.Tick != 2 {
		t.Errorf("second frame tick = %d, expected 2 (duplicate not skipped)", got.Tick)
	}
}

func TestHubBroadcastsChangesBetweenTicks(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })

	hub.Render(snake.Snapshot{Tick: 5, Combo: 2, Effects: snake.ActiveEffects{SlowMode: true}})
	readSnapshot(t, ws)

	// Combo window lapses while the tick count stands still
	hub.Render(snake.Snapshot{Tick: 5, Combo: 1, Effects: snake.ActiveEffects{SlowMode: true}})
	if got := readSnapshot(t, ws); got.Tick != 5 || got.Combo != 1 {
		t.Fatalf("combo reset frame = %+v, expected tick 5 combo 1", got)
	}

	hub.Render(snake.Snapshot{Tick: 5, Combo: 1})
	if got := readSnapshot(t, ws); got.Effects.SlowMode {
		t.Errorf("effect expiry frame still shows slow mode: %+v", got.Effects)
	}
}

func TestHubSendsLatestOnJoin(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	hub.Render(snake.Snapshot{Tick: 7, Score: 70})

	ws := dial(t, srv)
	if got := readSnapshot(t, ws); got.Tick != 7 || got.Score != 70 {
		t.Errorf("late joiner got %+v, expected tick 7 score 70", got)
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })
	ws.Close()
	waitFor(t, "unregistration", func() bool { return hub.Clients() == 0 })

	// Rendering with nobody watching is fine
	hub.Render(snake.Snapshot{Tick: 3})
}

func TestHubCloseDisconnectsSpectators(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after Close, expected 0", hub.Clients())
	}
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Error("expected the connection to close")
	}
	hub.Render(snake.Snapshot{Tick: 4}) // ignored after Close
}

func TestHubStatusPage(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "0 watching") {
		t.Errorf("status page = %q", body)
	}

	missing, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, expected 404", missing.StatusCode)
	}
}

func TestHubServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Serve(ctx, addr) }()

	waitFor(t, "listener", func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	})
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
