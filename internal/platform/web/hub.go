// Package web streams live sessions to spectators over WebSocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

const (
	sendQueue  = 64
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 1 << 10 // Spectators only send control frames
)

// Message is the JSON frame sent to spectators.
type Message struct {
	Type     string         `json:"type"`
	Snapshot snake.Snapshot `json:"snapshot"`
}

// client is one spectator connection.
type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans session snapshots out to WebSocket spectators. It implements
// snake.Renderer so it can be attached next to the terminal renderer.
// Frames are only sent when something a spectator can see has changed:
// a tick, a status change or a blink.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	key     frameKey
	sent    bool
	closed  bool
}

// frameKey identifies what a spectator would notice between two snapshots.
type frameKey struct {
	tick       uint64
	status     snake.Status
	mode       snake.Mode
	visible    bool
	transition bool
	foodFrame  int

	score        int
	combo        float64
	shield       bool
	boost        bool
	slow         bool
	invulnerable bool
	pickup       bool
}

func keyOf(s snake.Snapshot) frameKey {
	return frameKey{
		tick:       s.Tick,
		status:     s.Status,
		mode:       s.Mode,
		visible:    s.SnakeVisible,
		transition: s.Transition.Active,
		foodFrame:  s.FoodFrame,

		score:        s.Score,
		combo:        s.Combo,
		shield:       s.Effects.Shield,
		boost:        s.Effects.SpeedBoost,
		slow:         s.Effects.SlowMode,
		invulnerable: s.Invulnerable,
		pickup:       s.PowerUp.Active,
	}
}

// NewHub creates a hub with no spectators.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Spectating is read-only, any origin may watch.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Render broadcasts the snapshot if it differs from the last one sent.
func (h *Hub) Render(s snake.Snapshot) {
	key := keyOf(s)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || (h.sent && key == h.key) {
		return
	}

	data, err := json.Marshal(Message{Type: "snapshot", Snapshot: s})
	if err != nil {
		h.logger.Error("encode snapshot", "err", err)
		return
	}
	h.key, h.sent, h.latest = key, true, data

	for c := range h.clients {
		h.enqueue(c, data)
	}
}

// enqueue drops the frame for a spectator that cannot keep up. Must hold mu.
func (h *Hub) enqueue(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and registers a spectator. The latest
// frame is sent right away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{ws: ws, send: make(chan []byte, sendQueue)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = ws.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		h.enqueue(c, h.latest)
	}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "watching", n)
	go h.writePump(c)
	go h.readPump(c)
}

// unregister removes a spectator and closes its queue. Safe to call twice.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

// readPump discards spectator input and notices disconnects.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("spectator read", "err", err)
			}
			h.logger.Info("spectator left", "remote", c.ws.RemoteAddr().String())
			return
		}
	}
}

// Close disconnects every spectator. Later renders are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Handler returns the spectator routes: /ws for the stream and / for a
// plain status line.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "snakeboy: %d watching, connect to /ws\n", h.Clients())
	})
	return mux
}

// Serve listens on addr until ctx is done, then shuts down and closes the hub.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		h.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}
