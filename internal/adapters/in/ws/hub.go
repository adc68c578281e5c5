// Package ws pushes invalidation notices to connected browsers. Each client
// only receives the tags its actor is allowed to read.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/ports"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

var _ ports.InvalidationPublisher = (*Hub)(nil)

var errHubStopped = errors.New("invalidation hub stopped")

// Message tells a client which of its cached views to refetch.
type Message struct {
	Type       string    `json:"type"`
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	Tags       []string  `json:"tags"`
	OccurredAt time.Time `json:"occurredAt"`
}

const messageTypeInvalidate = "invalidate"

type client struct {
	hub   *Hub
	conn  *websocket.Conn
	actor actor.Actor
	send  chan Message
}

type Hub struct {
	upgrader   websocket.Upgrader
	clients    map[*client]struct{}
	broadcast  chan invalidation.Notice
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan invalidation.Notice, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "invalidation_hub"),
	}
}

// Run dispatches notices to clients until ctx is done. A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "user_id", c.actor.ID().String(), "client_count", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "client_count", count)

		case notice := <-h.broadcast:
			h.dispatch(notice)
		}
	}
}

func (h *Hub) dispatch(notice invalidation.Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		msg, ok := messageFor(notice, c.actor)
		if !ok {
			continue
		}
		select {
		case c.send <- msg:
		default:
			// A client that cannot keep up is dropped and refetches on reconnect.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// messageFor keeps only the tags a can read. ok is false when none remain.
func messageFor(notice invalidation.Notice, a actor.Actor) (Message, bool) {
	tags := make([]string, 0, len(notice.Tags))
	for _, tag := range notice.Tags {
		if tag.VisibleTo(a) {
			tags = append(tags, tag.String())
		}
	}
	if len(tags) == 0 {
		return Message{}, false
	}

	return Message{
		Type:       messageTypeInvalidate,
		Event:      string(notice.Event),
		OrderID:    notice.OrderID.String(),
		Tags:       tags,
		OccurredAt: notice.OccurredAt,
	}, true
}

// Publish queues notices for connected clients. Delivery is best effort; a
// full queue drops the notice with a warning.
func (h *Hub) Publish(ctx context.Context, notices ...invalidation.Notice) error {
	for _, notice := range notices {
		select {
		case h.broadcast <- notice:
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		default:
			h.logger.WarnContext(ctx, "broadcast queue full, dropping notice", "notice_id", notice.ID.String())
		}
	}
	return nil
}

// Serve upgrades the request and streams notices visible to a until the
// connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, a actor.Actor) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to upgrade connection", "error", err)
		return err
	}

	c := &client{
		hub:   h,
		conn:  conn,
		actor: a,
		send:  make(chan Message, sendBufferSize),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return errHubStopped
	}

	go c.writePump(h.logger)
	go c.readPump(h.logger)
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// readPump only drains control frames; clients never send data.
func (c *client) readPump(logger *slog.Logger) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read failed", "error", err)
			}
			return
		}
	}
}

func (c *client) writePump(logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				logger.Error("failed to encode message", "error", err)
				continue
			}
			if err = c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
