package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"mentorsurvey/internal/service"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one director subscribed to progress events. An empty TeamKey
// receives every team.
type Connection struct {
	Director string
	TeamKey  string
	Send     chan []byte
}

type event struct {
	teamKey string
	data    []byte
}

// Hub fans progress events out to director connections
type Hub struct {
	conns map[*Connection]struct{}

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan event
	done       chan struct{}

	logger *slog.Logger
}

var _ service.Broadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub. Events are dispatched once Run is started.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan event, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run dispatches events until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	defer func() {
		for conn := range h.conns {
			delete(h.conns, conn)
			close(conn.Send)
		}
	}()

	for {
		select {
		case conn := <-h.register:
			h.conns[conn] = struct{}{}
			h.logger.Info("director connected",
				"director", conn.Director,
				"team_key", conn.TeamKey,
				"connections", len(h.conns))

		case conn := <-h.unregister:
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				h.logger.Info("director disconnected", "director", conn.Director)
			}

		case ev := <-h.broadcast:
			for conn := range h.conns {
				if conn.TeamKey != "" && conn.TeamKey != ev.teamKey {
					continue
				}
				select {
				case conn.Send <- ev.data:
				default:
					// Drop message if buffer full
				}
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// Register adds a connection. It reports false once the hub has stopped.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast queues a progress event (implements service.Broadcaster). The
// event is dropped when the queue is full.
func (h *Hub) Broadcast(eventType string, ev service.ProgressEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal progress event", "type", eventType, "error", err)
		return
	}
	data, err := json.Marshal(&Message{Type: eventType, Payload: payload})
	if err != nil {
		h.logger.Error("marshal progress message", "type", eventType, "error", err)
		return
	}

	select {
	case h.broadcast <- event{teamKey: ev.TeamKey, data: data}:
	default:
		h.logger.Warn("progress queue full, dropping event",
			"type", eventType,
			"session_id", ev.SessionID)
	}
}
