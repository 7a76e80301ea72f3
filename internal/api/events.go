package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// upgrader accepts any origin: the daemon serves a local unix socket, so
// origin checks add nothing here.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// EventEnvelope is the wire form of a bus event on the /events feed.
type EventEnvelope struct {
	EventID    string    `json:"eventId"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// watchEvents upgrades to a websocket and forwards every bus event to the
// client until it disconnects. Delivery is best-effort, matching the bus.
func (h *Handler) watchEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	sub := h.bus.Subscribe("", 256)
	defer sub.Cancel()

	// Drain reads so close frames are processed; signal when the peer
	// goes away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt := <-sub.C:
			envelope := EventEnvelope{
				EventID:    uuid.New().String(),
				Kind:       evt.Kind,
				OccurredAt: evt.Timestamp,
				Payload:    evt.Payload,
			}
			if err := conn.WriteJSON(envelope); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
