package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub is the process-local registry of project rooms. Rooms are created
// on first join and dropped when their last subscriber leaves.
type Hub struct {
	mu     sync.Mutex
	rooms  map[uuid.UUID]*projectRoom
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]*projectRoom),
		logger: logger,
	}
}

func (h *Hub) Join(projectID uuid.UUID, client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[projectID]
	if !ok {
		room = newProjectRoom(projectID)
		h.rooms[projectID] = room
	}
	h.mu.Unlock()

	room.join(client)
}

func (h *Hub) Leave(projectID uuid.UUID, client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[projectID]
	h.mu.Unlock()

	if !ok {
		return
	}

	if room.leave(client) {
		h.mu.Lock()
		// Re-check under the hub lock, another client may have joined
		// between leave and here.
		if current, stillThere := h.rooms[projectID]; stillThere && current.size() == 0 {
			delete(h.rooms, projectID)
		}
		h.mu.Unlock()
	}
}

// SubscriberCount reports how many connections a project room holds.
func (h *Hub) SubscriberCount(projectID uuid.UUID) int {
	h.mu.Lock()
	room, ok := h.rooms[projectID]
	h.mu.Unlock()

	if !ok {
		return 0
	}

	return room.size()
}

// Publish implements projects_interfaces.EventPublisher. Broadcasts to
// projects without an open room are dropped.
func (h *Hub) Publish(projectID uuid.UUID, event string, payload any, excludeConnID string) {
	h.mu.Lock()
	room, ok := h.rooms[projectID]
	h.mu.Unlock()

	if !ok {
		return
	}

	message, err := json.Marshal(Envelope{
		Event:     event,
		ProjectID: projectID,
		Payload:   payload,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("failed to encode broadcast",
			"projectId", projectID, "event", event, "error", err)
		return
	}

	room.broadcast(message, excludeConnID)
}
