package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// projectRoom fans broadcasts out to every connection subscribed to one
// project. The room mutex serializes broadcasts, so all subscribers
// observe events in the same order.
type projectRoom struct {
	mu        sync.Mutex
	projectID uuid.UUID
	clients   map[*Client]struct{}
}

func newProjectRoom(projectID uuid.UUID) *projectRoom {
	return &projectRoom{
		projectID: projectID,
		clients:   make(map[*Client]struct{}),
	}
}

func (r *projectRoom) join(client *Client) {
	r.mu.Lock()
	r.clients[client] = struct{}{}
	r.mu.Unlock()
}

// leave reports whether the room is now empty so the hub can drop it.
func (r *projectRoom) leave(client *Client) bool {
	r.mu.Lock()
	delete(r.clients, client)
	empty := len(r.clients) == 0
	r.mu.Unlock()

	return empty
}

func (r *projectRoom) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.clients)
}

// broadcast delivers a frame to every subscriber except the excluded
// connection. Slow clients have the frame dropped instead of stalling
// the room. Returns the number of deliveries.
func (r *projectRoom) broadcast(message []byte, excludeConnID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	for client := range r.clients {
		if excludeConnID != "" && client.ConnID == excludeConnID {
			continue
		}

		if client.enqueue(message) {
			delivered++
		}
	}

	return delivered
}
