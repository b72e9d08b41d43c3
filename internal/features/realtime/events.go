package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the frame every subscriber receives. Payload is opaque to
// the broadcast layer.
type Envelope struct {
	Event     string    `json:"event"`
	ProjectID uuid.UUID `json:"projectId"`
	Payload   any       `json:"payload"`
	SentAt    time.Time `json:"sentAt"`
}

type PublishEventRequestDTO struct {
	Event   string          `json:"event" binding:"required,min=1,max=100"`
	Payload json.RawMessage `json:"payload"`
}

type ConnectedPayload struct {
	ConnID string `json:"connId"`
}
