package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"wedsync/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{
		ConnID: uuid.NewString(),
		UserID: uuid.New(),
		send:   make(chan []byte, sendBufferSize),
	}
}

func receiveEnvelope(t *testing.T, client *Client) Envelope {
	t.Helper()

	select {
	case message := <-client.send:
		var envelope Envelope
		require.NoError(t, json.Unmarshal(message, &envelope))
		return envelope
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Envelope{}
	}
}

func Test_Publish_WhenRoomHasSubscribers_DeliversToAll(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	projectID := uuid.New()

	first := newTestClient()
	second := newTestClient()
	hub.Join(projectID, first)
	hub.Join(projectID, second)

	hub.Publish(projectID, "collaborator_changed", map[string]any{"action": "added"}, "")

	for _, client := range []*Client{first, second} {
		envelope := receiveEnvelope(t, client)
		assert.Equal(t, "collaborator_changed", envelope.Event)
		assert.Equal(t, projectID, envelope.ProjectID)
	}
}

func Test_Publish_WithExcludeConnID_SkipsOriginator(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	projectID := uuid.New()

	originator := newTestClient()
	other := newTestClient()
	hub.Join(projectID, originator)
	hub.Join(projectID, other)

	hub.Publish(projectID, "task_updated", nil, originator.ConnID)

	envelope := receiveEnvelope(t, other)
	assert.Equal(t, "task_updated", envelope.Event)

	select {
	case <-originator.send:
		t.Fatal("originator should not receive its own broadcast")
	default:
	}
}

func Test_Publish_WhenNoRoomOpen_IsNoop(t *testing.T) {
	hub := NewHub(logger.GetLogger())

	hub.Publish(uuid.New(), "task_updated", nil, "")

	assert.Equal(t, 0, hub.SubscriberCount(uuid.New()))
}

func Test_Publish_PreservesOrderPerSubscriber(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	projectID := uuid.New()

	client := newTestClient()
	hub.Join(projectID, client)

	events := []string{"first", "second", "third"}
	for _, event := range events {
		hub.Publish(projectID, event, nil, "")
	}

	for _, expected := range events {
		envelope := receiveEnvelope(t, client)
		assert.Equal(t, expected, envelope.Event)
	}
}

func Test_Leave_WhenLastSubscriberLeaves_DropsRoom(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	projectID := uuid.New()

	first := newTestClient()
	second := newTestClient()
	hub.Join(projectID, first)
	hub.Join(projectID, second)

	hub.Leave(projectID, first)
	assert.Equal(t, 1, hub.SubscriberCount(projectID))

	hub.Leave(projectID, second)
	assert.Equal(t, 0, hub.SubscriberCount(projectID))

	hub.mu.Lock()
	_, stillThere := hub.rooms[projectID]
	hub.mu.Unlock()
	assert.False(t, stillThere)
}

func Test_Broadcast_WhenClientBufferFull_DropsFrameForThatClientOnly(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	projectID := uuid.New()

	slow := newTestClient()
	fast := newTestClient()
	hub.Join(projectID, slow)
	hub.Join(projectID, fast)

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, slow.enqueue([]byte("{}")))
	}

	hub.Publish(projectID, "guest_list_updated", nil, "")

	envelope := receiveEnvelope(t, fast)
	assert.Equal(t, "guest_list_updated", envelope.Event)
	assert.Len(t, slow.send, sendBufferSize)
}
