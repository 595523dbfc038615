package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestToMessage(t *testing.T) {
	event := NewEvent(EventMatchChecked, MatchCheckedEvent{QuestionID: 7, Correct: 2, Total: 4})

	msg, err := ToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "match.checked", msg.Metadata.Get("event_type"))
	assert.Equal(t, "learning-content-service", msg.Metadata.Get("source"))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, EventMatchChecked, decoded.Type)
}

func TestGoChannelEventPublisher(t *testing.T) {
	pub, pubSub := NewGoChannelEventPublisher(PublisherConfig{TopicName: "test", Logger: testLogger()})
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "test")
	require.NoError(t, err)

	event := NewEvent(EventMaterialUploaded, MaterialUploadedEvent{MaterialID: 3, Title: "Go basics"})
	require.NoError(t, pub.Publish(ctx, event))

	select {
	case msg := <-messages:
		assert.Equal(t, event.ID, msg.UUID)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestMockEventPublisher(t *testing.T) {
	m := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, m.Publish(ctx, NewEvent(EventMaterialUploadProgress, ProgressEvent{Percent: 50})))
	require.NoError(t, m.Publish(ctx, NewEvent(EventMaterialUploaded, MaterialUploadedEvent{})))

	assert.Len(t, m.GetPublishedEvents(), 2)
	assert.Len(t, m.EventsOfType(EventMaterialUploaded), 1)

	m.ClearEvents()
	assert.Empty(t, m.GetPublishedEvents())
}
