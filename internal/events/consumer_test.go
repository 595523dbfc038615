package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogHandle(t *testing.T) {
	log := NewActivityLog(testLogger())

	for _, pct := range []float64{30, 60} {
		msg, err := ToMessage(NewEvent(EventMaterialUploadProgress, ProgressEvent{ResourceID: 4, Percent: pct}))
		require.NoError(t, err)
		require.NoError(t, log.Handle(msg))
	}
	msg, err := ToMessage(NewEvent(EventMatchChecked, MatchCheckedEvent{QuestionID: 2, Correct: 1, Total: 3}))
	require.NoError(t, err)
	require.NoError(t, log.Handle(msg))

	assert.Equal(t, 2, log.Count(EventMaterialUploadProgress))
	assert.Equal(t, 1, log.Count(EventMatchChecked))
	p, ok := log.Progress(EventMaterialUploadProgress, 4)
	require.True(t, ok)
	assert.Equal(t, 60.0, p.Percent)
	_, ok = log.Progress(EventGenerationProgress, 4)
	assert.False(t, ok)

	assert.Error(t, log.Handle(message.NewMessage("bad", []byte("not json"))))
}

func TestInProcessEventPublisherDeliversToActivityLog(t *testing.T) {
	pub, activity, err := NewInProcessEventPublisher(PublisherConfig{TopicName: "learning", Logger: testLogger()})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, pub.Publish(ctx, NewEvent(EventMaterialUploaded, MaterialUploadedEvent{MaterialID: 1})))
	require.NoError(t, pub.Publish(ctx, NewEvent(EventGenerationProgress, ProgressEvent{ResourceID: 9, Percent: 100, Done: true})))

	assert.Eventually(t, func() bool {
		return activity.Count(EventMaterialUploaded) == 1 && activity.Count(EventGenerationProgress) == 1
	}, 5*time.Second, 10*time.Millisecond)

	p, ok := activity.Progress(EventGenerationProgress, 9)
	require.True(t, ok)
	assert.True(t, p.Done)

	// Close stops the consumer loop.
	require.NoError(t, pub.Close())
	select {
	case <-activity.done:
	default:
		t.Fatal("consumer still running after Close")
	}
}
