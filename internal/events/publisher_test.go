package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillEventPublisher_DeliversJSONEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), "course-events")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "course-events", logger)
	event := NewEvent(EnrollmentCreated, EnrollmentEvent{StudentID: 4, CourseID: 9})
	require.NoError(t, publisher.Publish(context.Background(), event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EnrollmentCreated), msg.Metadata.Get("event_type"))

		var got struct {
			Type   EventType       `json:"type"`
			Source string          `json:"source"`
			Data   EnrollmentEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, EnrollmentCreated, got.Type)
		assert.Equal(t, EventSource, got.Source)
		assert.Equal(t, EnrollmentEvent{StudentID: 4, CourseID: 9}, got.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(slog.Default())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, NewEvent(LessonCompleted, nil)))
	require.NoError(t, mock.Publish(ctx, NewEvent(SubmissionGraded, nil)))

	assert.Len(t, mock.GetPublishedEvents(), 2)
	assert.Len(t, mock.EventsOfType(SubmissionGraded), 1)

	event := mock.GetPublishedEvents()[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventVersion, event.Version)
	assert.False(t, event.Timestamp.IsZero())

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}
