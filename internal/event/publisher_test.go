package event_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizenprep/backend/internal/event"
)

func TestRecorder(t *testing.T) {
	r := &event.Recorder{}
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, event.AttemptGraded, event.AttemptGradedEvent{UserID: "u", TestID: 3}))

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.AttemptGraded, events[0].Type)
	assert.Equal(t, 3, events[0].Payload.(event.AttemptGradedEvent).TestID)

	r.Err = errors.New("broker down")
	assert.Error(t, r.Publish(ctx, event.AttemptGraded, nil))
	assert.Len(t, r.Events(), 1)
}

func TestNopPublisher(t *testing.T) {
	var p event.Publisher = event.NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), event.AttemptGraded, nil))
	p.Close()
}

func TestAMQPPublisher(t *testing.T) {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		t.Skip("AMQP_URL not set")
	}

	p, err := event.NewAMQPPublisher(url, "practice_test.events")
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.Publish(context.Background(), event.AttemptGraded, event.AttemptGradedEvent{UserID: "u", TestID: 1}))
}
