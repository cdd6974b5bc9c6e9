package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventTaskSaved, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	event := Event{ID: "e1", Type: EventTaskSaved, TaskID: "t1", Creator: "alice"}
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, event, received[0])
}

func TestDispatcherRoutesByEventType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	saved := 0
	deleted := 0
	dispatcher.Subscribe(EventTaskSaved, func(context.Context, Event) error {
		saved++
		return nil
	})
	dispatcher.Subscribe(EventTaskDeleted, func(context.Context, Event) error {
		deleted++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTaskDeleted}))
	assert.Equal(t, 0, saved)
	assert.Equal(t, 1, deleted)
}

func TestDispatcherFailingHandlerDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventTaskSaved, func(context.Context, Event) error {
		calls++
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventTaskSaved, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTaskSaved}))
	assert.Equal(t, 2, calls)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTaskSaved}))
}
