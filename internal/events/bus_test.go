package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus[any]()
	a := bus.Subscribe()
	b := bus.Subscribe()
	require.Equal(t, 2, bus.Subscribers())

	bus.Publish(QueryCompleted{QueryID: "q1", Count: 3})

	assert.Equal(t, QueryCompleted{QueryID: "q1", Count: 3}, <-a)
	assert.Equal(t, QueryCompleted{QueryID: "q1", Count: 3}, <-b)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus[any]()
	sub := bus.Subscribe()

	bus.Unsubscribe(sub)
	assert.Equal(t, 0, bus.Subscribers())

	_, open := <-sub
	assert.False(t, open)

	// a second unsubscribe must not panic on the closed channel
	assert.NotPanics(t, func() { bus.Unsubscribe(sub) })
	assert.NotPanics(t, func() { bus.Publish(PageRequested{Page: 1}) })
}

func TestEventBus_DropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewEventBus[int]()
	sub := bus.Subscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		bus.Publish(i)
	}

	assert.Len(t, sub, subscriberBuffer)
	assert.Equal(t, 0, <-sub)
}
