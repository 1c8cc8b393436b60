package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yoku/guildmaster/pkg/eventbus"
)

type orderCreatedEvent struct {
	ID int
}

type orderShippedEvent struct {
	ID int
}

func TestEventPublisher_DispatchesByType(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewEventPublisher(logrus.New())

	var created, shipped int
	bus.Subscribe(func(e orderCreatedEvent) { created = e.ID })
	bus.Subscribe(func(e orderShippedEvent) { shipped = e.ID })

	bus.Publish(orderCreatedEvent{ID: 42})

	assert.Equal(t, 42, created)
	assert.Zero(t, shipped)
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewEventPublisher(logrus.New())

	var calls int
	handler := func(orderCreatedEvent) { calls++ }
	bus.Subscribe(handler)
	assert.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	assert.Zero(t, bus.SubscribersCount())

	bus.Publish(orderCreatedEvent{ID: 1})
	assert.Zero(t, calls)
}

func TestEventPublisher_RecoversFromPanic(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewEventPublisher(logrus.New())

	var after bool
	bus.Subscribe(func(orderCreatedEvent) { panic("boom") })
	bus.Subscribe(func(orderCreatedEvent) { after = true })

	bus.Publish(orderCreatedEvent{ID: 1})
	assert.True(t, after, "a panicking handler must not stop dispatch")
}

func TestMatchSignature(t *testing.T) {
	t.Parallel()

	assert.True(t, eventbus.MatchSignature(func(orderCreatedEvent) {}, []interface{}{orderCreatedEvent{}}))
	assert.False(t, eventbus.MatchSignature(func(orderCreatedEvent) {}, []interface{}{orderShippedEvent{}}))
	assert.False(t, eventbus.MatchSignature(func(orderCreatedEvent) {}, []interface{}{orderCreatedEvent{}, orderCreatedEvent{}}))
	assert.False(t, eventbus.MatchSignature("not a func", []interface{}{orderCreatedEvent{}}))
}
