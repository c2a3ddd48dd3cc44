package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(CategoryNotification, func(payload interface{}) {
		order = append(order, "first")
	})
	bus.Subscribe(CategoryNotification, func(payload interface{}) {
		order = append(order, "second")
	})
	bus.Subscribe(CategoryNotification, func(payload interface{}) {
		order = append(order, "third")
	})

	bus.Publish(CategoryNotification, "hello")

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_CategoriesAreIsolated(t *testing.T) {
	bus := NewBus()

	var notifications, dashboards int
	bus.Subscribe(CategoryNotification, func(payload interface{}) {
		notifications++
	})
	bus.Subscribe(CategoryDashboard, func(payload interface{}) {
		dashboards++
	})

	bus.Publish(CategoryNotification, nil)
	bus.Publish(CategoryNotification, nil)
	bus.Publish(CategoryDashboard, nil)

	assert.Equal(t, 2, notifications)
	assert.Equal(t, 1, dashboards)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var calls int
	unsub := bus.Subscribe(CategoryConnection, func(payload interface{}) {
		calls++
	})

	bus.Publish(CategoryConnection, true)
	unsub()
	bus.Publish(CategoryConnection, false)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscriberCount(CategoryConnection))

	// Unsubscribing twice is a no-op.
	unsub()
}

func TestBus_DuplicateRegistrationTolerated(t *testing.T) {
	bus := NewBus()

	var calls int
	handler := func(payload interface{}) { calls++ }

	unsub1 := bus.Subscribe(CategoryDashboard, handler)
	unsub2 := bus.Subscribe(CategoryDashboard, handler)

	bus.Publish(CategoryDashboard, nil)
	assert.Equal(t, 2, calls)

	unsub1()
	bus.Publish(CategoryDashboard, nil)
	assert.Equal(t, 3, calls)

	unsub2()
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()

	var delivered bool
	bus.Subscribe(CategoryNotification, func(payload interface{}) {
		panic("handler gone")
	})
	bus.Subscribe(CategoryNotification, func(payload interface{}) {
		delivered = true
	})

	bus.Publish(CategoryNotification, nil)

	assert.True(t, delivered)
}

func TestBus_PayloadPassedThrough(t *testing.T) {
	bus := NewBus()

	var got interface{}
	bus.Subscribe(CategoryConnection, func(payload interface{}) {
		got = payload
	})

	bus.Publish(CategoryConnection, true)
	assert.Equal(t, true, got)
}
