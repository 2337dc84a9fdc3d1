package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBus_PublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	s1 := bus.Subscribe()
	s2 := bus.Subscribe()
	require.Equal(t, 2, bus.Subscribers())

	msg := Message{Origin: "http://127.0.0.1:53682", State: "n1", Code: "c1"}
	bus.Publish(msg)

	require.Equal(t, msg, <-s1.C)
	require.Equal(t, msg, <-s2.C)
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	sub.Cancel()
	require.Zero(t, bus.Subscribers())

	bus.Publish(Message{Code: "c1"})

	select {
	case <-sub.C:
		t.Fatal("cancelled subscription received a message")
	default:
	}
}

func TestBus_CancelTwiceIsSafe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	sub.Cancel()
	sub.Cancel()
	require.Zero(t, bus.Subscribers())
}

func TestBus_FullSubscriberBufferDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()
	slow := bus.Subscribe()
	fresh := bus.Subscribe()

	for i := 0; i < 20; i++ {
		bus.Publish(Message{Code: "flood"})
	}

	// The slow consumer lost the overflow; the other subscriber still got
	// messages and Publish never blocked.
	require.Len(t, slow.C, cap(slow.C))
	require.NotEmpty(t, fresh.C)
}

func TestBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	bus.Publish(Message{Code: "c1"})
	require.Zero(t, bus.Subscribers())
}
