package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyRequestChangeBuffersWhileDispatchIsBusy(t *testing.T) {
	// No Run loop is draining the channel here, which is exactly the window
	// where the dispatch loop is servicing register/unregister traffic. The
	// event must land in the buffer, not be dropped.
	hub := NewHub()

	hub.NotifyRequestChange(RequestEvent{
		Event:         "request_updated",
		RequestID:     "req-1",
		Status:        "Pending Dean Review",
		CurrentOffice: "Dean",
	})

	select {
	case payload := <-hub.Broadcast:
		var event RequestEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "request_updated", event.Event)
		assert.Equal(t, "req-1", event.RequestID)
		assert.Equal(t, "Pending Dean Review", event.Status)
		assert.Equal(t, "Dean", event.CurrentOffice)
	default:
		t.Fatal("event was dropped while the hub had buffer capacity")
	}
}

func TestNotifyRequestChangeDropsOnlyWhenBufferIsFull(t *testing.T) {
	hub := NewHub()

	for i := 0; i < broadcastBuffer+5; i++ {
		hub.NotifyRequestChange(RequestEvent{Event: "request_created", RequestID: "req-n"})
	}

	assert.Len(t, hub.Broadcast, broadcastBuffer)
}
