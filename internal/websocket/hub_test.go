package websocket

import (
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id, userID, username, roomCode string) *Client {
	// no socket and no pumps: events pile up in Send where tests can
	// inspect them
	return NewClient(id, userID, username, roomCode, nil, nil, nil)
}

func drainEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case data := <-c.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event in send buffer")
		return Event{}
	}
}

func requireNoEvent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case data := <-c.Send:
		t.Fatalf("unexpected event in send buffer: %s", data)
	default:
	}
}

func TestHubBroadcastOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	alice := newTestClient("c1", "u1", "alice", "room-1")
	bob := newTestClient("c2", "u2", "bob", "room-1")
	hub.Register("room-1", alice)
	hub.Register("room-1", bob)

	// alice saw bob join, bob joined after so saw nothing
	ev := drainEvent(t, alice)
	assert.Equal(t, EventUserJoin, ev.Type)
	assert.Equal(t, "u2", ev.SenderID)

	hub.BroadcastToRoom("room-1", Event{Type: EventMessage, Content: "first"})
	hub.BroadcastToRoom("room-1", Event{Type: EventMessage, Content: "second"})

	for _, c := range []*Client{alice, bob} {
		first := drainEvent(t, c)
		second := drainEvent(t, c)
		assert.Equal(t, "first", first.Content)
		assert.Equal(t, "second", second.Content)
		assert.Equal(t, "room-1", first.RoomCode)
	}
}

func TestHubBroadcastExcept(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	alice := newTestClient("c1", "u1", "alice", "room-1")
	bob := newTestClient("c2", "u2", "bob", "room-1")
	hub.Register("room-1", alice)
	hub.Register("room-1", bob)
	drainEvent(t, alice) // bob's join

	hub.BroadcastToRoomExcept("room-1", Event{Type: EventSharedText, SharedText: "draft"}, alice)

	ev := drainEvent(t, bob)
	assert.Equal(t, EventSharedText, ev.Type)
	assert.Equal(t, "draft", ev.SharedText)
	requireNoEvent(t, alice)
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	alice := newTestClient("c1", "u1", "alice", "room-1")
	carol := newTestClient("c2", "u3", "carol", "room-2")
	hub.Register("room-1", alice)
	hub.Register("room-2", carol)

	hub.BroadcastToRoom("room-1", Event{Type: EventMessage, Content: "hi"})

	ev := drainEvent(t, alice)
	assert.Equal(t, "hi", ev.Content)
	requireNoEvent(t, carol)
}

func TestHubUnregisterAnnouncesLeaveOnce(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	alice := newTestClient("c1", "u1", "alice", "room-1")
	bobTab1 := newTestClient("c2", "u2", "bob", "room-1")
	bobTab2 := newTestClient("c3", "u2", "bob", "room-1")
	hub.Register("room-1", alice)
	hub.Register("room-1", bobTab1)
	drainEvent(t, alice) // bob's join

	// second tab of the same user joins silently
	hub.Register("room-1", bobTab2)
	requireNoEvent(t, alice)

	// first tab leaving is silent too, bob is still online
	hub.Unregister("room-1", bobTab1)
	requireNoEvent(t, alice)

	hub.Unregister("room-1", bobTab2)
	ev := drainEvent(t, alice)
	assert.Equal(t, EventUserLeave, ev.Type)
	assert.Equal(t, "u2", ev.SenderID)
	assert.False(t, hub.IsUserOnlineInRoom("room-1", "u2"))
}

func TestHubEvictsSlowConsumer(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	slow := newTestClient("c1", "u1", "alice", "room-1")
	hub.Register("room-1", slow)

	// fill the send buffer so the next broadcast cannot be enqueued
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("{}")
	}

	hub.BroadcastToRoom("room-1", Event{Type: EventMessage, Content: "overflow"})

	require.Eventually(t, func() bool {
		return !slow.IsActive()
	}, time.Second, 10*time.Millisecond, "slow consumer should be closed")
}

func TestHubStats(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Register("room-1", newTestClient("c1", "u1", "alice", "room-1"))
	hub.Register("room-1", newTestClient("c2", "u2", "bob", "room-1"))
	hub.Register("room-2", newTestClient("c3", "u3", "carol", "room-2"))

	stats := hub.GetHubStats()
	assert.Equal(t, 2, stats.TotalRooms)
	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, int64(3), stats.TotalConnections)

	roomStats := hub.GetRoomStats("room-1")
	assert.Equal(t, true, roomStats["exists"])
	assert.Equal(t, 2, roomStats["active_connections"])
	assert.Equal(t, 2, roomStats["unique_users"])

	missing := hub.GetRoomStats("nope")
	assert.Equal(t, false, missing["exists"])
}

func TestHubStatsConcurrentReaders(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	// every handshake reads hub stats, so reads race with registrations
	// unless the totals are computed into a copy
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.GetHubStats()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			code := "room-" + strconv.Itoa(n%2)
			c := newTestClient("c"+strconv.Itoa(n), "u"+strconv.Itoa(n), "user", code)
			hub.Register(code, c)
			hub.Unregister(code, c)
		}(i)
	}
	wg.Wait()

	stats := hub.GetHubStats()
	assert.Equal(t, 0, stats.TotalClients)
	assert.Equal(t, int64(8), stats.TotalConnections)
}
