package websocket

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var jsonEnc = jsoniter.ConfigCompatibleWithStandardLibrary

type Hub struct {
	// Room membership
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	// User tracking, for presence dedup across multiple tabs
	userClients map[string][]*Client
	userMu      sync.RWMutex

	// Hub lifecycle
	ctx    context.Context
	cancel context.CancelFunc

	// Metrics
	stats   HubStats
	statsMu sync.RWMutex

	cleanupTicker *time.Ticker
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		userClients: make(map[string][]*Client),
		ctx:         ctx,
		cancel:      cancel,
		stats: HubStats{
			LastReset: time.Now(),
		},
		cleanupTicker: time.NewTicker(1 * time.Minute),
	}

	go hub.cleanupRoutine()

	return hub
}

// Register adds a client to a room and announces the join to the other
// members. A second tab of the same user joins silently.
func (h *Hub) Register(roomCode string, client *Client) {
	h.mu.Lock()
	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[*Client]struct{})
	}
	h.rooms[roomCode][client] = struct{}{}
	roomSize := len(h.rooms[roomCode])
	h.mu.Unlock()

	h.userMu.Lock()
	otherTabs := 0
	for _, c := range h.userClients[client.UserID] {
		if c.RoomCode == roomCode {
			otherTabs++
		}
	}
	h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
	h.userMu.Unlock()

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	// announce to the others, never back to the joiner itself
	if otherTabs == 0 {
		h.BroadcastToRoomExcept(roomCode, Event{
			Type:      EventUserJoin,
			SenderID:  client.UserID,
			Username:  client.Username,
			Timestamp: time.Now().Unix(),
		}, client)
	}

	log.Info().Str("roomCode", roomCode).Str("clientID", client.ID).Str("userID", client.UserID).Int("roomSize", roomSize).Msg("ws: client registered to room")
}

// Unregister removes a client from a room. The leave event goes out only
// when the user has no remaining connection in the room.
func (h *Hub) Unregister(roomCode string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[roomCode]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, roomCode)
		}
	}
	h.mu.Unlock()

	h.userMu.Lock()
	userClients := h.userClients[client.UserID]
	for i, c := range userClients {
		if c == client {
			h.userClients[client.UserID] = append(userClients[:i], userClients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.userMu.Unlock()

	if !h.IsUserOnlineInRoom(roomCode, client.UserID) {
		h.BroadcastToRoom(roomCode, Event{
			Type:      EventUserLeave,
			SenderID:  client.UserID,
			Username:  client.Username,
			Timestamp: time.Now().Unix(),
		})
	}

	log.Info().Str("roomCode", roomCode).Str("clientID", client.ID).Str("userID", client.UserID).Msg("ws: client unregistered from room")
}

// BroadcastToRoom sends an event to every client in a room.
func (h *Hub) BroadcastToRoom(roomCode string, event Event) {
	h.broadcastToRoomInternal(roomCode, event, nil)
}

// BroadcastToRoomExcept sends an event to every client in a room except one,
// typically the sender of the triggering frame.
func (h *Hub) BroadcastToRoomExcept(roomCode string, event Event, except *Client) {
	h.broadcastToRoomInternal(roomCode, event, except)
}

// Enqueueing is deliberately serial: two broadcasts submitted one after the
// other from the same goroutine land in every member's send buffer in that
// order. A member whose buffer is full is dropped rather than allowed to
// stall or reorder the room.
func (h *Hub) broadcastToRoomInternal(roomCode string, event Event, except *Client) {
	event.RoomCode = roomCode
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := jsonEnc.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("roomCode", roomCode).Msg("ws: failed to marshal broadcast event")
		return
	}

	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[roomCode]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			if except != nil && client == except {
				continue
			}
			if client.IsActive() {
				targets = append(targets, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	sent := 0
	for _, client := range targets {
		select {
		case client.Send <- data:
			sent++
		case <-client.ctx.Done():
			// client is closing
		default:
			// slow consumer, evict instead of blocking the room
			log.Warn().Str("roomCode", roomCode).Str("clientID", client.ID).Msg("ws: slow consumer, dropping client")
			go client.Close()
		}
	}

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(sent)
	})

	log.Debug().Str("roomCode", roomCode).Int("targets", len(targets)).Str("eventType", event.Type).Msg("ws: broadcast completed")
}

// GetRoomClients returns all active clients in a room.
func (h *Hub) GetRoomClients(roomCode string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	if roomClients, ok := h.rooms[roomCode]; ok {
		for client := range roomClients {
			if client.IsActive() {
				clients = append(clients, client)
			}
		}
	}

	return clients
}

// IsUserOnlineInRoom reports whether a user has any active connection in a
// room.
func (h *Hub) IsUserOnlineInRoom(roomCode, userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomCode]
	if !ok {
		return false
	}

	for client := range roomClients {
		if client.UserID == userID && client.IsActive() {
			return true
		}
	}

	return false
}

// GetRoomStats returns statistics for a room.
func (h *Hub) GetRoomStats(roomCode string) map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := map[string]any{
		"room_code": roomCode,
		"exists":    false,
	}

	if clients, ok := h.rooms[roomCode]; ok {
		activeClients := 0
		uniqueUsers := make(map[string]bool)

		for client := range clients {
			if client.IsActive() {
				activeClients++
				uniqueUsers[client.UserID] = true
			}
		}

		stats["exists"] = true
		stats["total_connections"] = len(clients)
		stats["active_connections"] = activeClients
		stats["unique_users"] = len(uniqueUsers)
	}

	return stats
}

// GetHubStats returns overall hub statistics. The room totals are computed
// into the returned copy; concurrent callers never write shared state.
func (h *Hub) GetHubStats() HubStats {
	h.statsMu.RLock()
	stats := h.stats
	h.statsMu.RUnlock()

	h.mu.RLock()
	stats.TotalRooms = len(h.rooms)

	totalClients := 0
	for _, clients := range h.rooms {
		for client := range clients {
			if client.IsActive() {
				totalClients++
			}
		}
	}
	stats.TotalClients = totalClients
	h.mu.RUnlock()

	return stats
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

func (h *Hub) cleanupRoutine() {
	defer h.cleanupTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.cleanupTicker.C:
			h.performCleanup()
		}
	}
}

func (h *Hub) performCleanup() {
	now := time.Now()
	inactiveThreshold := 2 * time.Minute

	var toRemove []*Client

	h.mu.RLock()
	for _, clients := range h.rooms {
		for client := range clients {
			if !client.IsActive() || now.Sub(client.LastSeen()) > inactiveThreshold {
				toRemove = append(toRemove, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range toRemove {
		log.Info().
			Str("clientID", client.ID).
			Str("roomCode", client.RoomCode).
			Msg("ws: cleaning up inactive client")
		client.Close()
	}

	log.Debug().Int("cleaned", len(toRemove)).Msg("ws: cleanup routine completed")
}

// Close gracefully shuts down the hub.
func (h *Hub) Close() {
	log.Info().Msg("ws: shutting down hub")

	h.cancel()

	h.mu.RLock()
	var allClients []*Client
	for _, clients := range h.rooms {
		for client := range clients {
			allClients = append(allClients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range allClients {
		client.Close()
	}

	log.Info().Int("clients", len(allClients)).Msg("ws: hub shutdown completed")
}
