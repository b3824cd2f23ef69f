package hub_handler

import (
	"encoding/json"
	"net/http"
	"time"

	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/internal/handlers"
	"github.com/Javier1520/share-board/internal/middleware"
	"github.com/Javier1520/share-board/internal/websocket"
	"github.com/go-chi/chi/v5"
)

type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{
		Hub: hub,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "share-board",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.GetHubStats()
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket stats", stats, reqID))
	return nil
}

func (h *HubHandler) HandleGetRoomStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomCode := chi.URLParam(r, "code")
	stats := h.Hub.GetRoomStats(roomCode)
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket room stats", stats, reqID))

	return nil
}

func (h *HubHandler) HandleGetRoomPresence(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomCode := chi.URLParam(r, "code")
	clients := h.Hub.GetRoomClients(roomCode)

	type memberInfo struct {
		UserID   string    `json:"user_id"`
		Username string    `json:"username"`
		LastSeen time.Time `json:"last_seen"`
	}

	seen := make(map[string]struct{})
	var members []memberInfo
	for _, client := range clients {
		if _, dup := seen[client.UserID]; dup {
			continue
		}
		seen[client.UserID] = struct{}{}
		members = append(members, memberInfo{
			UserID:   client.UserID,
			Username: client.Username,
			LastSeen: client.LastSeen(),
		})
	}

	resp := map[string]any{
		"room_code": roomCode,
		"count":     len(members),
		"members":   members,
	}
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get room presence", resp, reqID))
	return nil
}
