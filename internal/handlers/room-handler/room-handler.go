package room_handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Javier1520/share-board/config"
	"github.com/Javier1520/share-board/internal/dtos/room_dto"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/internal/handlers"
	"github.com/Javier1520/share-board/internal/middleware"
	"github.com/Javier1520/share-board/internal/queue"
	board_repo "github.com/Javier1520/share-board/internal/repo/board"
	room_repo "github.com/Javier1520/share-board/internal/repo/room"
	board_service "github.com/Javier1520/share-board/internal/use-case/board-case"
	room_service "github.com/Javier1520/share-board/internal/use-case/room-case"
	ticket_service "github.com/Javier1520/share-board/internal/use-case/ticket-case"
	"github.com/Javier1520/share-board/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RoomHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Rooms    room_service.RoomServiceContract
	Board    board_service.BoardServiceContract
	Tickets  ticket_service.TicketServiceContract
}

func NewRoomHandler(appState *state.AppState, cfg *config.AppConfig) *RoomHandler {
	roomRepo := room_repo.NewRoomRepo(appState)
	boardRepo := board_repo.NewBoardRepo(appState)
	producer := queue.NewProducer(appState.Redis)

	return &RoomHandler{
		State:    appState,
		Validate: validator.New(),
		Rooms:    room_service.NewRoomService(roomRepo),
		Board:    board_service.NewBoardService(boardRepo, roomRepo, producer, cfg.BOARD.DrawingPolicy, cfg.BOARD.CompactEvery),
		Tickets:  ticket_service.NewTicketService(appState.Redis, time.Duration(cfg.TICKET.TTLMinutes)*time.Minute),
	}
}

func requestMeta(r *http.Request) (userID, username, reqID string) {
	reqID = "unknown"
	if id, ok := r.Context().Value(middleware.RequestIdKey).(string); ok {
		reqID = id
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		userID = claims.Sub
		username = claims.Username
	}
	return
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, _, reqID := requestMeta(r)
	if userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "missing user identity", "auth")
	}

	resp, err := h.Rooms.CreateRoom(r.Context(), userID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("room created", *resp, reqID))

	return nil
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, _, reqID := requestMeta(r)
	if userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "missing user identity", "auth")
	}

	resp, err := h.Rooms.ListRooms(r.Context(), userID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("rooms listed", resp, reqID))

	return nil
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	_, _, reqID := requestMeta(r)
	code := chi.URLParam(r, "code")

	room, err := h.Rooms.GetRoomByCode(r.Context(), code)
	if err != nil {
		return err
	}

	resp := room_dto.RoomResponse{
		Code:        room.Code.String(),
		HostID:      room.HostID,
		IsActive:    room.IsActive,
		SharedText:  room.SharedText,
		DrawingData: room.DrawingData,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room fetched", resp, reqID))

	return nil
}

func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, _, reqID := requestMeta(r)
	if userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "missing user identity", "auth")
	}
	code := chi.URLParam(r, "code")

	if err := h.Rooms.JoinRoom(r.Context(), code, userID); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room joined", map[string]string{"room_code": code}, reqID))

	return nil
}

func (h *RoomHandler) LeaveRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, _, reqID := requestMeta(r)
	if userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "missing user identity", "auth")
	}
	code := chi.URLParam(r, "code")

	closed, err := h.Rooms.LeaveRoom(r.Context(), code, userID)
	if err != nil {
		return err
	}

	status := "left"
	if closed {
		status = "closed"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room left", room_dto.LeaveRoomResponse{Status: status}, reqID))

	return nil
}

// IssueTicket mints a single-use websocket credential for a room the user
// may attach to. The token travels back once and is gone after redemption.
func (h *RoomHandler) IssueTicket(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, username, reqID := requestMeta(r)
	if userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "missing user identity", "auth")
	}
	code := chi.URLParam(r, "code")

	if _, err := h.Rooms.CanAttach(r.Context(), code, userID); err != nil {
		return err
	}

	ticket, err := h.Tickets.Issue(r.Context(), userID, username)
	if err != nil {
		return err
	}

	resp := room_dto.TicketResponse{
		Token:     ticket.Token,
		ExpiresAt: ticket.ExpiresAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("ticket issued", resp, reqID))

	return nil
}

func (h *RoomHandler) GetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, _, reqID := requestMeta(r)
	if userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "missing user identity", "auth")
	}
	code := chi.URLParam(r, "code")

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			return app_error.NewAppError(http.StatusBadRequest, "limit must be between 1 and 200", "limit")
		}
		limit = parsed
	}

	var beforeID *string
	if raw := r.URL.Query().Get("before_id"); raw != "" {
		beforeID = &raw
	}

	messages, err := h.Board.ListMessages(r.Context(), code, limit, beforeID)
	if err != nil {
		return err
	}

	items := make([]room_dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		items = append(items, room_dto.MessageResponse{
			ID:         msg.ID.Hex(),
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			Content:    msg.Content,
			CreatedAt:  msg.CreatedAt,
		})
	}

	resp := room_dto.MessagesPageResponse{Messages: items}
	if len(items) == limit {
		resp.NextBeforeID = items[0].ID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("messages fetched", resp, reqID))

	return nil
}
