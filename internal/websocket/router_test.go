package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	ticket_service "github.com/Javier1520/share-board/internal/use-case/ticket-case"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardCall struct {
	op      string
	room    string
	payload string
}

type fakeBoardService struct {
	calls   []boardCall
	failAll bool
}

func (f *fakeBoardService) PostMessage(ctx context.Context, roomCode, senderID, senderName, content string) (*entity.Message, *app_error.AppError) {
	if f.failAll {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "store down", "")
	}
	f.calls = append(f.calls, boardCall{op: "post_message", room: roomCode, payload: content})
	return &entity.Message{
		RoomCode:   roomCode,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		CreatedAt:  time.Now(),
	}, nil
}

func (f *fakeBoardService) ListMessages(ctx context.Context, roomCode string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError) {
	return nil, nil
}

func (f *fakeBoardService) ApplyDrawing(ctx context.Context, roomCode, userID string, payload json.RawMessage) *app_error.AppError {
	if f.failAll {
		return app_error.NewAppError(http.StatusInternalServerError, "store down", "")
	}
	f.calls = append(f.calls, boardCall{op: "apply_drawing", room: roomCode, payload: string(payload)})
	return nil
}

func (f *fakeBoardService) SaveDrawing(ctx context.Context, roomCode, userID string, payload json.RawMessage) *app_error.AppError {
	if f.failAll {
		return app_error.NewAppError(http.StatusInternalServerError, "store down", "")
	}
	f.calls = append(f.calls, boardCall{op: "save_drawing", room: roomCode, payload: string(payload)})
	return nil
}

func (f *fakeBoardService) SaveSharedText(ctx context.Context, roomCode, text string) *app_error.AppError {
	if f.failAll {
		return app_error.NewAppError(http.StatusInternalServerError, "store down", "")
	}
	f.calls = append(f.calls, boardCall{op: "save_shared_text", room: roomCode, payload: text})
	return nil
}

func (f *fakeBoardService) Policy() string { return "append-log" }

func setupRoomPair(t *testing.T, board *fakeBoardService) (*Hub, *Router, *Client, *Client) {
	t.Helper()

	hub := NewHub()
	t.Cleanup(hub.Close)
	router := NewRouter(hub, board)

	sender := newTestClient("c1", "u1", "alice", "room-1")
	peer := newTestClient("c2", "u2", "bob", "room-1")
	hub.Register("room-1", sender)
	hub.Register("room-1", peer)
	drainEvent(t, sender) // bob's join

	return hub, router, sender, peer
}

func TestRouterChatPersistsThenBroadcasts(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, peer := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"message","content":"hello"}`))

	require.Len(t, board.calls, 1)
	assert.Equal(t, "post_message", board.calls[0].op)
	assert.Equal(t, "hello", board.calls[0].payload)

	// chat reaches everyone, the sender included
	for _, c := range []*Client{sender, peer} {
		ev := drainEvent(t, c)
		assert.Equal(t, EventMessage, ev.Type)
		assert.Equal(t, "hello", ev.Content)
		assert.Equal(t, "u1", ev.SenderID)
		assert.Equal(t, "alice", ev.Username)
	}
}

func TestRouterStorageFailureStaysLocal(t *testing.T) {
	board := &fakeBoardService{failAll: true}
	_, router, sender, peer := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"message","content":"hello"}`))

	// the sender hears about the failure, the room hears nothing
	ev := drainEvent(t, sender)
	assert.Equal(t, EventError, ev.Type)
	requireNoEvent(t, peer)
}

func TestRouterLiveTextSkipsSenderAndStore(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, peer := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"update_shared_text","shared_text":"draft"}`))

	assert.Empty(t, board.calls)

	ev := drainEvent(t, peer)
	assert.Equal(t, EventSharedText, ev.Type)
	assert.Equal(t, "draft", ev.SharedText)
	requireNoEvent(t, sender)
}

func TestRouterSaveTextPersistsWithoutBroadcast(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, peer := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"save_shared_text","shared_text":"final"}`))

	require.Len(t, board.calls, 1)
	assert.Equal(t, "save_shared_text", board.calls[0].op)
	assert.Equal(t, "final", board.calls[0].payload)
	requireNoEvent(t, sender)
	requireNoEvent(t, peer)
}

func TestRouterDrawingUpdatePersistsThenRelays(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, peer := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"update_drawing","drawing_data":{"points":[1,2]}}`))

	require.Len(t, board.calls, 1)
	assert.Equal(t, "apply_drawing", board.calls[0].op)
	assert.JSONEq(t, `{"points":[1,2]}`, board.calls[0].payload)

	ev := drainEvent(t, peer)
	assert.Equal(t, EventDrawing, ev.Type)
	assert.JSONEq(t, `{"points":[1,2]}`, string(ev.DrawingData))
	requireNoEvent(t, sender)
}

func TestRouterDropsUnknownAndMalformed(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, peer := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"self_destruct"}`))
	router.Dispatch(context.Background(), sender, []byte(`not json at all`))
	router.Dispatch(context.Background(), sender, []byte(`{"action":"user_join"}`))

	assert.Empty(t, board.calls)
	requireNoEvent(t, sender)
	requireNoEvent(t, peer)

	// the session is still usable afterwards
	router.Dispatch(context.Background(), sender, []byte(`{"action":"message","content":"still here"}`))
	ev := drainEvent(t, peer)
	assert.Equal(t, "still here", ev.Content)
}

func TestRouterAcceptsLegacyTypeField(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, _ := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"type":"save_shared_text","shared_text":"typed"}`))

	require.Len(t, board.calls, 1)
	assert.Equal(t, "save_shared_text", board.calls[0].op)
}

func TestRouterAcceptsLegacyActionNames(t *testing.T) {
	board := &fakeBoardService{}
	_, router, sender, _ := setupRoomPair(t, board)

	router.Dispatch(context.Background(), sender, []byte(`{"action":"chat_message","content":"old client"}`))
	router.Dispatch(context.Background(), sender, []byte(`{"action":"drawing","data":{"points":[3]}}`))

	require.Len(t, board.calls, 2)
	assert.Equal(t, "post_message", board.calls[0].op)
	assert.Equal(t, "old client", board.calls[0].payload)
	assert.Equal(t, "apply_drawing", board.calls[1].op)
	assert.JSONEq(t, `{"points":[3]}`, board.calls[1].payload)
}

func TestCloseCodeMapping(t *testing.T) {
	assert.Equal(t, CloseUnauthenticated, closeCodeFor(&ticket_service.AuthError{Kind: ticket_service.AuthMissing}))
	assert.Equal(t, CloseTicketInvalid, closeCodeFor(&ticket_service.AuthError{Kind: ticket_service.AuthNotFound}))
	assert.Equal(t, CloseTicketInvalid, closeCodeFor(&ticket_service.AuthError{Kind: ticket_service.AuthExpired}))
	assert.Equal(t, CloseTicketInvalid, closeCodeFor(&ticket_service.AuthError{Kind: ticket_service.AuthMalformed}))
	// a ticket-store outage is the server's fault, not the ticket's
	assert.Equal(t, CloseInternalError, closeCodeFor(&ticket_service.AuthError{Kind: ticket_service.AuthInternal}))
}

func TestExtractRoomCodeFallbacks(t *testing.T) {
	h := &WebSocketHandler{}

	r := httptest.NewRequest(http.MethodGet, "/ws/rooms/abc-123", nil)
	assert.Equal(t, "abc-123", h.extractRoomCode(r))

	r = httptest.NewRequest(http.MethodGet, "/ws?room=xyz", nil)
	assert.Equal(t, "xyz", h.extractRoomCode(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.Equal(t, "", h.extractRoomCode(r))
}
