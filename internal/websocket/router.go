package websocket

import (
	"context"
	"time"

	board_service "github.com/Javier1520/share-board/internal/use-case/board-case"
	"github.com/rs/zerolog/log"
)

// Router translates inbound frames into persistence calls and broadcasts.
// Persistence always completes before the broadcast is submitted, in the
// same goroutine, so members never observe an event whose write failed.
type Router struct {
	Hub   *Hub
	Board board_service.BoardServiceContract
}

func NewRouter(hub *Hub, board board_service.BoardServiceContract) *Router {
	return &Router{
		Hub:   hub,
		Board: board,
	}
}

// Dispatch handles one inbound frame from a client. Malformed and unknown
// frames are logged and dropped; the session stays up either way.
func (rt *Router) Dispatch(ctx context.Context, c *Client, data []byte) {
	var env Envelope
	if err := jsonEnc.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("clientID", c.ID).Str("roomCode", c.RoomCode).Msg("ws: malformed frame, dropping")
		return
	}

	switch env.Kind() {
	case ActionMessage, ActionChatMessage:
		rt.handleMessage(ctx, c, &env)

	case ActionUpdateText:
		// live keystroke relay, nothing is persisted until save
		rt.Hub.BroadcastToRoomExcept(c.RoomCode, Event{
			Type:       EventSharedText,
			SenderID:   c.UserID,
			Username:   c.Username,
			SharedText: env.SharedText,
		}, c)

	case ActionSaveText:
		if err := rt.Board.SaveSharedText(ctx, c.RoomCode, env.SharedText); err != nil {
			rt.sendError(c, "failed to save shared text")
			return
		}

	case ActionUpdateDrawing, ActionDrawing:
		if err := rt.Board.ApplyDrawing(ctx, c.RoomCode, c.UserID, env.Drawing()); err != nil {
			rt.sendError(c, "failed to record drawing update")
			return
		}
		rt.Hub.BroadcastToRoomExcept(c.RoomCode, Event{
			Type:        EventDrawing,
			SenderID:    c.UserID,
			Username:    c.Username,
			DrawingData: env.Drawing(),
		}, c)

	case ActionSaveDrawing:
		if err := rt.Board.SaveDrawing(ctx, c.RoomCode, c.UserID, env.Drawing()); err != nil {
			rt.sendError(c, "failed to save drawing")
			return
		}

	case EventUserJoin, EventUserLeave:
		// server-generated types, never accepted from clients

	default:
		log.Warn().Str("action", env.Kind()).Str("clientID", c.ID).Str("roomCode", c.RoomCode).Msg("ws: unknown action, dropping")
	}
}

func (rt *Router) handleMessage(ctx context.Context, c *Client, env *Envelope) {
	msg, err := rt.Board.PostMessage(ctx, c.RoomCode, c.UserID, c.Username, env.Content)
	if err != nil {
		rt.sendError(c, "failed to store message")
		return
	}

	// chat goes to everyone, sender included, so all members share one
	// ordered transcript
	rt.Hub.BroadcastToRoom(c.RoomCode, Event{
		Type:      EventMessage,
		SenderID:  c.UserID,
		Username:  c.Username,
		Content:   msg.Content,
		Timestamp: msg.CreatedAt.Unix(),
	})
}

// sendError reports a failure to the offending client only. The rest of the
// room never hears about writes that did not happen.
func (rt *Router) sendError(c *Client, msg string) {
	data, err := jsonEnc.Marshal(Event{
		Type:      EventError,
		RoomCode:  c.RoomCode,
		Content:   msg,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return
	}

	select {
	case c.Send <- data:
	default:
	}
}
