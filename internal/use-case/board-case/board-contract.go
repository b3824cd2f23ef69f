package board_service

import (
	"context"
	"encoding/json"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
)

// BoardServiceContract is the room-state surface the event router mutates.
// Every write happens before the corresponding broadcast.
type BoardServiceContract interface {
	PostMessage(ctx context.Context, roomCode, senderID, senderName, content string) (*entity.Message, *app_error.AppError)
	ListMessages(ctx context.Context, roomCode string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError)
	// ApplyDrawing handles a live drawing update under the configured
	// policy: append-log records the stroke, latest-snapshot treats the
	// update as transient (only save_drawing persists).
	ApplyDrawing(ctx context.Context, roomCode, userID string, payload json.RawMessage) *app_error.AppError
	// SaveDrawing handles an explicit save: logged like any stroke in
	// append-log mode, overwrites the room document in snapshot mode.
	SaveDrawing(ctx context.Context, roomCode, userID string, payload json.RawMessage) *app_error.AppError
	SaveSharedText(ctx context.Context, roomCode, text string) *app_error.AppError
	Policy() string
}
