package board_repo

import (
	"context"
	"encoding/json"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BoardRepoContract interface {
	InsertMessage(ctx context.Context, msg *entity.Message) (primitive.ObjectID, *app_error.AppError)
	// ListMessages returns messages of a room oldest-to-newest; beforeID is
	// an opaque cursor for paging backwards through history.
	ListMessages(ctx context.Context, roomCode string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError)
	InsertStroke(ctx context.Context, stroke *entity.DrawingStroke) (primitive.ObjectID, *app_error.AppError)
	// ListStrokes returns the full append-only log of a room in insertion
	// order. The log is the source of truth in append-log mode; compaction
	// folds it into the room snapshot but never discards it.
	ListStrokes(ctx context.Context, roomCode string) ([]*entity.DrawingStroke, *app_error.AppError)
}

// StrokePayloads flattens a stroke list into the JSON document stored as the
// room's drawing snapshot during compaction.
func StrokePayloads(strokes []*entity.DrawingStroke) []json.RawMessage {
	payloads := make([]json.RawMessage, 0, len(strokes))
	for _, s := range strokes {
		payloads = append(payloads, s.Payload)
	}
	return payloads
}
