package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"

	board_repo "github.com/Javier1520/share-board/internal/repo/board"
	"github.com/Javier1520/share-board/internal/utils/types"
	"github.com/rs/zerolog/log"
)

// HandleCompactDrawing folds a room's stroke log into the drawing snapshot
// stored on the room row. The log itself is kept: replay from the beginning
// must always be possible, the snapshot only spares readers the full scan.
func (h *WorkerHandler) HandleCompactDrawing(ctx context.Context, payload json.RawMessage) error {
	var data types.CompactDrawingPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("compact_drawing: invalid payload: %w", err)
	}

	strokes, appErr := h.BoardRepo.ListStrokes(ctx, data.RoomCode)
	if appErr != nil {
		return fmt.Errorf("compact_drawing: list strokes: %s", appErr.Message)
	}

	if len(strokes) == 0 {
		return nil
	}

	snapshot, err := json.Marshal(board_repo.StrokePayloads(strokes))
	if err != nil {
		return fmt.Errorf("compact_drawing: marshal snapshot: %w", err)
	}

	if appErr := h.RoomRepo.SaveDrawingSnapshot(ctx, data.RoomCode, snapshot); appErr != nil {
		return fmt.Errorf("compact_drawing: save snapshot: %s", appErr.Message)
	}

	log.Info().Str("room_code", data.RoomCode).Int("strokes", len(strokes)).Msg("worker: drawing compacted")
	return nil
}
