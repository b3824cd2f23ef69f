package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Javier1520/share-board/internal/utils/types"
)

// HandleTouchRoom bumps the room's updated_at so activity ordering in room
// listings stays correct without a postgres write on the hot path.
func (h *WorkerHandler) HandleTouchRoom(ctx context.Context, payload json.RawMessage) error {
	var data types.TouchRoomPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("touch_room: invalid payload: %w", err)
	}

	if appErr := h.RoomRepo.TouchRoom(ctx, data.RoomCode); appErr != nil {
		return fmt.Errorf("touch_room: %s", appErr.Message)
	}

	return nil
}
