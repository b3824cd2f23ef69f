package room_repo

import (
	"context"
	"encoding/json"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
)

type RoomRepoContract interface {
	CreateRoom(ctx context.Context, hostID string) (*entity.Room, *app_error.AppError)
	FindRoomByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError)
	FindRoomsForUser(ctx context.Context, userID string) ([]*entity.Room, *app_error.AppError)
	SetActive(ctx context.Context, code string, active bool) *app_error.AppError
	AddParticipant(ctx context.Context, code, userID string) *app_error.AppError
	RemoveParticipant(ctx context.Context, code, userID string) *app_error.AppError
	FindParticipants(ctx context.Context, code string) ([]*entity.RoomParticipant, *app_error.AppError)
	SaveSharedText(ctx context.Context, code, text string) *app_error.AppError
	SaveDrawingSnapshot(ctx context.Context, code string, data json.RawMessage) *app_error.AppError
	TouchRoom(ctx context.Context, code string) *app_error.AppError
}
