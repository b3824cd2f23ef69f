package room_service

import (
	"context"

	"github.com/Javier1520/share-board/internal/dtos/room_dto"
	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
)

type RoomServiceContract interface {
	CreateRoom(ctx context.Context, hostID string) (*room_dto.RoomResponse, *app_error.AppError)
	ListRooms(ctx context.Context, userID string) ([]room_dto.RoomResponse, *app_error.AppError)
	JoinRoom(ctx context.Context, code, userID string) *app_error.AppError
	// LeaveRoom closes the room when the host leaves and removes the
	// participant otherwise; closed reports which branch was taken.
	LeaveRoom(ctx context.Context, code, userID string) (closed bool, err *app_error.AppError)
	GetRoomByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError)
	// CanAttach decides whether a real-time session may bind to the room:
	// it must exist and be active, unless the user is the host.
	CanAttach(ctx context.Context, code, userID string) (*entity.Room, *app_error.AppError)
}
