package room_service

import (
	"context"
	"net/http"

	"github.com/Javier1520/share-board/internal/dtos/room_dto"
	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	room_repo "github.com/Javier1520/share-board/internal/repo/room"
	"github.com/rs/zerolog/log"
)

type RoomService struct {
	RoomRepo room_repo.RoomRepoContract
}

func NewRoomService(roomRepo room_repo.RoomRepoContract) RoomServiceContract {
	return &RoomService{
		RoomRepo: roomRepo,
	}
}

func toRoomResponse(room *entity.Room) room_dto.RoomResponse {
	return room_dto.RoomResponse{
		Code:        room.Code.String(),
		HostID:      room.HostID,
		IsActive:    room.IsActive,
		SharedText:  room.SharedText,
		DrawingData: room.DrawingData,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, hostID string) (*room_dto.RoomResponse, *app_error.AppError) {
	room, err := s.RoomRepo.CreateRoom(ctx, hostID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("room_code", room.Code.String()).Str("host_id", hostID).Msg("room created")
	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *RoomService) ListRooms(ctx context.Context, userID string) ([]room_dto.RoomResponse, *app_error.AppError) {
	rooms, err := s.RoomRepo.FindRoomsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]room_dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, toRoomResponse(room))
	}
	return resp, nil
}

func (s *RoomService) JoinRoom(ctx context.Context, code, userID string) *app_error.AppError {
	room, err := s.RoomRepo.FindRoomByCode(ctx, code)
	if err != nil {
		return err
	}

	if !room.IsActive {
		return app_error.NewAppError(http.StatusBadRequest, "room is not active", "room-state")
	}

	return s.RoomRepo.AddParticipant(ctx, code, userID)
}

func (s *RoomService) LeaveRoom(ctx context.Context, code, userID string) (bool, *app_error.AppError) {
	room, err := s.RoomRepo.FindRoomByCode(ctx, code)
	if err != nil {
		return false, err
	}

	// the host never leaves quietly: departure deactivates the room so no
	// new session can attach
	if room.HostID == userID {
		if err := s.RoomRepo.SetActive(ctx, code, false); err != nil {
			return false, err
		}
		log.Info().Str("room_code", code).Msg("host left, room closed")
		return true, nil
	}

	if err := s.RoomRepo.RemoveParticipant(ctx, code, userID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *RoomService) GetRoomByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError) {
	return s.RoomRepo.FindRoomByCode(ctx, code)
}

func (s *RoomService) CanAttach(ctx context.Context, code, userID string) (*entity.Room, *app_error.AppError) {
	room, err := s.RoomRepo.FindRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !room.IsActive && room.HostID != userID {
		return nil, app_error.NewAppError(http.StatusNotFound, "room is not active", "room-state")
	}

	return room, nil
}
