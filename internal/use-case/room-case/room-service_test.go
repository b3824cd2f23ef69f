package room_service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepo struct {
	rooms        map[string]*entity.Room
	participants map[string]map[string]string // code -> userID -> role
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:        make(map[string]*entity.Room),
		participants: make(map[string]map[string]string),
	}
}

func (f *fakeRoomRepo) CreateRoom(ctx context.Context, hostID string) (*entity.Room, *app_error.AppError) {
	room := &entity.Room{
		Code:     uuid.New(),
		HostID:   hostID,
		IsActive: true,
	}
	f.rooms[room.Code.String()] = room
	f.participants[room.Code.String()] = map[string]string{hostID: "host"}
	return room, nil
}

func (f *fakeRoomRepo) FindRoomByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError) {
	room, ok := f.rooms[code]
	if !ok {
		return nil, app_error.NewAppError(http.StatusNotFound, "room not found", "room")
	}
	return room, nil
}

func (f *fakeRoomRepo) FindRoomsForUser(ctx context.Context, userID string) ([]*entity.Room, *app_error.AppError) {
	var rooms []*entity.Room
	for code, room := range f.rooms {
		if room.HostID == userID {
			rooms = append(rooms, room)
			continue
		}
		if _, ok := f.participants[code][userID]; ok {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (f *fakeRoomRepo) SetActive(ctx context.Context, code string, active bool) *app_error.AppError {
	room, ok := f.rooms[code]
	if !ok {
		return app_error.NewAppError(http.StatusNotFound, "room not found", "room")
	}
	room.IsActive = active
	return nil
}

func (f *fakeRoomRepo) AddParticipant(ctx context.Context, code, userID string) *app_error.AppError {
	if _, ok := f.participants[code]; !ok {
		f.participants[code] = make(map[string]string)
	}
	if _, ok := f.participants[code][userID]; !ok {
		f.participants[code][userID] = "participant"
	}
	return nil
}

func (f *fakeRoomRepo) RemoveParticipant(ctx context.Context, code, userID string) *app_error.AppError {
	delete(f.participants[code], userID)
	return nil
}

func (f *fakeRoomRepo) FindParticipants(ctx context.Context, code string) ([]*entity.RoomParticipant, *app_error.AppError) {
	var members []*entity.RoomParticipant
	for userID, role := range f.participants[code] {
		members = append(members, &entity.RoomParticipant{RoomCode: code, UserID: userID, Role: role})
	}
	return members, nil
}

func (f *fakeRoomRepo) SaveSharedText(ctx context.Context, code, text string) *app_error.AppError {
	room, ok := f.rooms[code]
	if !ok {
		return app_error.NewAppError(http.StatusNotFound, "room not found", "room")
	}
	room.SharedText = text
	return nil
}

func (f *fakeRoomRepo) SaveDrawingSnapshot(ctx context.Context, code string, data json.RawMessage) *app_error.AppError {
	room, ok := f.rooms[code]
	if !ok {
		return app_error.NewAppError(http.StatusNotFound, "room not found", "room")
	}
	room.DrawingData = data
	return nil
}

func (f *fakeRoomRepo) TouchRoom(ctx context.Context, code string) *app_error.AppError {
	return nil
}

func TestJoinRoomActive(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "host-1")
	require.Nil(t, err)

	err = svc.JoinRoom(ctx, room.Code, "guest-1")
	require.Nil(t, err)
	assert.Equal(t, "participant", repo.participants[room.Code]["guest-1"])

	// joining twice is a no-op, not an error
	err = svc.JoinRoom(ctx, room.Code, "guest-1")
	require.Nil(t, err)
}

func TestJoinRoomInactive(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "host-1")
	require.Nil(t, err)
	require.Nil(t, repo.SetActive(ctx, room.Code, false))

	err = svc.JoinRoom(ctx, room.Code, "guest-1")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "room is not active", err.Message)
}

func TestHostLeaveClosesRoom(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "host-1")
	require.Nil(t, err)
	require.Nil(t, svc.JoinRoom(ctx, room.Code, "guest-1"))

	closed, err := svc.LeaveRoom(ctx, room.Code, "host-1")
	require.Nil(t, err)
	assert.True(t, closed, "host leaving must close the room")
	assert.False(t, repo.rooms[room.Code].IsActive)

	// nobody new can join once the host has left
	joinErr := svc.JoinRoom(ctx, room.Code, "guest-2")
	require.NotNil(t, joinErr)
	assert.Equal(t, "room is not active", joinErr.Message)
}

func TestParticipantLeaveKeepsRoomOpen(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "host-1")
	require.Nil(t, err)
	require.Nil(t, svc.JoinRoom(ctx, room.Code, "guest-1"))

	closed, err := svc.LeaveRoom(ctx, room.Code, "guest-1")
	require.Nil(t, err)
	assert.False(t, closed)
	assert.True(t, repo.rooms[room.Code].IsActive)
	_, stillThere := repo.participants[room.Code]["guest-1"]
	assert.False(t, stillThere)
}

func TestCanAttach(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "host-1")
	require.Nil(t, err)

	// active room: anyone can attach
	_, attachErr := svc.CanAttach(ctx, room.Code, "guest-1")
	require.Nil(t, attachErr)

	require.Nil(t, repo.SetActive(ctx, room.Code, false))

	// inactive room hides itself from everyone but the host
	_, attachErr = svc.CanAttach(ctx, room.Code, "guest-1")
	require.NotNil(t, attachErr)
	assert.Equal(t, http.StatusNotFound, attachErr.Code)

	_, attachErr = svc.CanAttach(ctx, room.Code, "host-1")
	require.Nil(t, attachErr)

	// unknown room
	_, attachErr = svc.CanAttach(ctx, uuid.NewString(), "guest-1")
	require.NotNil(t, attachErr)
	assert.Equal(t, http.StatusNotFound, attachErr.Code)
}
