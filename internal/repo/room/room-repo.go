package room_repo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RoomRepo struct {
	AppState *state.AppState
}

func NewRoomRepo(appState *state.AppState) RoomRepoContract {
	return &RoomRepo{
		AppState: appState,
	}
}

func (r *RoomRepo) CreateRoom(ctx context.Context, hostID string) (*entity.Room, *app_error.AppError) {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	newRoom := &entity.Room{
		Code:        uuid.New(),
		HostID:      hostID,
		IsActive:    true,
		DrawingData: json.RawMessage("{}"),
	}

	if err := tx.Create(newRoom).Error; err != nil {
		tx.Rollback()
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to create room", "db-error")
	}

	host := entity.RoomParticipant{
		RoomCode: newRoom.Code.String(),
		UserID:   hostID,
		Role:     "host",
	}
	if err := tx.Create(&host).Error; err != nil {
		tx.Rollback()
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to add host to room", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to commit room creation", "db-error")
	}

	return newRoom, nil
}

func (r *RoomRepo) FindRoomByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError) {
	var room entity.Room
	if err := r.AppState.DB.WithContext(ctx).Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "room not found", "not-found")
		}
		log.Error().Err(err).Str("room_code", code).Msg("failed to fetch room")
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch room", "db-error")
	}
	return &room, nil
}

func (r *RoomRepo) FindRoomsForUser(ctx context.Context, userID string) ([]*entity.Room, *app_error.AppError) {
	var rooms []*entity.Room

	query := `
		SELECT r.* FROM rooms r
		WHERE r.host_id = ?
		OR r.code::text IN (
			SELECT p.room_code FROM room_participants p WHERE p.user_id = ?
		)
		ORDER BY r.created_at DESC
	`
	if err := r.AppState.DB.WithContext(ctx).Raw(query, userID, userID).Scan(&rooms).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to list rooms", "db-error")
	}

	return rooms, nil
}

func (r *RoomRepo) SetActive(ctx context.Context, code string, active bool) *app_error.AppError {
	result := r.AppState.DB.WithContext(ctx).Model(&entity.Room{}).Where("code = ?", code).Update("is_active", active)
	if result.Error != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update room state", "db-error")
	}
	if result.RowsAffected == 0 {
		return app_error.NewAppError(http.StatusNotFound, "room not found", "not-found")
	}
	return nil
}

func (r *RoomRepo) AddParticipant(ctx context.Context, code, userID string) *app_error.AppError {
	participant := entity.RoomParticipant{
		RoomCode: code,
		UserID:   userID,
		Role:     "participant",
	}

	// joining twice is a no-op
	err := r.AppState.DB.WithContext(ctx).
		Where("room_code = ? AND user_id = ?", code, userID).
		FirstOrCreate(&participant).Error
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to add participant", "db-error")
	}
	return nil
}

func (r *RoomRepo) RemoveParticipant(ctx context.Context, code, userID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).
		Where("room_code = ? AND user_id = ?", code, userID).
		Delete(&entity.RoomParticipant{}).Error
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to remove participant", "db-error")
	}
	return nil
}

func (r *RoomRepo) FindParticipants(ctx context.Context, code string) ([]*entity.RoomParticipant, *app_error.AppError) {
	var participants []*entity.RoomParticipant
	if err := r.AppState.DB.WithContext(ctx).Where("room_code = ?", code).Find(&participants).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch participants", "db-error")
	}
	return participants, nil
}

// SaveSharedText is last-write-wins; server-received order is the tiebreak,
// so a plain single-column update is sufficient.
func (r *RoomRepo) SaveSharedText(ctx context.Context, code, text string) *app_error.AppError {
	result := r.AppState.DB.WithContext(ctx).Model(&entity.Room{}).Where("code = ?", code).Update("shared_text", text)
	if result.Error != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to save shared text", "db-error")
	}
	if result.RowsAffected == 0 {
		return app_error.NewAppError(http.StatusNotFound, "room not found", "not-found")
	}
	return nil
}

func (r *RoomRepo) SaveDrawingSnapshot(ctx context.Context, code string, data json.RawMessage) *app_error.AppError {
	result := r.AppState.DB.WithContext(ctx).Model(&entity.Room{}).Where("code = ?", code).Update("drawing_data", data)
	if result.Error != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to save drawing snapshot", "db-error")
	}
	if result.RowsAffected == 0 {
		return app_error.NewAppError(http.StatusNotFound, "room not found", "not-found")
	}
	return nil
}

func (r *RoomRepo) TouchRoom(ctx context.Context, code string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.Room{}).Where("code = ?", code).Update("updated_at", time.Now()).Error
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to touch room", "db-error")
	}
	return nil
}
