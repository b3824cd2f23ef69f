package board_service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Javier1520/share-board/config"
	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/internal/queue"
	board_repo "github.com/Javier1520/share-board/internal/repo/board"
	room_repo "github.com/Javier1520/share-board/internal/repo/room"
	"github.com/Javier1520/share-board/internal/utils/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type BoardService struct {
	BoardRepo    board_repo.BoardRepoContract
	RoomRepo     room_repo.RoomRepoContract
	Producer     queue.Producer
	policy       string
	compactEvery int

	// strokes appended per room since the last compaction enqueue
	counterMu sync.Mutex
	counters  map[string]int
}

func NewBoardService(boardRepo board_repo.BoardRepoContract, roomRepo room_repo.RoomRepoContract, producer queue.Producer, policy string, compactEvery int) BoardServiceContract {
	return &BoardService{
		BoardRepo:    boardRepo,
		RoomRepo:     roomRepo,
		Producer:     producer,
		policy:       policy,
		compactEvery: compactEvery,
		counters:     make(map[string]int),
	}
}

func (s *BoardService) Policy() string {
	return s.policy
}

func (s *BoardService) PostMessage(ctx context.Context, roomCode, senderID, senderName, content string) (*entity.Message, *app_error.AppError) {
	msg := &entity.Message{
		RoomCode:   roomCode,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := s.BoardRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.enqueueTouch(roomCode)
	return msg, nil
}

func (s *BoardService) ListMessages(ctx context.Context, roomCode string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError) {
	if limit <= 0 {
		limit = 50
	}
	return s.BoardRepo.ListMessages(ctx, roomCode, limit, beforeID)
}

func (s *BoardService) ApplyDrawing(ctx context.Context, roomCode, userID string, payload json.RawMessage) *app_error.AppError {
	if s.policy != config.DrawingPolicyAppendLog {
		// live deltas are transient under latest-snapshot; the client
		// persists via save_drawing
		return nil
	}

	stroke := &entity.DrawingStroke{
		RoomCode:  roomCode,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.BoardRepo.InsertStroke(ctx, stroke); err != nil {
		return err
	}

	s.noteStroke(roomCode)
	return nil
}

func (s *BoardService) SaveDrawing(ctx context.Context, roomCode, userID string, payload json.RawMessage) *app_error.AppError {
	if s.policy == config.DrawingPolicyAppendLog {
		return s.ApplyDrawing(ctx, roomCode, userID, payload)
	}

	if err := s.RoomRepo.SaveDrawingSnapshot(ctx, roomCode, payload); err != nil {
		return err
	}
	s.enqueueTouch(roomCode)
	return nil
}

func (s *BoardService) SaveSharedText(ctx context.Context, roomCode, text string) *app_error.AppError {
	if err := s.RoomRepo.SaveSharedText(ctx, roomCode, text); err != nil {
		return err
	}
	s.enqueueTouch(roomCode)
	return nil
}

// noteStroke counts appended strokes and schedules a compaction job each
// time the per-room budget is reached.
func (s *BoardService) noteStroke(roomCode string) {
	s.counterMu.Lock()
	s.counters[roomCode]++
	due := s.counters[roomCode] >= s.compactEvery
	if due {
		s.counters[roomCode] = 0
	}
	s.counterMu.Unlock()

	if !due {
		return
	}

	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      types.JobCompactDrawing,
		Payload:   queue.MustMarshal(types.CompactDrawingPayload{RoomCode: roomCode}),
		Priority:  2,
		MaxRetry:  5,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(30 * time.Minute).Unix(),
	}
	if err := s.Producer.Enqueue(context.Background(), job); err != nil {
		log.Error().Err(err).Str("room_code", roomCode).Msg("board: failed to enqueue compaction job")
	}
}

func (s *BoardService) enqueueTouch(roomCode string) {
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      types.JobTouchRoom,
		Payload:   queue.MustMarshal(types.TouchRoomPayload{RoomCode: roomCode}),
		Priority:  1,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(5 * time.Minute).Unix(),
	}
	if err := s.Producer.Enqueue(context.Background(), job); err != nil {
		log.Error().Err(err).Str("room_code", roomCode).Msg("board: failed to enqueue touch job")
	}
}
