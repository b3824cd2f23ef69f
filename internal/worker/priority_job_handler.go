package worker

import (
	"context"
	"fmt"

	"github.com/Javier1520/share-board/internal/queue"
	"github.com/Javier1520/share-board/internal/utils/types"
	worker_handler "github.com/Javier1520/share-board/internal/worker/worker-handler"
)

func (wp *WorkerPool) HandleJob(ctx context.Context, job queue.Job) error {
	workerHandler := worker_handler.NewWorkerHandler(wp.boardRepo, wp.roomRepo)
	switch job.Type {
	case types.JobCompactDrawing:
		return workerHandler.HandleCompactDrawing(ctx, job.Payload)
	case types.JobTouchRoom:
		return workerHandler.HandleTouchRoom(ctx, job.Payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}
