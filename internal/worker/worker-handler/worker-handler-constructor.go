package worker_handler

import (
	board_repo "github.com/Javier1520/share-board/internal/repo/board"
	room_repo "github.com/Javier1520/share-board/internal/repo/room"
)

type WorkerHandler struct {
	BoardRepo board_repo.BoardRepoContract
	RoomRepo  room_repo.RoomRepoContract
}

func NewWorkerHandler(boardRepo board_repo.BoardRepoContract, roomRepo room_repo.RoomRepoContract) *WorkerHandler {
	return &WorkerHandler{
		BoardRepo: boardRepo,
		RoomRepo:  roomRepo,
	}
}
