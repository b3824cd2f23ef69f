package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Javier1520/share-board/config"
	"github.com/Javier1520/share-board/internal/queue"
	board_repo "github.com/Javier1520/share-board/internal/repo/board"
	room_repo "github.com/Javier1520/share-board/internal/repo/room"
	"github.com/Javier1520/share-board/internal/routers"
	board_service "github.com/Javier1520/share-board/internal/use-case/board-case"
	room_service "github.com/Javier1520/share-board/internal/use-case/room-case"
	ticket_service "github.com/Javier1520/share-board/internal/use-case/ticket-case"
	"github.com/Javier1520/share-board/internal/websocket"
	"github.com/Javier1520/share-board/internal/worker"
	"github.com/Javier1520/share-board/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	roomRepo := room_repo.NewRoomRepo(appState)
	boardRepo := board_repo.NewBoardRepo(appState)
	producer := queue.NewProducer(appState.Redis)

	rooms := room_service.NewRoomService(roomRepo)
	board := board_service.NewBoardService(boardRepo, roomRepo, producer, config.Conf.BOARD.DrawingPolicy, config.Conf.BOARD.CompactEvery)
	tickets := ticket_service.NewTicketService(appState.Redis, time.Duration(config.Conf.TICKET.TTLMinutes)*time.Minute)

	wsHub := websocket.NewHub()
	log.Info().Msg("Websocket hub initialized")

	wsRouter := websocket.NewRouter(wsHub, board)
	wsHandler := websocket.NewWebSocketHandler(wsHub, rooms, wsRouter, websocket.TicketAuth(tickets))
	go wsHandler.StartMaintenance(ctx.Done())

	log.Info().Str("drawing_policy", board.Policy()).Msg("Websocket handler initialized")

	r := routers.NewRouter(appState, config.Conf, wsHub, wsHandler)

	workerPool := worker.NewWorkerPool(appState.Redis, appState.Mongo, 5, boardRepo, roomRepo)
	workerPool.Start(ctx)
	go workerPool.StartDLQWorker(ctx)
	workerPool.StartDLQRetryConsumer(ctx)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}

	wsHub.Close()
	workerPool.Wait()
}
