package routers

import (
	"github.com/Javier1520/share-board/config"
	"github.com/Javier1520/share-board/internal/handlers"
	room_handler "github.com/Javier1520/share-board/internal/handlers/room-handler"
	"github.com/Javier1520/share-board/internal/middleware"
	"github.com/Javier1520/share-board/state"
	"github.com/go-chi/chi/v5"
)

func RoomRouter(r chi.Router, appState *state.AppState, cfg *config.AppConfig) {
	roomHandler := room_handler.NewRoomHandler(appState, cfg)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret.Public))
		protected.Post("/api/v1/rooms", handlers.WrapHandler(roomHandler.CreateRoom))
		protected.Get("/api/v1/rooms", handlers.WrapHandler(roomHandler.ListRooms))
		protected.Get("/api/v1/rooms/{code}", handlers.WrapHandler(roomHandler.GetRoom))
		protected.Post("/api/v1/rooms/{code}/join", handlers.WrapHandler(roomHandler.JoinRoom))
		protected.Post("/api/v1/rooms/{code}/leave", handlers.WrapHandler(roomHandler.LeaveRoom))
		protected.Post("/api/v1/rooms/{code}/ticket", handlers.WrapHandler(roomHandler.IssueTicket))
		protected.Get("/api/v1/rooms/{code}/messages", handlers.WrapHandler(roomHandler.GetMessages))
	})
}
