package routers

import (
	"github.com/Javier1520/share-board/internal/handlers"
	hub_handler "github.com/Javier1520/share-board/internal/handlers/hub-handler"
	"github.com/Javier1520/share-board/internal/websocket"
	"github.com/go-chi/chi/v5"
)

func HubRouter(r chi.Router, wsHub *websocket.Hub) {
	hubHandler := hub_handler.NewHubHandler(wsHub)
	r.Route("/api/v1/hub", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))

		r.Route("/rooms/{code}", func(r chi.Router) {
			r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetRoomStats))
			r.Get("/presence", handlers.WrapHandler(hubHandler.HandleGetRoomPresence))
		})
	})
}
