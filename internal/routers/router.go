package routers

import (
	"net/http"

	"github.com/Javier1520/share-board/config"
	"github.com/Javier1520/share-board/internal/middleware"
	"github.com/Javier1520/share-board/internal/websocket"
	"github.com/Javier1520/share-board/state"
	"github.com/go-chi/chi/v5"
)

func NewRouter(appState *state.AppState, cfg *config.AppConfig, wsHub *websocket.Hub, wsHandler *websocket.WebSocketHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	UserRouter(r, appState)
	RoomRouter(r, appState, cfg)
	WsRouter(r, wsHandler)
	HubRouter(r, wsHub)
	return r
}
