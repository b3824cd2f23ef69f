package routers

import (
	"github.com/Javier1520/share-board/internal/websocket"
	"github.com/go-chi/chi/v5"
)

// WsRouter exposes the realtime attach point. Authentication happens inside
// the handler via ticket redemption, not JWT middleware: the ticket is the
// credential here.
func WsRouter(r chi.Router, wsHandler *websocket.WebSocketHandler) {
	r.Get("/ws/rooms/{code}", wsHandler.HandleConnection)
}
