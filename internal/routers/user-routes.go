package routers

import (
	"github.com/Javier1520/share-board/internal/handlers"
	user_handler "github.com/Javier1520/share-board/internal/handlers/user-handler"
	"github.com/Javier1520/share-board/state"
	"github.com/go-chi/chi/v5"
)

func UserRouter(r chi.Router, appState *state.AppState) {
	userHandler := user_handler.NewUserHandler(appState)

	r.Post("/api/v1/users", handlers.WrapHandler(userHandler.Register))
	r.Post("/api/v1/users/login", handlers.WrapHandler(userHandler.Login))
}
