package user_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Javier1520/share-board/internal/dtos/user_dto"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/internal/handlers"
	"github.com/Javier1520/share-board/internal/middleware"
	user_repo "github.com/Javier1520/share-board/internal/repo/user"
	user_service "github.com/Javier1520/share-board/internal/use-case/user-case"
	"github.com/Javier1520/share-board/state"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  user_service.UserServiceContract
}

func NewUserHandler(appState *state.AppState) *UserHandler {
	return &UserHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  user_service.NewUserService(user_repo.NewUserRepo(appState), appState.JwtSecret.Private),
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.RegisterUserRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.Register(r.Context(), req)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("user registered successfully", *resp, reqID))

	return nil
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.LoginUserRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("login successful", *resp, reqID))

	return nil
}
