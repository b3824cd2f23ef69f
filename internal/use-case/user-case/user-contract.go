package user_service

import (
	"context"

	"github.com/Javier1520/share-board/internal/dtos/user_dto"
	app_error "github.com/Javier1520/share-board/internal/errors"
)

type UserServiceContract interface {
	Register(ctx context.Context, req user_dto.RegisterUserRequest) (*user_dto.UserResponse, *app_error.AppError)
	Login(ctx context.Context, req user_dto.LoginUserRequest) (*user_dto.LoginResponse, *app_error.AppError)
}
