package user_service

import (
	"context"
	"crypto/rsa"
	"net/http"

	"github.com/Javier1520/share-board/internal/dtos/user_dto"
	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	user_repo "github.com/Javier1520/share-board/internal/repo/user"
	"github.com/Javier1520/share-board/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type UserService struct {
	UserRepo   user_repo.UserRepoContract
	PrivateKey *rsa.PrivateKey
}

func NewUserService(userRepo user_repo.UserRepoContract, privateKey *rsa.PrivateKey) UserServiceContract {
	return &UserService{
		UserRepo:   userRepo,
		PrivateKey: privateKey,
	}
}

func (s *UserService) Register(ctx context.Context, req user_dto.RegisterUserRequest) (*user_dto.UserResponse, *app_error.AppError) {
	count, err := s.UserRepo.CountUser(ctx, entity.UserFilter{
		Username: &req.Username,
		Email:    &req.Email,
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, app_error.NewAppError(http.StatusConflict, "username or email already taken", "username")
	}

	hashed, hashErr := utils.GenerateHash(req.Password)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("failed to hash password")
		return nil, app_error.NewAppError(http.StatusInternalServerError, "internal server error", "")
	}

	user := entity.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
	}
	if err := s.UserRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return &user_dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *UserService) Login(ctx context.Context, req user_dto.LoginUserRequest) (*user_dto.LoginResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindUserByCredential(ctx, req.Username)
	if err != nil {
		// do not leak whether the username exists
		return nil, app_error.NewAppError(http.StatusUnauthorized, "invalid credentials", "")
	}

	ok, verifyErr := utils.VerifyHash(user.PasswordHash, req.Password)
	if verifyErr != nil {
		log.Error().Err(verifyErr).Str("user_id", user.ID).Msg("failed to verify password hash")
		return nil, app_error.NewAppError(http.StatusInternalServerError, "internal server error", "")
	}
	if !ok {
		return nil, app_error.NewAppError(http.StatusUnauthorized, "invalid credentials", "")
	}

	token, signErr := utils.IssueAccessToken(user.ID, user.Username, s.PrivateKey)
	if signErr != nil {
		log.Error().Err(signErr).Msg("failed to sign access token")
		return nil, app_error.NewAppError(http.StatusInternalServerError, "internal server error", "")
	}

	return &user_dto.LoginResponse{
		AccessToken: token,
		User: user_dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
