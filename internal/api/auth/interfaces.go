package auth

import (
	"context"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

type AuthUsecase interface {
	Signup(ctx context.Context, req entity.SignupRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req entity.LoginRequest) (*entity.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, userID string) (*entity.UserDTO, error)
}
