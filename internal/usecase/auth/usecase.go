package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/validator"
	"github.com/Rohang10/saas-copilot/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AuthUsecase implements signup, login and token based identification
type AuthUsecase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenManager
	validator *validator.Validator
}

// NewUsecase creates a new auth use case
func NewUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenManager,
	validator *validator.Validator,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
	}
}

// Signup registers a user and issues an access token for it
func (uc *AuthUsecase) Signup(ctx context.Context, req entity.SignupRequest) (*entity.AuthResponse, error) {
	req.Normalize()
	if err := uc.validator.ValidateSignup(&req); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.Create(ctx, entity.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	ctxzap.Info(ctx, "user signed up", zap.String("user_id", user.ID))

	return &entity.AuthResponse{
		AccessToken: token,
		TokenType:   entity.TokenTypeBearer,
		User:        toUserDTO(user),
	}, nil
}

// Login checks the credentials and issues an access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (uc *AuthUsecase) Login(ctx context.Context, req entity.LoginRequest) (*entity.TokenResponse, error) {
	req.Normalize()
	if err := uc.validator.ValidateLogin(&req); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !uc.hasher.Verify(user.PasswordHash, req.Password) {
		ctxzap.Info(ctx, "login rejected", zap.String("user_id", user.ID))
		return nil, entity.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &entity.TokenResponse{
		AccessToken: token,
		TokenType:   entity.TokenTypeBearer,
	}, nil
}

// Authenticate resolves an access token to its user id
func (uc *AuthUsecase) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", entity.ErrUnauthorized
	}

	userID, err := uc.tokens.Parse(token)
	if err != nil {
		ctxzap.Debug(ctx, "token rejected", zap.Error(err))
		return "", err
	}

	return userID, nil
}

// Me returns the profile of an authenticated user
func (uc *AuthUsecase) Me(ctx context.Context, userID string) (*entity.UserDTO, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}
