// Package usecase defines the interfaces for the application's use cases.
package usecase

import (
	"context"

	"disciplined/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthTokens carries a freshly issued access/refresh token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserUsecase defines the interface for account management use cases
type UserUsecase interface {
	// Register creates a new account with a bcrypt-hashed password.
	Register(ctx context.Context, email, password, displayName string) (*entity.User, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, email, password string) (*entity.User, *AuthTokens, error)

	// RefreshTokens exchanges a valid refresh token for a new token pair.
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error)

	// GetProfile retrieves the account behind a user ID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
