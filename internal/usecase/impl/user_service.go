// Package impl contains the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"strings"

	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/repository"
	"disciplined/internal/domain/service"
	"disciplined/internal/errors"
	"disciplined/internal/usecase"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, email, password, displayName string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domainerrors.ErrValidationFailed.WithDetails("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *userService) Login(ctx context.Context, email, password string) (*entity.User, *usecase.AuthTokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password so probes can't tell accounts apart.
			return nil, nil, domainerrors.ErrInvalidCredentials
		}

		return nil, nil, errors.Wrap(err, "failed to look up user")
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.GenerateTokens(user.ID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate tokens")
	}

	return user, &usecase.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshTokens exchanges a valid refresh token for a new token pair.
func (s *userService) RefreshTokens(ctx context.Context, refreshToken string) (*usecase.AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	// The account may have been deleted since the token was issued.
	if _, err := s.userRepo.FindUserByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	access, refresh, err := s.tokens.GenerateTokens(claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// GetProfile retrieves the account behind a user ID.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
