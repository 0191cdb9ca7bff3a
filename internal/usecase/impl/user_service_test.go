package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/usecase"
)

func newUserService() usecase.UserUsecase {
	return NewUserService(newFakeUserRepo(), fakeHasher{}, fakeTokenService{})
}

func TestRegister_CreatesAccount(t *testing.T) {
	svc := newUserService()

	user, err := svc.Register(context.Background(), "Alex@Example.COM", "correct horse battery", "Alex")
	require.NoError(t, err)

	// Email is normalized on the way in.
	assert.Equal(t, "alex@example.com", user.Email)
	assert.Equal(t, "Alex", user.DisplayName)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "alex@example.com", "correct horse battery", "Alex")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alex@example.com", "another password 99", "Alex 2")
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "not-an-email", "correct horse battery", "A")
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "a@b.com", "short", "A")
	assert.Error(t, err)
}

func TestLogin_IssuesTokens(t *testing.T) {
	svc := newUserService()

	registered, err := svc.Register(context.Background(), "alex@example.com", "correct horse battery", "Alex")
	require.NoError(t, err)

	user, tokens, err := svc.Login(context.Background(), "alex@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "alex@example.com", "correct horse battery", "Alex")
	require.NoError(t, err)

	_, _, errWrongPassword := svc.Login(context.Background(), "alex@example.com", "wrong password !!")
	_, _, errUnknownUser := svc.Login(context.Background(), "nobody@example.com", "whatever password")

	assert.ErrorIs(t, errWrongPassword, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, domainerrors.ErrInvalidCredentials)
}

func TestRefreshTokens_RoundTrip(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "alex@example.com", "correct horse battery", "Alex")
	require.NoError(t, err)

	_, tokens, err := svc.Login(context.Background(), "alex@example.com", "correct horse battery")
	require.NoError(t, err)

	renewed, err := svc.RefreshTokens(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEmpty(t, renewed.RefreshToken)
}

func TestRefreshTokens_RejectsGarbage(t *testing.T) {
	svc := newUserService()

	_, err := svc.RefreshTokens(context.Background(), "access:not-a-refresh-token")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}
