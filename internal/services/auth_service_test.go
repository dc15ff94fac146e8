package services

import (
	"context"
	"testing"
	"time"

	"shopmate-chat/config"
	"shopmate-chat/internal/repository"
	apperrors "shopmate-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(expiryMin int) *AuthService {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMin: expiryMin}
	return NewAuthService(repository.NewInMemoryUserRepository(), cfg)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newAuthService(60)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "secret1", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = s.Register(ctx, RegisterInput{Username: "alice", Password: "other", Email: "b@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	s := newAuthService(60)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "secret1", Email: "a@x.com"})
	require.NoError(t, err)

	res, err := s.Login(ctx, LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, "alice", res.Username)
	assert.NotEmpty(t, res.AccessToken)

	_, err = s.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = s.Login(ctx, LoginInput{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenRoundTrip(t *testing.T) {
	s := newAuthService(60)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "secret1", Email: "a@x.com"})
	require.NoError(t, err)
	res, err := s.Login(ctx, LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	userID, err := s.ParseAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, userID)
}

func TestTokenExpired(t *testing.T) {
	s := newAuthService(-1)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "secret1", Email: "a@x.com"})
	require.NoError(t, err)
	res, err := s.Login(ctx, LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.ParseAccessToken(res.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newAuthService(60)
	ctx := context.Background()

	_, err := issuer.Register(ctx, RegisterInput{Username: "alice", Password: "secret1", Email: "a@x.com"})
	require.NoError(t, err)
	res, err := issuer.Login(ctx, LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	verifier := NewAuthService(repository.NewInMemoryUserRepository(),
		&config.Config{JWTSecret: "other-secret", JWTExpiryMin: 60})
	_, err = verifier.ParseAccessToken(res.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenMissingIdentityClaim(t *testing.T) {
	s := newAuthService(60)

	// Valid signature and expiry, but no id claim.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.ParseAccessToken(signed)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenMalformed(t *testing.T) {
	s := newAuthService(60)

	_, err := s.ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = s.ParseAccessToken("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
