package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopmate-chat/config"
	"shopmate-chat/internal/domain/user"
	"shopmate-chat/internal/repository"
	apperrors "shopmate-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns credentials and access tokens. Tokens are stateless:
// validity is a function of signature and expiry only, there is no
// server-side revocation.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	Username    string
	UserID      int64
}

// AccessClaims carry the subject identity inside the signed token.
type AccessClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if in.Username == "" || in.Password == "" {
		return user.User{}, apperrors.ErrInvalidInput
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	newUser := &user.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return user.User{}, err
	}

	return *newUser, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return LoginResult{}, apperrors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		// Unknown user and wrong password are indistinguishable to the caller.
		if errors.Is(err, apperrors.ErrNotFound) {
			return LoginResult{}, apperrors.ErrUnauthorized
		}
		return LoginResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return LoginResult{}, apperrors.ErrUnauthorized
	}

	token, err := s.issueToken(u)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    u.Username,
		UserID:      u.ID,
	}, nil
}

func (s *AuthService) issueToken(u user.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseAccessToken validates a bearer token and returns the subject user id.
// A bad signature, an expired token, or a missing identity claim all come
// back as ErrUnauthorized.
func (s *AuthService) ParseAccessToken(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, apperrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return 0, apperrors.ErrUnauthorized
	}

	return claims.UserID, nil
}

// HTTPStatus maps service errors onto response codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
