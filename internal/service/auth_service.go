package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/repository"
)

// ErrInvalidCredentials indicates a failed username/password check. Unknown
// accounts and wrong passwords are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService exchanges credentials for signed, time-limited identity tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	secret    []byte
	tokenTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.FindByUsername(ctx, payload.Username)
	if err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Debug().Str("username", payload.Username).Msg("password mismatch")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      issuedAt.Unix(),
		"exp":      issuedAt.Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")

	return dto.LoginResponse{
		Token: signed,
		User:  dto.NewUserResponse(user),
	}, nil
}
