package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/greenquest/mythbuster-api/internal/dto"
	"github.com/greenquest/mythbuster-api/internal/models"
	"github.com/greenquest/mythbuster-api/internal/repository"
)

// ErrUsernameTaken indicates the username is already registered.
var ErrUsernameTaken = errors.New("username taken")

// ErrInvalidCredentials indicates a failed login. The same value covers
// unknown usernames and wrong passwords so responses do not reveal which
// accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles account registration and login.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) error
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	players   repository.PlayerRepository
	validator *validator.Validate
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(playerRepo repository.PlayerRepository, validate *validator.Validate, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &authService{
		players:   playerRepo,
		validator: validate,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	// Passwords are stored verbatim, matching the behaviour this game
	// inherited. Hashing is a tracked hardening gap, not done silently.
	player := models.Player{
		Username: payload.Username,
		Password: payload.Password,
	}

	if err := s.players.Create(ctx, &player); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}

	s.logger.Info().Str("username", player.Username).Msg("player registered")

	return nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	player, err := s.players.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if player.Password != payload.Password {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	token, err := s.issueToken(player.Username, sessionID)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("username", player.Username).Str("session_id", sessionID).Msg("player logged in")

	return dto.LoginResponse{
		Username:  player.Username,
		SessionID: sessionID,
		Token:     token,
	}, nil
}

func (s *authService) issueToken(username, sessionID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": username,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}
