package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/greenquest/mythbuster-api/internal/dto"
	"github.com/greenquest/mythbuster-api/internal/game"
	"github.com/greenquest/mythbuster-api/internal/models"
	"github.com/greenquest/mythbuster-api/internal/observability"
	"github.com/greenquest/mythbuster-api/internal/repository"
	"github.com/greenquest/mythbuster-api/pkg/ai"
)

// ErrSessionNotFound indicates no game session exists for the caller.
var ErrSessionNotFound = errors.New("game session not found")

// ErrNoActiveMyth indicates a turn was submitted before a session started.
var ErrNoActiveMyth = errors.New("no active myth to rebut")

// GameService runs the per-turn loop: grade the rebuttal, advance the
// player state, persist the leaderboard row and produce the next myth.
type GameService interface {
	StartSession(ctx context.Context, sessionID, username string) (dto.SessionResponse, error)
	State(ctx context.Context, sessionID string) (dto.PlayerStateResponse, error)
	SubmitTurn(ctx context.Context, sessionID string, payload dto.TurnRequest) (dto.TurnResponse, error)
	EndSession(sessionID string)
}

type gameService struct {
	sessions     *SessionRegistry
	grader       ai.Grader
	cycle        *game.Cycle
	leaderboard  LeaderboardService
	turns        repository.TurnRepository
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	gradeTimeout time.Duration
	logger       zerolog.Logger
}

// NewGameService constructs a GameService. A nil grader means every turn
// is scored with the fallback evaluation; the game still plays.
func NewGameService(sessions *SessionRegistry, grader ai.Grader, cycle *game.Cycle, leaderboard LeaderboardService, turnRepo repository.TurnRepository, validate *validator.Validate, gradeTimeout time.Duration, logger zerolog.Logger) GameService {
	if gradeTimeout <= 0 {
		gradeTimeout = 20 * time.Second
	}

	return &gameService{
		sessions:     sessions,
		grader:       grader,
		cycle:        cycle,
		leaderboard:  leaderboard,
		turns:        turnRepo,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		gradeTimeout: gradeTimeout,
		logger:       logger.With().Str("component", "game_service").Logger(),
	}
}

// StartSession creates or resets the player state for a session and deals
// the first myth.
func (s *gameService) StartSession(ctx context.Context, sessionID, username string) (dto.SessionResponse, error) {
	state := game.NewPlayerState(username)
	state.CurrentMyth = s.sanitize(s.cycle.NextMyth(ctx, state.Level))
	s.sessions.Put(sessionID, state)

	s.logger.Info().Str("username", username).Str("session_id", sessionID).Msg("game session started")

	return dto.SessionResponse{State: dto.NewPlayerStateResponse(state)}, nil
}

func (s *gameService) State(ctx context.Context, sessionID string) (dto.PlayerStateResponse, error) {
	state, ok := s.sessions.Get(sessionID)
	if !ok {
		return dto.PlayerStateResponse{}, ErrSessionNotFound
	}

	return dto.NewPlayerStateResponse(state), nil
}

// SubmitTurn runs the whole turn pipeline. Grading failures degrade to the
// zero-score evaluation and generation failures to the offline myth pool;
// only a leaderboard write failure is surfaced, and in that case the
// session state is left untouched so no partial progress is recorded.
func (s *gameService) SubmitTurn(ctx context.Context, sessionID string, payload dto.TurnRequest) (dto.TurnResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TurnResponse{}, err
	}

	state, ok := s.sessions.Get(sessionID)
	if !ok {
		return dto.TurnResponse{}, ErrSessionNotFound
	}
	if state.CurrentMyth == "" {
		return dto.TurnResponse{}, ErrNoActiveMyth
	}

	submission := s.sanitize(payload.Submission)
	myth := state.CurrentMyth

	eval := s.grade(ctx, submission, myth)

	nextState, shown := game.Advance(state, eval, submission)

	if err := s.leaderboard.Upsert(ctx, nextState.Username, nextState.Score, nextState.Badges); err != nil {
		return dto.TurnResponse{}, err
	}

	s.recordTurn(ctx, nextState.Username, myth, submission, eval)

	nextState.CurrentMyth = s.sanitize(s.cycle.NextMyth(ctx, nextState.Level))
	s.sessions.Put(sessionID, nextState)

	observability.Turns().WithLabelValues(badgeLabel(eval.Badge)).Inc()
	s.logger.Info().
		Str("username", nextState.Username).
		Int("points", eval.Points).
		Str("badge", eval.Badge).
		Bool("level_up", eval.LevelUp).
		Msg("turn completed")

	return dto.TurnResponse{
		Evaluation: dto.NewEvaluationResponse(shown),
		State:      dto.NewPlayerStateResponse(nextState),
		NextMyth:   nextState.CurrentMyth,
	}, nil
}

// EndSession discards the in-memory state. Persisted rows from completed
// turns are unaffected.
func (s *gameService) EndSession(sessionID string) {
	s.sessions.Delete(sessionID)
}

// grade calls the external grader under a timeout and normalizes whatever
// comes back. It never fails; an unreachable or malformed grader yields
// the zero-score fallback evaluation.
func (s *gameService) grade(ctx context.Context, submission, myth string) game.Evaluation {
	if s.grader == nil {
		observability.GradingFallbacks().Inc()
		return game.Fallback("grading is not configured")
	}

	gradeCtx, cancel := context.WithTimeout(ctx, s.gradeTimeout)
	defer cancel()

	raw, err := s.grader.Grade(gradeCtx, ai.GradeInput{Myth: myth, Submission: submission})
	if err != nil {
		observability.GradingFallbacks().Inc()
		s.logger.Warn().Err(err).Msg("grading failed, using fallback evaluation")
		return game.Fallback("grading service unavailable")
	}

	eval := game.Normalize(raw)
	if eval.Badge == "" {
		// The fallback evaluation is the only one without a badge.
		observability.GradingFallbacks().Inc()
		s.logger.Warn().Str("raw", truncate(raw, 256)).Msg("grading response could not be normalized")
	}

	return eval
}

func (s *gameService) recordTurn(ctx context.Context, username, myth, submission string, eval game.Evaluation) {
	record := models.TurnRecord{
		Username:    username,
		Myth:        myth,
		Submission:  submission,
		Correctness: eval.Correctness,
		Clarity:     eval.Clarity,
		Tone:        eval.Tone,
		Evidence:    eval.Evidence,
		Points:      eval.Points,
		Badge:       eval.Badge,
		Details: datatypes.JSONMap{
			"level_up": eval.LevelUp,
			"feedback": eval.Feedback,
		},
	}

	if err := s.turns.Create(ctx, &record); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to record turn history")
	}
}

func (s *gameService) sanitize(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

func badgeLabel(badge string) string {
	if badge == "" {
		return "none"
	}

	return badge
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}

	return text[:max]
}
