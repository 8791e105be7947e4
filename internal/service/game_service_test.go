package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/greenquest/mythbuster-api/internal/dto"
	"github.com/greenquest/mythbuster-api/internal/game"
	"github.com/greenquest/mythbuster-api/internal/models"
	"github.com/greenquest/mythbuster-api/pkg/ai"
)

type stubGrader struct {
	raw   string
	err   error
	calls int
	last  ai.GradeInput
}

func (s *stubGrader) Grade(ctx context.Context, input ai.GradeInput) (string, error) {
	s.calls++
	s.last = input
	if s.err != nil {
		return "", s.err
	}
	return s.raw, nil
}

type fakeLeaderboard struct {
	err      error
	upserts  int
	username string
	score    int
	badges   []string
}

func (f *fakeLeaderboard) Upsert(ctx context.Context, username string, score int, badges []string) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	f.username = username
	f.score = score
	f.badges = append([]string(nil), badges...)
	return nil
}

func (f *fakeLeaderboard) Ranked(ctx context.Context, limit int) (dto.LeaderboardResponse, error) {
	return dto.LeaderboardResponse{}, nil
}

type fakeTurnRepo struct {
	err     error
	records []models.TurnRecord
}

func (f *fakeTurnRepo) Create(ctx context.Context, record *models.TurnRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeTurnRepo) ListByUsername(ctx context.Context, username string, limit int) ([]models.TurnRecord, error) {
	return f.records, nil
}

func newGameService(t *testing.T, grader ai.Grader, board *fakeLeaderboard, turns *fakeTurnRepo) (GameService, *SessionRegistry) {
	t.Helper()

	sessions := NewSessionRegistry()
	cycle := game.NewCycle(nil, time.Second, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGameService(sessions, grader, cycle, board, turns, validate, time.Second, testLogger())

	return svc, sessions
}

func TestGameServiceStartSessionDealsMyth(t *testing.T) {
	svc, sessions := newGameService(t, &stubGrader{}, &fakeLeaderboard{}, &fakeTurnRepo{})

	response, err := svc.StartSession(context.Background(), "sid-1", "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", response.State.Username)
	require.Equal(t, 1, response.State.Level)
	require.Equal(t, 0, response.State.Score)
	require.NotEmpty(t, response.State.CurrentMyth)
	require.Equal(t, game.Themes[0], response.State.Theme)

	state, ok := sessions.Get("sid-1")
	require.True(t, ok)
	require.Equal(t, response.State.CurrentMyth, state.CurrentMyth)
}

func TestGameServiceSubmitTurnFullPipeline(t *testing.T) {
	grader := &stubGrader{raw: `{"correctness": true, "clarity": 5, "tone": 5, "evidence": 4, "feedback": "Superb!"}`}
	board := &fakeLeaderboard{}
	turns := &fakeTurnRepo{}
	svc, _ := newGameService(t, grader, board, turns)
	ctx := context.Background()

	started, err := svc.StartSession(ctx, "sid-1", "alice")
	require.NoError(t, err)
	myth := started.State.CurrentMyth

	response, err := svc.SubmitTurn(ctx, "sid-1", dto.TurnRequest{Submission: "According to the EPA, recycling cuts landfill waste."})
	require.NoError(t, err)

	require.Equal(t, 1, grader.calls)
	require.Equal(t, myth, grader.last.Myth)

	require.Equal(t, 14, response.Evaluation.Points)
	require.Equal(t, game.BadgeEcoMythBuster, response.Evaluation.Badge)
	require.True(t, response.Evaluation.LevelUp)

	require.Equal(t, 14, response.State.Score)
	require.Equal(t, 2, response.State.Level)
	require.Equal(t, game.Themes[1], response.State.Theme)
	require.Equal(t, []string{game.BadgeEcoMythBuster}, response.State.Badges)
	require.NotEmpty(t, response.NextMyth)

	require.Equal(t, 1, board.upserts)
	require.Equal(t, "alice", board.username)
	require.Equal(t, 14, board.score)
	require.Equal(t, []string{game.BadgeEcoMythBuster}, board.badges)

	require.Len(t, turns.records, 1)
	require.Equal(t, myth, turns.records[0].Myth)
	require.Equal(t, 14, turns.records[0].Points)
}

func TestGameServiceGraderFailureDegradesToFallback(t *testing.T) {
	grader := &stubGrader{err: errors.New("model unreachable")}
	board := &fakeLeaderboard{}
	svc, _ := newGameService(t, grader, board, &fakeTurnRepo{})
	ctx := context.Background()

	_, err := svc.StartSession(ctx, "sid-1", "alice")
	require.NoError(t, err)

	response, err := svc.SubmitTurn(ctx, "sid-1", dto.TurnRequest{Submission: "Recycling helps."})
	require.NoError(t, err, "a grading failure must not fail the turn")

	require.False(t, response.Evaluation.Correctness)
	require.Equal(t, 0, response.Evaluation.Points)
	require.NotEmpty(t, response.Evaluation.Feedback)
	require.Equal(t, 0, response.State.Score)
	require.Equal(t, 1, response.State.Level)
	require.NotEmpty(t, response.NextMyth)
	require.Equal(t, 1, board.upserts, "fallback turns still replace the leaderboard row")
}

func TestGameServiceLeaderboardFailureLeavesStateUntouched(t *testing.T) {
	grader := &stubGrader{raw: `{"correctness": true, "clarity": 3, "tone": 3, "evidence": 3, "feedback": "ok"}`}
	board := &fakeLeaderboard{err: errors.New("database down")}
	svc, sessions := newGameService(t, grader, board, &fakeTurnRepo{})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, "sid-1", "alice")
	require.NoError(t, err)

	_, err = svc.SubmitTurn(ctx, "sid-1", dto.TurnRequest{Submission: "According to a study, this is wrong."})
	require.Error(t, err)

	state, ok := sessions.Get("sid-1")
	require.True(t, ok)
	require.Equal(t, 0, state.Score, "a failed persist must not commit progress")
	require.Equal(t, started.State.CurrentMyth, state.CurrentMyth, "the myth is kept so the turn can be retried")
}

func TestGameServiceTurnHistoryFailureIsSwallowed(t *testing.T) {
	grader := &stubGrader{raw: `{"correctness": true, "clarity": 2, "tone": 2, "evidence": 1, "feedback": "ok"}`}
	svc, _ := newGameService(t, grader, &fakeLeaderboard{}, &fakeTurnRepo{err: errors.New("history table gone")})
	ctx := context.Background()

	_, err := svc.StartSession(ctx, "sid-1", "alice")
	require.NoError(t, err)

	response, err := svc.SubmitTurn(ctx, "sid-1", dto.TurnRequest{Submission: "Because reasons."})
	require.NoError(t, err)
	require.Equal(t, 5, response.State.Score)
}

func TestGameServiceSubmitTurnUnknownSession(t *testing.T) {
	svc, _ := newGameService(t, &stubGrader{}, &fakeLeaderboard{}, &fakeTurnRepo{})

	_, err := svc.SubmitTurn(context.Background(), "missing", dto.TurnRequest{Submission: "hello"})
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.State(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGameServiceCitationNudgeShownButNotStored(t *testing.T) {
	grader := &stubGrader{raw: `{"correctness": true, "clarity": 2, "tone": 2, "evidence": 3, "feedback": "Nice try"}`}
	turns := &fakeTurnRepo{}
	svc, _ := newGameService(t, grader, &fakeLeaderboard{}, turns)
	ctx := context.Background()

	_, err := svc.StartSession(ctx, "sid-1", "alice")
	require.NoError(t, err)

	response, err := svc.SubmitTurn(ctx, "sid-1", dto.TurnRequest{Submission: "I read that recycling helps"})
	require.NoError(t, err)
	require.Contains(t, response.Evaluation.Feedback, game.CitationNudge)

	require.Len(t, turns.records, 1)
	require.NotContains(t, turns.records[0].Details["feedback"], game.CitationNudge, "the nudge decorates the displayed feedback only")
}

func TestGameServiceEndSessionDiscardsState(t *testing.T) {
	svc, sessions := newGameService(t, &stubGrader{}, &fakeLeaderboard{}, &fakeTurnRepo{})

	_, err := svc.StartSession(context.Background(), "sid-1", "alice")
	require.NoError(t, err)

	svc.EndSession("sid-1")
	_, ok := sessions.Get("sid-1")
	require.False(t, ok)
}
