package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/domain/prediction"
	"github.com/jverhelst/scorecast/internal/domain/user"
	"github.com/jverhelst/scorecast/internal/platform/logging"
)

// Goal bounds accepted on a submitted scoreline.
const (
	MinGoals = 0
	MaxGoals = 19
)

// UpcomingMatch is a predictable fixture overlaid with the requesting
// user's stored forecast, if any.
type UpcomingMatch struct {
	Fixture    match.Fixture
	Prediction *prediction.Prediction
}

// PredictionService owns the submission path and the user-facing views
// of the open matchday.
type PredictionService struct {
	feed           FixtureFeed
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(
	feed FixtureFeed,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		feed:           feed,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit stores or overwrites the user's forecast for a match. First
// submissions register the user as a participant. A match that already
// settled is closed for changes.
func (s *PredictionService) Submit(ctx context.Context, userID, matchID string, homeGoals, awayGoals int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	if userID == "" || matchID == "" {
		return fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}
	if homeGoals < MinGoals || homeGoals > MaxGoals || awayGoals < MinGoals || awayGoals > MaxGoals {
		return fmt.Errorf("%w: goals must be between %d and %d", ErrInvalidInput, MinGoals, MaxGoals)
	}

	rec, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("look up match %s: %w", matchID, err)
	}
	if found && rec.Finished {
		return fmt.Errorf("%w: match %s has already been played", ErrInvalidInput, matchID)
	}

	if err := s.userRepo.Register(ctx, userID); err != nil {
		return fmt.Errorf("register user %s: %w", userID, err)
	}

	if err := s.predictionRepo.Upsert(ctx, userID, matchID, homeGoals, awayGoals); err != nil {
		return fmt.Errorf("store prediction: %w", err)
	}

	s.logger.InfoContext(ctx, "prediction stored",
		"userID", userID,
		"matchID", matchID,
	)
	return nil
}

// PredictionFor returns the user's stored forecast for the match.
func (s *PredictionService) PredictionFor(ctx context.Context, userID, matchID string) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.PredictionFor")
	defer span.End()

	pred, found, err := s.predictionRepo.Find(ctx, userID, matchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("find prediction: %w", err)
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: no prediction for user %s on match %s", ErrNotFound, userID, matchID)
	}
	return pred, nil
}

// UpcomingMatches returns the fixtures currently open for prediction,
// each paired with the user's existing forecast when one is stored.
func (s *PredictionService) UpcomingMatches(ctx context.Context, userID string) ([]UpcomingMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.UpcomingMatches")
	defer span.End()

	fixtures, err := s.feed.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches: %v", ErrDependencyUnavailable, err)
	}

	selection := SelectCurrentMatchday(fixtures, s.now().UTC())

	out := make([]UpcomingMatch, 0, len(selection.Predictable))
	for _, fx := range selection.Predictable {
		um := UpcomingMatch{Fixture: fx}
		if userID != "" {
			pred, found, err := s.predictionRepo.Find(ctx, userID, fx.ID)
			if err != nil {
				return nil, fmt.Errorf("find prediction for match %s: %w", fx.ID, err)
			}
			if found {
				p := pred
				um.Prediction = &p
			}
		}
		out = append(out, um)
	}
	return out, nil
}
