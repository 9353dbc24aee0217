package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/domain/prediction"
	"github.com/jverhelst/scorecast/internal/domain/standing"
	"github.com/jverhelst/scorecast/internal/platform/logging"
)

// ReconcileService drives the periodic settlement loop: pull finished
// fixtures from the feed, finalize each one exactly once, score the
// predictions against the recorded result, and announce the outcome.
type ReconcileService struct {
	feed           FixtureFeed
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	standingRepo   standing.Repository
	notifier       Notifier
	leaderboard    *LeaderboardService
	logger         *logging.Logger
}

func NewReconcileService(
	feed FixtureFeed,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	standingRepo standing.Repository,
	notifier Notifier,
	leaderboard *LeaderboardService,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		feed:           feed,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		standingRepo:   standingRepo,
		notifier:       notifier,
		leaderboard:    leaderboard,
		logger:         logger,
	}
}

// Run executes one reconciliation pass. A feed outage aborts the pass;
// per-fixture settlement failures are logged and skipped so one bad
// record never starves the rest of the batch.
func (s *ReconcileService) Run(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Run")
	defer span.End()

	finished, err := s.feed.ListFinishedMatches(ctx)
	if err != nil {
		return fmt.Errorf("%w: list finished matches: %v", ErrDependencyUnavailable, err)
	}

	settled := 0
	for _, fx := range finished {
		newlySettled, err := s.settleMatch(ctx, fx)
		if err != nil {
			s.logger.WarnContext(ctx, "settle match failed",
				"matchID", fx.ID,
				"error", err,
			)
			continue
		}
		if newlySettled {
			settled++
		}
	}

	if settled > 0 {
		s.announceLeaderboard(ctx)
	}

	s.logger.InfoContext(ctx, "reconciliation pass complete",
		"finished", len(finished),
		"settled", settled,
	)
	return nil
}

// settleMatch records the final result and scores its predictions. The
// bool reports whether this call won the write-once gate; false means
// the fixture was settled by an earlier pass and nothing was re-scored.
func (s *ReconcileService) settleMatch(ctx context.Context, fx match.Fixture) (bool, error) {
	if fx.HomeScore == nil || fx.AwayScore == nil {
		return false, fmt.Errorf("%w: fixture %s reported finished without scores", ErrInvalidInput, fx.ID)
	}

	rec := match.Record{
		MatchID:   fx.ID,
		HomeTeam:  fx.HomeTeam,
		AwayTeam:  fx.AwayTeam,
		HomeScore: *fx.HomeScore,
		AwayScore: *fx.AwayScore,
		KickoffAt: fx.KickoffAt,
		Finished:  true,
	}

	already, err := s.matchRepo.Finalize(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("finalize match %s: %w", fx.ID, err)
	}
	if already {
		return false, nil
	}

	summary, err := s.scorePredictions(ctx, rec)
	if err != nil {
		return true, err
	}

	if err := s.notifier.SendChannelMessage(ctx, summary); err != nil {
		s.logger.WarnContext(ctx, "result announcement failed",
			"matchID", rec.MatchID,
			"error", err,
		)
	}
	return true, nil
}

// scorePredictions awards points for every prediction on the match and
// returns the channel summary. A single failed award is logged and
// excluded from the summary; the remaining predictions still settle.
func (s *ReconcileService) scorePredictions(ctx context.Context, rec match.Record) (string, error) {
	preds, err := s.predictionRepo.ListByMatch(ctx, rec.MatchID)
	if err != nil {
		return "", fmt.Errorf("list predictions for match %s: %w", rec.MatchID, err)
	}

	ids := make([]string, 0, len(preds))
	for id := range preds {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf strings.Builder
	fmt.Fprintf(&buf, "Result: %s %d - %d %s\n", rec.HomeTeam, rec.HomeScore, rec.AwayScore, rec.AwayTeam)

	for _, id := range ids {
		pred := preds[id]
		points := CalculatePoints(rec.HomeScore, rec.AwayScore, pred.HomeGoals, pred.AwayGoals)

		if err := s.predictionRepo.SetPoints(ctx, pred.ID, points); err != nil {
			s.logger.WarnContext(ctx, "store prediction points failed",
				"predictionID", pred.ID,
				"matchID", rec.MatchID,
				"error", err,
			)
			continue
		}
		if err := s.standingRepo.AddPoints(ctx, pred.UserID, points); err != nil {
			s.logger.WarnContext(ctx, "update standing failed",
				"userID", pred.UserID,
				"matchID", rec.MatchID,
				"error", err,
			)
			continue
		}

		fmt.Fprintf(&buf, "<@%s> predicted %d-%d, earned %d points\n",
			pred.UserID, pred.HomeGoals, pred.AwayGoals, points)
	}

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
	return buf.String(), nil
}

func (s *ReconcileService) announceLeaderboard(ctx context.Context) {
	if s.leaderboard == nil {
		return
	}
	entries, err := s.leaderboard.Leaderboard(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load leaderboard for announcement failed", "error", err)
		return
	}
	if len(entries) == 0 {
		return
	}
	if err := s.notifier.SendChannelMessage(ctx, FormatLeaderboardMessage(entries)); err != nil {
		s.logger.WarnContext(ctx, "leaderboard announcement failed", "error", err)
	}
}
