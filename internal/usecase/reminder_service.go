package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/domain/prediction"
	"github.com/jverhelst/scorecast/internal/domain/user"
	"github.com/jverhelst/scorecast/internal/platform/logging"
)

const (
	reminderLeadTime   = 24 * time.Hour
	reminderWindowSpan = time.Hour
	reminderWorkers    = 8
)

// ReminderService nudges registered users who have not yet predicted a
// fixture kicking off within the next day. The check runs hourly with a
// one hour window, so each fixture triggers at most one reminder sweep.
type ReminderService struct {
	feed           FixtureFeed
	predictionRepo prediction.Repository
	userRepo       user.Repository
	notifier       Notifier
	logger         *logging.Logger
	now            func() time.Time
}

func NewReminderService(
	feed FixtureFeed,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	notifier Notifier,
	logger *logging.Logger,
) *ReminderService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReminderService{
		feed:           feed,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

// Run executes one reminder sweep over the current matchday.
func (s *ReminderService) Run(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.Run")
	defer span.End()

	fixtures, err := s.feed.ListMatches(ctx)
	if err != nil {
		return fmt.Errorf("%w: list matches: %v", ErrDependencyUnavailable, err)
	}

	now := s.now().UTC()
	selection := SelectCurrentMatchday(fixtures, now)

	due := make([]match.Fixture, 0, len(selection.ActiveOrFuture))
	for _, fx := range selection.ActiveOrFuture {
		if inReminderWindow(fx.KickoffAt, now) {
			due = append(due, fx)
		}
	}
	if len(due) == 0 {
		return nil
	}

	registered, err := s.userRepo.ListRegisteredIDs(ctx)
	if err != nil {
		return fmt.Errorf("list registered users: %w", err)
	}
	if len(registered) == 0 {
		return nil
	}

	pool, err := ants.NewPool(reminderWorkers)
	if err != nil {
		return fmt.Errorf("init reminder pool: %w", err)
	}
	defer pool.Release()

	sent := 0
	for _, fx := range due {
		n, err := s.remindForFixture(ctx, pool, fx, registered)
		if err != nil {
			s.logger.WarnContext(ctx, "reminder sweep for fixture failed",
				"matchID", fx.ID,
				"error", err,
			)
			continue
		}
		sent += n
	}

	s.logger.InfoContext(ctx, "reminder sweep complete",
		"dueFixtures", len(due),
		"remindersSent", sent,
	)
	return nil
}

// remindForFixture fans reminder messages out to every registered,
// opted-in user without a stored prediction for the fixture.
func (s *ReminderService) remindForFixture(ctx context.Context, pool *ants.Pool, fx match.Fixture, registered []string) (int, error) {
	predicted, err := s.predictionRepo.ListUserIDsByMatch(ctx, fx.ID)
	if err != nil {
		return 0, fmt.Errorf("list predictors for match %s: %w", fx.ID, err)
	}
	predictedSet := make(map[string]struct{}, len(predicted))
	for _, id := range predicted {
		predictedSet[id] = struct{}{}
	}

	text := formatReminderMessage(fx.HomeTeam, fx.AwayTeam)

	var wg sync.WaitGroup
	sent := 0
	var mu sync.Mutex
	for _, userID := range registered {
		if _, ok := predictedSet[userID]; ok {
			continue
		}
		enabled, err := s.userRepo.ReminderEnabled(ctx, userID)
		if err != nil {
			s.logger.WarnContext(ctx, "reminder preference lookup failed",
				"userID", userID,
				"error", err,
			)
			continue
		}
		if !enabled {
			continue
		}

		userID := userID
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := s.notifier.SendDirectMessage(ctx, userID, text); err != nil {
				s.logger.WarnContext(ctx, "reminder delivery failed",
					"userID", userID,
					"matchID", fx.ID,
					"error", err,
				)
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}); err != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "reminder task submit failed",
				"userID", userID,
				"error", err,
			)
		}
	}
	wg.Wait()

	return sent, nil
}

// inReminderWindow reports whether kickoff falls in [now+23h, now+24h).
// The half-open bound pairs with the hourly sweep so consecutive runs
// never double-fire for the same fixture.
func inReminderWindow(kickoff, now time.Time) bool {
	until := kickoff.Sub(now)
	return until >= reminderLeadTime-reminderWindowSpan && until < reminderLeadTime
}
