package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/infrastructure/repository/memory"
	"github.com/jverhelst/scorecast/internal/platform/cache"
	"github.com/jverhelst/scorecast/internal/platform/logging"
)

func newReconcileFixture(finished []match.Fixture) (*ReconcileService, *memory.PredictionRepository, *memory.StandingRepository, *recordingNotifier) {
	matchRepo := memory.NewMatchRepository()
	predictionRepo := memory.NewPredictionRepository()
	standingRepo := memory.NewStandingRepository()
	notifier := newRecordingNotifier()
	leaderboard := NewLeaderboardService(standingRepo, cache.NewStore(time.Minute))

	svc := NewReconcileService(
		&stubFeed{finished: finished},
		matchRepo,
		predictionRepo,
		standingRepo,
		notifier,
		leaderboard,
		logging.NewNop(),
	)
	return svc, predictionRepo, standingRepo, notifier
}

func TestReconcileAwardsPointsAndAnnounces(t *testing.T) {
	ctx := context.Background()
	fx := fixtureAt("m1", match.StatusFinished, time.Now().Add(-2*time.Hour))
	fx.HomeScore = intPtr(2)
	fx.AwayScore = intPtr(1)

	svc, predictionRepo, standingRepo, notifier := newReconcileFixture([]match.Fixture{fx})
	if err := predictionRepo.Upsert(ctx, "alice", "m1", 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := predictionRepo.Upsert(ctx, "bob", "m1", 0, 1); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	alice, _, _ := predictionRepo.Find(ctx, "alice", "m1")
	if alice.Points != PointsExact {
		t.Fatalf("alice points = %d, want %d", alice.Points, PointsExact)
	}
	bob, _, _ := predictionRepo.Find(ctx, "bob", "m1")
	if bob.Points != PointsParticipation {
		t.Fatalf("bob points = %d, want %d", bob.Points, PointsParticipation)
	}

	standings, _ := standingRepo.List(ctx)
	if len(standings) != 2 {
		t.Fatalf("standings = %d entries, want 2", len(standings))
	}

	// Result summary plus the refreshed leaderboard.
	if len(notifier.channel) != 2 {
		t.Fatalf("channel messages = %d, want 2", len(notifier.channel))
	}
	summary := notifier.channel[0]
	if !strings.HasPrefix(summary, "Result: Home m1 2 - 1 Away m1\n") {
		t.Fatalf("summary = %q", summary)
	}
	if !strings.Contains(summary, "<@alice> predicted 2-1, earned 10 points") {
		t.Fatalf("summary missing alice line: %q", summary)
	}
	if !strings.Contains(notifier.channel[1], "Updated Leaderboard:") {
		t.Fatalf("leaderboard message = %q", notifier.channel[1])
	}
}

func TestReconcileSecondPassIsNoOp(t *testing.T) {
	ctx := context.Background()
	fx := fixtureAt("m1", match.StatusFinished, time.Now().Add(-2*time.Hour))
	fx.HomeScore = intPtr(1)
	fx.AwayScore = intPtr(0)

	svc, predictionRepo, standingRepo, notifier := newReconcileFixture([]match.Fixture{fx})
	if err := predictionRepo.Upsert(ctx, "alice", "m1", 1, 0); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	standings, _ := standingRepo.List(ctx)
	if len(standings) != 1 || standings[0].Points != PointsExact {
		t.Fatalf("standings = %+v, want alice with %d points once", standings, PointsExact)
	}
	if len(notifier.channel) != 2 {
		t.Fatalf("channel messages = %d, want 2 from the first pass only", len(notifier.channel))
	}
}

func TestReconcileSkipsFixtureWithoutScores(t *testing.T) {
	ctx := context.Background()
	broken := fixtureAt("m1", match.StatusFinished, time.Now().Add(-2*time.Hour))
	good := fixtureAt("m2", match.StatusFinished, time.Now().Add(-2*time.Hour))
	good.HomeScore = intPtr(0)
	good.AwayScore = intPtr(0)

	svc, predictionRepo, standingRepo, _ := newReconcileFixture([]match.Fixture{broken, good})
	if err := predictionRepo.Upsert(ctx, "alice", "m2", 0, 0); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	standings, _ := standingRepo.List(ctx)
	if len(standings) != 1 || standings[0].Points != PointsExact {
		t.Fatalf("standings = %+v, want the intact fixture settled", standings)
	}
}

func TestReconcileFeedOutageAbortsPass(t *testing.T) {
	svc := NewReconcileService(
		&stubFeed{err: context.DeadlineExceeded},
		memory.NewMatchRepository(),
		memory.NewPredictionRepository(),
		memory.NewStandingRepository(),
		newRecordingNotifier(),
		nil,
		logging.NewNop(),
	)

	err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Run returned nil, want dependency error")
	}
}

func TestReconcileNotificationFailureStillSettles(t *testing.T) {
	ctx := context.Background()
	fx := fixtureAt("m1", match.StatusFinished, time.Now().Add(-2*time.Hour))
	fx.HomeScore = intPtr(3)
	fx.AwayScore = intPtr(2)

	svc, predictionRepo, standingRepo, notifier := newReconcileFixture([]match.Fixture{fx})
	notifier.sendErr = context.DeadlineExceeded
	if err := predictionRepo.Upsert(ctx, "alice", "m1", 3, 2); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	standings, _ := standingRepo.List(ctx)
	if len(standings) != 1 || standings[0].Points != PointsExact {
		t.Fatalf("standings = %+v, want points awarded despite delivery failure", standings)
	}
}
