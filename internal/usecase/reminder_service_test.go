package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/infrastructure/repository/memory"
	"github.com/jverhelst/scorecast/internal/platform/logging"
)

func newReminderFixture(matches []match.Fixture, now time.Time) (*ReminderService, *memory.PredictionRepository, *memory.UserRepository, *recordingNotifier) {
	predictionRepo := memory.NewPredictionRepository()
	userRepo := memory.NewUserRepository()
	notifier := newRecordingNotifier()

	svc := NewReminderService(
		&stubFeed{matches: matches},
		predictionRepo,
		userRepo,
		notifier,
		logging.NewNop(),
	)
	svc.now = func() time.Time { return now }
	return svc, predictionRepo, userRepo, notifier
}

func TestReminderSendsToUsersWithoutPrediction(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	fx := fixtureAt("m1", match.StatusTimed, now.Add(23*time.Hour+30*time.Minute))

	svc, predictionRepo, userRepo, notifier := newReminderFixture([]match.Fixture{fx}, now)
	if err := userRepo.Register(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.Register(ctx, "bob"); err != nil {
		t.Fatal(err)
	}
	if err := predictionRepo.Upsert(ctx, "alice", "m1", 1, 0); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(notifier.directs["alice"]) != 0 {
		t.Fatalf("alice predicted already but got %d reminders", len(notifier.directs["alice"]))
	}
	msgs := notifier.directs["bob"]
	if len(msgs) != 1 {
		t.Fatalf("bob reminders = %d, want 1", len(msgs))
	}
	if !strings.Contains(msgs[0], "Home m1 and Away m1") {
		t.Fatalf("reminder text = %q", msgs[0])
	}
}

func TestReminderRespectsOptOut(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	fx := fixtureAt("m1", match.StatusTimed, now.Add(23*time.Hour+30*time.Minute))

	svc, _, userRepo, notifier := newReminderFixture([]match.Fixture{fx}, now)
	if err := userRepo.Register(ctx, "carol"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.SetReminderEnabled(ctx, "carol", false); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if notifier.directCount() != 0 {
		t.Fatalf("reminders sent = %d, want 0 for opted-out user", notifier.directCount())
	}
}

func TestReminderWindowBounds(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		kickoff time.Time
		want    bool
	}{
		{"just inside lower bound", now.Add(23 * time.Hour), true},
		{"mid window", now.Add(23*time.Hour + 30*time.Minute), true},
		{"exactly 24h is excluded", now.Add(24 * time.Hour), false},
		{"just under 24h", now.Add(24*time.Hour - time.Second), true},
		{"below window", now.Add(22 * time.Hour), false},
		{"far future", now.Add(48 * time.Hour), false},
		{"already past", now.Add(-time.Hour), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := inReminderWindow(tc.kickoff, now); got != tc.want {
				t.Fatalf("inReminderWindow(%v) = %v, want %v", tc.kickoff.Sub(now), got, tc.want)
			}
		})
	}
}

func TestReminderSkipsFixturesOutsideWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	fx := fixtureAt("m1", match.StatusTimed, now.Add(48*time.Hour))

	svc, _, userRepo, notifier := newReminderFixture([]match.Fixture{fx}, now)
	if err := userRepo.Register(ctx, "alice"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if notifier.directCount() != 0 {
		t.Fatalf("reminders sent = %d, want 0 outside the window", notifier.directCount())
	}
}

func TestReminderFeedOutage(t *testing.T) {
	svc := NewReminderService(
		&stubFeed{err: context.DeadlineExceeded},
		memory.NewPredictionRepository(),
		memory.NewUserRepository(),
		newRecordingNotifier(),
		logging.NewNop(),
	)

	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("Run returned nil, want dependency error")
	}
}
