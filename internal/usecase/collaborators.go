package usecase

import (
	"context"

	"github.com/jverhelst/scorecast/internal/domain/match"
)

// FixtureFeed is the upstream competition data source.
type FixtureFeed interface {
	// ListMatches returns every fixture of the competition.
	ListMatches(ctx context.Context) ([]match.Fixture, error)
	// ListFinishedMatches returns only fixtures the feed reports finished.
	ListFinishedMatches(ctx context.Context) ([]match.Fixture, error)
}

// Notifier delivers best-effort messages to the community channel and to
// individual users. Failures are logged by callers, never fatal.
type Notifier interface {
	SendChannelMessage(ctx context.Context, text string) error
	SendDirectMessage(ctx context.Context, userID, text string) error
}

type nopNotifier struct{}

func (nopNotifier) SendChannelMessage(_ context.Context, _ string) error { return nil }

func (nopNotifier) SendDirectMessage(_ context.Context, _, _ string) error { return nil }

func NewNopNotifier() Notifier {
	return nopNotifier{}
}
