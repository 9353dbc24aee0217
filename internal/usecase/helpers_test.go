package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
)

type stubFeed struct {
	matches  []match.Fixture
	finished []match.Fixture
	err      error
}

func (f *stubFeed) ListMatches(_ context.Context) ([]match.Fixture, error) {
	return f.matches, f.err
}

func (f *stubFeed) ListFinishedMatches(_ context.Context) ([]match.Fixture, error) {
	return f.finished, f.err
}

type recordingNotifier struct {
	mu       sync.Mutex
	channel  []string
	directs  map[string][]string
	sendErr  error
	directEr error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{directs: make(map[string][]string)}
}

func (n *recordingNotifier) SendChannelMessage(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	n.channel = append(n.channel, text)
	return nil
}

func (n *recordingNotifier) SendDirectMessage(_ context.Context, userID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.directEr != nil {
		return n.directEr
	}
	n.directs[userID] = append(n.directs[userID], text)
	return nil
}

func (n *recordingNotifier) directCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, msgs := range n.directs {
		total += len(msgs)
	}
	return total
}

func intPtr(v int) *int { return &v }

func fixtureAt(id string, status string, kickoff time.Time) match.Fixture {
	return match.Fixture{
		ID:        id,
		HomeTeam:  "Home " + id,
		AwayTeam:  "Away " + id,
		KickoffAt: kickoff,
		Stage:     "GROUP_STAGE",
		Matchday:  1,
		Status:    status,
	}
}
