package match

import (
	"strings"
	"time"
)

// Upstream lifecycle statuses as reported by the results feed.
const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
)

// Fixture is one game as reported by the upstream feed. Scores are nil
// until the feed carries a full-time result.
type Fixture struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	Stage     string
	Matchday  int
	Status    string
	HomeScore *int
	AwayScore *int
}

// Record is the persisted final result of a match. Once a finished
// record exists it is immutable; the repository enforces this.
type Record struct {
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	KickoffAt time.Time
	Finished  bool
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsUnplayedStatus reports whether the fixture has not kicked off yet.
func IsUnplayedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusTimed:
		return true
	default:
		return false
	}
}

// IsActiveStatus reports whether the fixture is currently being played.
func IsActiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusInPlay, StatusPaused:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}
