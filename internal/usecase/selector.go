package usecase

import (
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
)

// MatchdaySelection is the outcome of scanning the competition schedule
// for the current (stage, matchday) group.
type MatchdaySelection struct {
	// Unplayed holds the group's fixtures still in SCHEDULED or TIMED.
	Unplayed []match.Fixture
	// ActiveOrFuture holds the group's fixtures that are in play, paused,
	// or kick off strictly after now.
	ActiveOrFuture []match.Fixture
	// Predictable is the set users may currently forecast against.
	Predictable []match.Fixture
}

type matchdayKey struct {
	stage    string
	matchday int
}

// SelectCurrentMatchday groups fixtures by (stage, matchday) in
// first-seen upstream order and returns the first group still open for
// prediction. A matchday is not atomic: kickoffs within it are
// staggered, so a partially played group surfaces only its unplayed
// members, while a fully finished group is skipped entirely.
func SelectCurrentMatchday(fixtures []match.Fixture, now time.Time) MatchdaySelection {
	groups := make(map[matchdayKey][]match.Fixture)
	order := make([]matchdayKey, 0)
	for _, fx := range fixtures {
		key := matchdayKey{stage: fx.Stage, matchday: fx.Matchday}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], fx)
	}

	for _, key := range order {
		group := groups[key]

		unplayed := make([]match.Fixture, 0, len(group))
		activeOrFuture := make([]match.Fixture, 0, len(group))
		for _, fx := range group {
			if match.IsUnplayedStatus(fx.Status) {
				unplayed = append(unplayed, fx)
			}
			if match.IsActiveStatus(fx.Status) || fx.KickoffAt.After(now) {
				activeOrFuture = append(activeOrFuture, fx)
			}
		}

		// A partially completed matchday: only what has not kicked off
		// remains open.
		if len(unplayed) > 0 && len(unplayed) < len(group) {
			return MatchdaySelection{
				Unplayed:       unplayed,
				ActiveOrFuture: activeOrFuture,
				Predictable:    unplayed,
			}
		}

		if len(activeOrFuture) > 0 {
			return MatchdaySelection{
				Unplayed:       unplayed,
				ActiveOrFuture: activeOrFuture,
				Predictable:    activeOrFuture,
			}
		}
	}

	return MatchdaySelection{}
}
