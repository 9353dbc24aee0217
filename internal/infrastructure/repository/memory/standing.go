package memory

import (
	"context"
	"sync"

	"github.com/jverhelst/scorecast/internal/domain/standing"
)

// StandingRepository accumulates per-user totals in memory. List returns
// users in first-scored order so ties stay stable across calls.
type StandingRepository struct {
	mu     sync.Mutex
	points map[string]int
	order  []string
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{points: make(map[string]int)}
}

func (r *StandingRepository) AddPoints(_ context.Context, userID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.points[userID]; !ok {
		r.order = append(r.order, userID)
	}
	r.points[userID] += delta
	return nil
}

func (r *StandingRepository) List(_ context.Context) ([]standing.Standing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]standing.Standing, 0, len(r.order))
	for _, userID := range r.order {
		out = append(out, standing.Standing{UserID: userID, Points: r.points[userID]})
	}
	return out, nil
}
