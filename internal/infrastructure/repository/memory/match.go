package memory

import (
	"context"
	"sync"

	"github.com/jverhelst/scorecast/internal/domain/match"
)

// MatchRepository is a mutex-guarded in-memory match store for tests and
// local runs without a database.
type MatchRepository struct {
	mu      sync.Mutex
	records map[string]match.Record
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{records: make(map[string]match.Record)}
}

func (r *MatchRepository) Finalize(_ context.Context, rec match.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.records[rec.MatchID]; ok && existing.Finished {
		return true, nil
	}
	rec.Finished = true
	r.records[rec.MatchID] = rec
	return false, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[matchID]
	return rec, ok, nil
}

func (r *MatchRepository) ListByIDs(_ context.Context, matchIDs []string) (map[string]match.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]match.Record, len(matchIDs))
	for _, id := range matchIDs {
		if rec, ok := r.records[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}
