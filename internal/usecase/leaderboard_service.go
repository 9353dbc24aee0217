package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jverhelst/scorecast/internal/domain/standing"
	"github.com/jverhelst/scorecast/internal/platform/cache"
)

const leaderboardCacheKey = "standings:leaderboard"

// LeaderboardService derives the ranked leaderboard from cumulative
// per-user totals. Rank symbols and display-name resolution belong to
// the presentation layer; this returns ordered numeric standings only.
type LeaderboardService struct {
	standingRepo standing.Repository
	cache        *cache.Store
}

func NewLeaderboardService(standingRepo standing.Repository, cacheStore *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		standingRepo: standingRepo,
		cache:        cacheStore,
	}
}

// Leaderboard returns standings sorted by points descending. Ties keep
// the store's stable order; no secondary key is invented.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	if s.cache == nil {
		return s.load(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, leaderboardCacheKey, func(ctx context.Context) (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]standing.Standing)
	if !ok {
		return s.load(ctx)
	}
	out := make([]standing.Standing, len(entries))
	copy(out, entries)
	return out, nil
}

// Invalidate drops the cached leaderboard. The reconciliation loop calls
// this after awarding points so readers never see a stale board longer
// than one request.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, leaderboardCacheKey)
}

func (s *LeaderboardService) load(ctx context.Context) ([]standing.Standing, error) {
	rows, err := s.standingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows, nil
}
