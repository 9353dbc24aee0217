package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jverhelst/scorecast/internal/domain/match"
)

func TestFinalizeWriteOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()

	first := match.Record{MatchID: "m1", HomeTeam: "A", AwayTeam: "B", HomeScore: 2, AwayScore: 0}
	already, err := repo.Finalize(ctx, first)
	if err != nil || already {
		t.Fatalf("first finalize: already=%v err=%v", already, err)
	}

	overwrite := first
	overwrite.HomeScore = 9
	already, err = repo.Finalize(ctx, overwrite)
	if err != nil || !already {
		t.Fatalf("second finalize: already=%v err=%v", already, err)
	}

	rec, found, _ := repo.GetByID(ctx, "m1")
	if !found || rec.HomeScore != 2 {
		t.Fatalf("record = %+v, want original score preserved", rec)
	}
}

func TestFinalizeConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()
	rec := match.Record{MatchID: "m1", HomeScore: 1, AwayScore: 1}

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			already, err := repo.Finalize(ctx, rec)
			if err != nil {
				t.Error(err)
				return
			}
			if !already {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	if winners.Load() != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners.Load())
	}
}

func TestListByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()
	if _, err := repo.Finalize(ctx, match.Record{MatchID: "m1"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListByIDs(ctx, []string{"m1", "m2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if _, ok := got["m1"]; !ok {
		t.Fatal("m1 missing from result")
	}
}
