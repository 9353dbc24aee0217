package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/standing"
	"github.com/jverhelst/scorecast/internal/infrastructure/repository/memory"
	"github.com/jverhelst/scorecast/internal/platform/cache"
)

func TestLeaderboardSortsByPointsDescending(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStandingRepository()
	for _, award := range []struct {
		user   string
		points int
	}{
		{"alice", 7},
		{"bob", 10},
		{"carol", 7},
	} {
		if err := repo.AddPoints(ctx, award.user, award.points); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewLeaderboardService(repo, nil)
	entries, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	want := []string{"bob", "alice", "carol"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, userID := range want {
		if entries[i].UserID != userID {
			t.Fatalf("rank %d = %s, want %s (ties keep insertion order)", i+1, entries[i].UserID, userID)
		}
	}
}

func TestLeaderboardCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStandingRepository()
	if err := repo.AddPoints(ctx, "alice", 5); err != nil {
		t.Fatal(err)
	}

	svc := NewLeaderboardService(repo, cache.NewStore(time.Hour))
	first, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || first[0].Points != 5 {
		t.Fatalf("first read = %+v", first)
	}

	if err := repo.AddPoints(ctx, "alice", 10); err != nil {
		t.Fatal(err)
	}

	cached, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cached[0].Points != 5 {
		t.Fatalf("cached read = %d points, want stale 5 before invalidation", cached[0].Points)
	}

	svc.Invalidate(ctx)
	fresh, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fresh[0].Points != 15 {
		t.Fatalf("fresh read = %d points, want 15 after invalidation", fresh[0].Points)
	}
}

func TestFormatLeaderboardMessage(t *testing.T) {
	msg := FormatLeaderboardMessage([]standing.Standing{
		{UserID: "u1", Points: 30},
		{UserID: "u2", Points: 20},
		{UserID: "u3", Points: 10},
		{UserID: "u4", Points: 5},
	})

	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	if lines[0] != "Updated Leaderboard:" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "\U0001F947 <@u1>") {
		t.Fatalf("first place = %q, want gold medal", lines[1])
	}
	if !strings.HasPrefix(lines[3], "\U0001F949 <@u3>") {
		t.Fatalf("third place = %q, want bronze medal", lines[3])
	}
	if lines[4] != "4) <@u4>: 5pts" {
		t.Fatalf("fourth place = %q", lines[4])
	}
}
