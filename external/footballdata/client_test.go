package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/platform/logging"
	"github.com/jverhelst/scorecast/internal/platform/resilience"
)

const matchesPayload = `{
	"matches": [
		{
			"id": 101,
			"utcDate": "2026-06-10T19:00:00Z",
			"status": "FINISHED",
			"stage": "GROUP_STAGE",
			"matchday": 1,
			"homeTeam": {"id": 1, "name": "Ajax"},
			"awayTeam": {"id": 2, "name": "Porto"},
			"score": {"winner": "HOME_TEAM", "fullTime": {"home": 2, "away": 1}}
		},
		{
			"id": 102,
			"utcDate": "2026-06-12T19:00:00Z",
			"status": "TIMED",
			"stage": "GROUP_STAGE",
			"matchday": 1,
			"homeTeam": {"id": 3, "name": "Benfica"},
			"awayTeam": {"id": 4, "name": "Celtic"},
			"score": {"fullTime": {"home": null, "away": null}}
		}
	]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		Token:       "secret-token",
		Competition: "CL",
		Timeout:     2 * time.Second,
		Logger:      logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})
	return client, server
}

func TestListMatchesMapsFixtures(t *testing.T) {
	var gotToken, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(matchesPayload))
	}))

	fixtures, err := client.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}

	if gotToken != "secret-token" {
		t.Fatalf("auth token = %q", gotToken)
	}
	if gotPath != "/competitions/CL/matches" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(fixtures) != 2 {
		t.Fatalf("fixtures = %d, want 2", len(fixtures))
	}

	finished := fixtures[0]
	if finished.ID != "101" || finished.HomeTeam != "Ajax" || finished.Status != match.StatusFinished {
		t.Fatalf("finished fixture = %+v", finished)
	}
	if finished.HomeScore == nil || *finished.HomeScore != 2 || *finished.AwayScore != 1 {
		t.Fatalf("finished scores = %v, %v", finished.HomeScore, finished.AwayScore)
	}
	wantKickoff := time.Date(2026, 6, 10, 19, 0, 0, 0, time.UTC)
	if !finished.KickoffAt.Equal(wantKickoff) {
		t.Fatalf("kickoff = %v, want %v", finished.KickoffAt, wantKickoff)
	}

	upcoming := fixtures[1]
	if upcoming.HomeScore != nil || upcoming.AwayScore != nil {
		t.Fatalf("upcoming fixture carries scores: %+v", upcoming)
	}
}

func TestListFinishedMatchesFiltersByStatus(t *testing.T) {
	var gotStatus string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		_, _ = w.Write([]byte(`{"matches": []}`))
	}))

	if _, err := client.ListFinishedMatches(context.Background()); err != nil {
		t.Fatalf("ListFinishedMatches: %v", err)
	}
	if gotStatus != match.StatusFinished {
		t.Fatalf("status filter = %q, want %q", gotStatus, match.StatusFinished)
	}
}

func TestRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"matches": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})

	if _, err := client.ListMatches(context.Background()); err != nil {
		t.Fatalf("ListMatches after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestNonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.ListMatches(context.Background())
	if err == nil {
		t.Fatal("want error for 403")
	}
	if IsTransient(err) {
		t.Fatalf("403 marked transient: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1 with no retry", calls.Load())
	}
}

func TestTransientErrorIsMarked(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.ListMatches(context.Background())
	if err == nil {
		t.Fatal("want error for 429")
	}
	if !IsTransient(err) {
		t.Fatalf("429 not marked transient: %v", err)
	}
}
