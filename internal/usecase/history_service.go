package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/domain/prediction"
)

const (
	historyDateLayout = "02/01/2006"
	historyTimeLayout = "15:04"
	historyTimeZone   = "Europe/Brussels"
)

// HistoryEntry is one settled prediction in a user's history.
type HistoryEntry struct {
	Kickoff       time.Time
	Time          string
	HomeTeam      string
	AwayTeam      string
	HomeScore     int
	AwayScore     int
	PredictedHome int
	PredictedAway int
	Points        int
}

// HistoryDay groups a day's settled predictions in kickoff order.
type HistoryDay struct {
	Date    string
	Entries []HistoryEntry
}

// HistoryRange bounds the history view by local match day. Zero bounds
// are open ended.
type HistoryRange struct {
	From time.Time
	To   time.Time
}

func (r HistoryRange) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// HistoryService assembles a user's scored predictions into a per-day
// view. Unscored predictions and matches without a finalized record are
// excluded; the history only ever shows settled outcomes.
type HistoryService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	location       *time.Location
}

func NewHistoryService(matchRepo match.Repository, predictionRepo prediction.Repository) *HistoryService {
	loc, err := time.LoadLocation(historyTimeZone)
	if err != nil {
		loc = time.UTC
	}
	return &HistoryService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		location:       loc,
	}
}

// ParseRange interprets optional dd/mm/yyyy bounds in the display
// timezone. Empty strings leave the bound open; both bounds are
// inclusive.
func (s *HistoryService) ParseRange(from, to string) (HistoryRange, error) {
	var rng HistoryRange
	if from != "" {
		t, err := time.ParseInLocation(historyDateLayout, from, s.location)
		if err != nil {
			return HistoryRange{}, fmt.Errorf("%w: invalid from date %q, expected dd/mm/yyyy", ErrInvalidInput, from)
		}
		rng.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(historyDateLayout, to, s.location)
		if err != nil {
			return HistoryRange{}, fmt.Errorf("%w: invalid to date %q, expected dd/mm/yyyy", ErrInvalidInput, to)
		}
		rng.To = t.AddDate(0, 0, 1)
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.To.Before(rng.From) {
		return HistoryRange{}, fmt.Errorf("%w: to date precedes from date", ErrInvalidInput)
	}
	return rng, nil
}

// History returns the user's settled predictions grouped by local match
// day, oldest day first.
func (s *HistoryService) History(ctx context.Context, userID string, rng HistoryRange) ([]HistoryDay, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.History")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	preds, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions for user %s: %w", userID, err)
	}

	scored := make([]prediction.Prediction, 0, len(preds))
	matchIDs := make([]string, 0, len(preds))
	for _, pred := range preds {
		if !pred.Scored() {
			continue
		}
		scored = append(scored, pred)
		matchIDs = append(matchIDs, pred.MatchID)
	}
	if len(scored) == 0 {
		return nil, nil
	}

	records, err := s.matchRepo.ListByIDs(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("list match records: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(scored))
	for _, pred := range scored {
		rec, ok := records[pred.MatchID]
		if !ok || !rec.Finished {
			continue
		}
		kickoff := rec.KickoffAt.In(s.location)
		if !rng.contains(kickoff) {
			continue
		}
		entries = append(entries, HistoryEntry{
			Kickoff:       kickoff,
			Time:          kickoff.Format(historyTimeLayout),
			HomeTeam:      rec.HomeTeam,
			AwayTeam:      rec.AwayTeam,
			HomeScore:     rec.HomeScore,
			AwayScore:     rec.AwayScore,
			PredictedHome: pred.HomeGoals,
			PredictedAway: pred.AwayGoals,
			Points:        pred.Points,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Kickoff.Before(entries[j].Kickoff)
	})

	var days []HistoryDay
	for _, entry := range entries {
		date := entry.Kickoff.Format(historyDateLayout)
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, HistoryDay{Date: date})
		}
		days[len(days)-1].Entries = append(days[len(days)-1].Entries, entry)
	}
	return days, nil
}
