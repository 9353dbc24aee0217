package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jverhelst/scorecast/internal/domain/match"
	qb "github.com/jverhelst/scorecast/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Finalize inserts the finished record behind an ON CONFLICT DO NOTHING
// gate, so the database decides the single winner under concurrency.
func (r *MatchRepository) Finalize(ctx context.Context, rec match.Record) (bool, error) {
	insertModel := matchTableModel{
		MatchID:   rec.MatchID,
		HomeTeam:  rec.HomeTeam,
		AwayTeam:  rec.AwayTeam,
		HomeScore: rec.HomeScore,
		AwayScore: rec.AwayScore,
		KickoffAt: rec.KickoffAt,
		Finished:  true,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "ON CONFLICT (match_id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build finalize match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("finalize match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected finalize match: %w", err)
	}

	return affected == 0, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Record, bool, error) {
	query, args, err := qb.Select("match_id", "home_team", "away_team", "home_score", "away_score", "kickoff_at", "finished").
		From("matches").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Record{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Record{}, false, nil
		}
		return match.Record{}, false, fmt.Errorf("get match: %w", err)
	}

	return toMatchRecord(row), true, nil
}

func (r *MatchRepository) ListByIDs(ctx context.Context, matchIDs []string) (map[string]match.Record, error) {
	out := make(map[string]match.Record, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("match_id", "home_team", "away_team", "home_score", "away_score", "kickoff_at", "finished").
		From("matches").
		Where(qb.In("match_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	for _, row := range rows {
		out[row.MatchID] = toMatchRecord(row)
	}
	return out, nil
}

func toMatchRecord(row matchTableModel) match.Record {
	return match.Record{
		MatchID:   row.MatchID,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		KickoffAt: row.KickoffAt,
		Finished:  row.Finished,
	}
}
