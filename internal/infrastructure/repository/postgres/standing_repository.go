package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jverhelst/scorecast/internal/domain/standing"
	qb "github.com/jverhelst/scorecast/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	insertModel := standingTableModel{
		UserID: userID,
		Points: delta,
	}
	query, args, err := qb.InsertModel("user_standings", insertModel,
		"ON CONFLICT (user_id) DO UPDATE SET points = user_standings.points + EXCLUDED.points")
	if err != nil {
		return fmt.Errorf("build add points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}

// List returns totals ordered by points descending with a deterministic
// user id tiebreak.
func (r *StandingRepository) List(ctx context.Context) ([]standing.Standing, error) {
	query, args, err := qb.Select("user_id", "points").
		From("user_standings").
		OrderBy("points DESC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{UserID: row.UserID, Points: row.Points})
	}
	return out, nil
}
