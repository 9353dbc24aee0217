package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jverhelst/scorecast/internal/domain/prediction"
	qb "github.com/jverhelst/scorecast/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// predictionID derives a stable composite key so the (user, match) pair
// stays unique across upserts.
func predictionID(userID, matchID string) string {
	return userID + "|" + matchID
}

func (r *PredictionRepository) Upsert(ctx context.Context, userID, matchID string, homeGoals, awayGoals int) error {
	insertModel := predictionTableModel{
		ID:        predictionID(userID, matchID),
		UserID:    userID,
		MatchID:   matchID,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		Points:    prediction.PointsUnscored,
	}
	query, args, err := qb.InsertModel("predictions", insertModel,
		"ON CONFLICT (user_id, match_id) DO UPDATE SET home_goals = EXCLUDED.home_goals, away_goals = EXCLUDED.away_goals, points = EXCLUDED.points")
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) Find(ctx context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("id", "user_id", "match_id", "home_goals", "away_goals", "points").
		From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build find prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("find prediction: %w", err)
	}

	return toPrediction(row), true, nil
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) (map[string]prediction.Prediction, error) {
	query, args, err := qb.Select("id", "user_id", "match_id", "home_goals", "away_goals", "points").
		From("predictions").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by match: %w", err)
	}

	out := make(map[string]prediction.Prediction, len(rows))
	for _, row := range rows {
		out[row.ID] = toPrediction(row)
	}
	return out, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("id", "user_id", "match_id", "home_goals", "away_goals", "points").
		From("predictions").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPrediction(row))
	}
	return out, nil
}

func (r *PredictionRepository) ListUserIDsByMatch(ctx context.Context, matchID string) ([]string, error) {
	query, args, err := qb.Select("user_id").
		From("predictions").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictors query: %w", err)
	}

	var userIDs []string
	if err := r.db.SelectContext(ctx, &userIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list predictors by match: %w", err)
	}
	return userIDs, nil
}

func (r *PredictionRepository) SetPoints(ctx context.Context, id string, points int) error {
	query, args, err := qb.Update("predictions").
		Set("points", points).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set prediction points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set prediction points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set prediction points: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set prediction points: prediction %s not found", id)
	}
	return nil
}

func toPrediction(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:        row.ID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeGoals: row.HomeGoals,
		AwayGoals: row.AwayGoals,
		Points:    row.Points,
	}
}
