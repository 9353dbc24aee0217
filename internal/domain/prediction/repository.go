package prediction

import "context"

type Repository interface {
	// Upsert creates or overwrites the unique (user, match) forecast and
	// resets its points to the unscored sentinel.
	Upsert(ctx context.Context, userID, matchID string, homeGoals, awayGoals int) error

	Find(ctx context.Context, userID, matchID string) (Prediction, bool, error)

	// ListByMatch returns every prediction for the match keyed by
	// prediction id.
	ListByMatch(ctx context.Context, matchID string) (map[string]Prediction, error)

	ListByUser(ctx context.Context, userID string) ([]Prediction, error)

	// ListUserIDsByMatch returns the ids of users holding a prediction for
	// the match, used by the reminder pass as an existence check.
	ListUserIDsByMatch(ctx context.Context, matchID string) ([]string, error)

	// SetPoints records the scoring result. The reconciliation loop calls
	// this at most once per prediction per finalized match; the match
	// store's finalize gate guarantees it.
	SetPoints(ctx context.Context, predictionID string, points int) error
}
