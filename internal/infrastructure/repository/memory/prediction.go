package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jverhelst/scorecast/internal/domain/prediction"
)

// PredictionRepository keeps predictions in memory keyed by the composite
// (user, match) id.
type PredictionRepository struct {
	mu          sync.Mutex
	predictions map[string]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{predictions: make(map[string]prediction.Prediction)}
}

func predictionID(userID, matchID string) string {
	return userID + "|" + matchID
}

func (r *PredictionRepository) Upsert(_ context.Context, userID, matchID string, homeGoals, awayGoals int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := predictionID(userID, matchID)
	r.predictions[id] = prediction.Prediction{
		ID:        id,
		UserID:    userID,
		MatchID:   matchID,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		Points:    prediction.PointsUnscored,
	}
	return nil
}

func (r *PredictionRepository) Find(_ context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pred, ok := r.predictions[predictionID(userID, matchID)]
	return pred, ok, nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) (map[string]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]prediction.Prediction)
	for id, pred := range r.predictions {
		if pred.MatchID == matchID {
			out[id] = pred
		}
	}
	return out, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]prediction.Prediction, 0)
	for _, pred := range r.predictions {
		if pred.UserID == userID {
			out = append(out, pred)
		}
	}
	return out, nil
}

func (r *PredictionRepository) ListUserIDsByMatch(_ context.Context, matchID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0)
	for _, pred := range r.predictions {
		if pred.MatchID == matchID {
			out = append(out, pred.UserID)
		}
	}
	return out, nil
}

func (r *PredictionRepository) SetPoints(_ context.Context, predictionID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pred, ok := r.predictions[predictionID]
	if !ok {
		return fmt.Errorf("prediction %s not found", predictionID)
	}
	pred.Points = points
	r.predictions[predictionID] = pred
	return nil
}
