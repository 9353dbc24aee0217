package prediction

// PointsUnscored marks a prediction the reconciliation loop has not
// scored yet. Every awarded value is at least 1, so zero is unambiguous.
const PointsUnscored = 0

// Prediction is one user's forecast scoreline for one match. At most one
// live record exists per (user, match) pair.
type Prediction struct {
	ID        string
	UserID    string
	MatchID   string
	HomeGoals int
	AwayGoals int
	Points    int
}

func (p Prediction) Scored() bool {
	return p.Points != PointsUnscored
}
