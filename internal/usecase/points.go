package usecase

// Point awards per scoring tier. Every prediction earns at least the
// participation point.
const (
	PointsExact          = 10
	PointsGoalDifference = 7
	PointsOutcome        = 5
	PointsParticipation  = 1
)

// CalculatePoints maps an actual scoreline and a predicted scoreline to
// a point award. Tiers are checked in order and the first match wins:
// exact scoreline, then goal difference, then outcome direction. A
// correctly predicted draw always lands in the difference tier (0 == 0),
// so the direction tier only ever decides home or away wins.
func CalculatePoints(actualHome, actualAway, predictedHome, predictedAway int) int {
	if actualHome == predictedHome && actualAway == predictedAway {
		return PointsExact
	}
	if actualHome-actualAway == predictedHome-predictedAway {
		return PointsGoalDifference
	}
	if (actualHome > actualAway && predictedHome > predictedAway) ||
		(actualHome < actualAway && predictedHome < predictedAway) {
		return PointsOutcome
	}
	return PointsParticipation
}
