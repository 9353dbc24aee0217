package usecase

import "testing"

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name                         string
		actualHome, actualAway       int
		predictedHome, predictedAway int
		want                         int
	}{
		{"exact scoreline", 2, 1, 2, 1, PointsExact},
		{"exact nil nil", 0, 0, 0, 0, PointsExact},
		{"goal difference home win", 3, 1, 2, 0, PointsGoalDifference},
		{"goal difference away win", 0, 2, 1, 3, PointsGoalDifference},
		{"draw predicted draw wrong score", 1, 1, 2, 2, PointsGoalDifference},
		{"outcome home win", 3, 0, 1, 0, PointsOutcome},
		{"outcome away win", 0, 3, 1, 2, PointsOutcome},
		{"wrong outcome", 2, 0, 0, 1, PointsParticipation},
		{"draw against decided match", 2, 1, 1, 1, PointsParticipation},
		{"decided against draw", 1, 1, 2, 1, PointsParticipation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculatePoints(tc.actualHome, tc.actualAway, tc.predictedHome, tc.predictedAway)
			if got != tc.want {
				t.Fatalf("CalculatePoints(%d,%d,%d,%d) = %d, want %d",
					tc.actualHome, tc.actualAway, tc.predictedHome, tc.predictedAway, got, tc.want)
			}
		})
	}
}

func TestCalculatePointsDrawNeverScoresOutcomeTier(t *testing.T) {
	// A correctly called draw shares the goal difference of the actual
	// draw, so it can never fall through to the outcome tier.
	for ph := 0; ph <= 4; ph++ {
		got := CalculatePoints(1, 1, ph, ph)
		if got != PointsExact && got != PointsGoalDifference {
			t.Fatalf("draw prediction %d-%d scored %d, want exact or difference tier", ph, ph, got)
		}
	}
}
