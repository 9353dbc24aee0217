package usecase

import (
	"fmt"
	"strings"

	"github.com/jverhelst/scorecast/internal/domain/standing"
)

var podiumSymbols = []string{"\U0001F947", "\U0001F948", "\U0001F949"}

// FormatLeaderboardMessage renders the channel leaderboard: medals for
// the top three, plain ranks beyond. User ids are emitted as chat
// mentions so the sink resolves display names.
func FormatLeaderboardMessage(entries []standing.Standing) string {
	var buf strings.Builder
	buf.WriteString("Updated Leaderboard:\n")
	for i, entry := range entries {
		if i < len(podiumSymbols) {
			fmt.Fprintf(&buf, "%s <@%s>: %dpts\n", podiumSymbols[i], entry.UserID, entry.Points)
			continue
		}
		fmt.Fprintf(&buf, "%d) <@%s>: %dpts\n", i+1, entry.UserID, entry.Points)
	}
	return buf.String()
}

func formatReminderMessage(homeTeam, awayTeam string) string {
	return fmt.Sprintf(
		"Reminder: The match between %s and %s is in less than 24 hours. Please make sure to submit your prediction!",
		homeTeam, awayTeam,
	)
}
