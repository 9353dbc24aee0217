package postgres

import "time"

type matchTableModel struct {
	MatchID   string    `db:"match_id"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	KickoffAt time.Time `db:"kickoff_at"`
	Finished  bool      `db:"finished"`
}

type predictionTableModel struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	MatchID   string `db:"match_id"`
	HomeGoals int    `db:"home_goals"`
	AwayGoals int    `db:"away_goals"`
	Points    int    `db:"points"`
}

type standingTableModel struct {
	UserID string `db:"user_id"`
	Points int    `db:"points"`
}

type userTableModel struct {
	ID              string `db:"id"`
	ReminderEnabled bool   `db:"reminder_enabled"`
}
