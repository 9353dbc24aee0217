package user

import "context"

type Repository interface {
	// Register creates the user with reminders enabled. Registering an
	// existing user is a no-op and keeps the current reminder flag.
	Register(ctx context.Context, userID string) error

	SetReminderEnabled(ctx context.Context, userID string, enabled bool) error

	// ReminderEnabled reports the opt-in flag; false for unknown users.
	ReminderEnabled(ctx context.Context, userID string) (bool, error)

	ListRegisteredIDs(ctx context.Context) ([]string, error)
}
