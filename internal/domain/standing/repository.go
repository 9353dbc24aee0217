package standing

import "context"

type Repository interface {
	// AddPoints adds delta to the user's running total, creating the row
	// at delta on first award.
	AddPoints(ctx context.Context, userID string, delta int) error

	// List returns all standings. Order among equal totals is
	// implementation-defined but stable across calls.
	List(ctx context.Context) ([]Standing, error)
}
