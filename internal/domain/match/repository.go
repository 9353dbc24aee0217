package match

import "context"

// Repository is the durable store of finalized match results. Finalize is
// the single idempotency gate of the reconciliation pipeline.
type Repository interface {
	// Finalize persists rec as finished unless a finished record already
	// exists for rec.MatchID. It reports true when the match was already
	// finalized, in which case nothing is written. The check-and-set is
	// atomic: under concurrent attempts exactly one caller observes false.
	Finalize(ctx context.Context, rec Record) (bool, error)

	GetByID(ctx context.Context, matchID string) (Record, bool, error)

	// ListByIDs returns the finalized records for the given ids, keyed by
	// match id. Missing ids are simply absent from the result.
	ListByIDs(ctx context.Context, matchIDs []string) (map[string]Record, error)
}
