package standing

// Standing is one user's cumulative point total. Totals only ever grow;
// the store keeps a running sum rather than recomputing it per read.
type Standing struct {
	UserID string
	Points int
}
