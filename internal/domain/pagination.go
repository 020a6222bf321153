package domain

// Offset pagination defaults and limits.
const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxLimit     = 100
)

// OffsetParams holds offset-based pagination parameters for list queries.
// A Limit of 0 means no limit.
type OffsetParams struct {
	Skip  int
	Limit int
}

// DefaultOffsetParams returns skip=0, limit=10.
func DefaultOffsetParams() OffsetParams {
	return OffsetParams{Skip: DefaultSkip, Limit: DefaultLimit}
}

// Unbounded reports whether no limit applies.
func (p OffsetParams) Unbounded() bool {
	return p.Limit <= 0
}
