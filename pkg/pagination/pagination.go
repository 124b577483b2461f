package pagination

const (
	// DefaultHistoryLimit caps transaction history reads when the caller
	// does not provide a limit.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit is the largest page any history read can request.
	MaxHistoryLimit = 200
)

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit, fallback, max int) int {
	if fallback <= 0 {
		fallback = DefaultHistoryLimit
	}
	if max <= 0 {
		max = MaxHistoryLimit
	}
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
