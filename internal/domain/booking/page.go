package booking

const (
	// DefaultLimit is the page size used when the caller requests none.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of the requested value.
	MaxLimit = 100
)

// Page is a stable, ordered slice of the matching set. Total reflects the
// unsliced count and Limit the clamped value actually applied.
type Page struct {
	Total  int64    `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
	Data   []Record `json:"data"`
}

// ClampPage normalizes pagination inputs: limit falls back to DefaultLimit
// when non-positive and is capped at MaxLimit; offset is never negative.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
