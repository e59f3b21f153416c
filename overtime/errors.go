package overtime

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotDaySequence is returned when an import/load payload cannot be
	// parsed as a sequence of day records. The entire payload is discarded;
	// callers keep their prior state.
	ErrNotDaySequence = errors.New("payload is not a day sequence")
)
