package model

// Status represents the severity of a checker message.
//
// Design decision: We use iota-based constants rather than string
// constants for efficiency in comparisons and aggregation. The String()
// method provides human-readable output, and MarshalJSON keeps the JSON
// report stable across reorderings of the constants.
type Status int

const (
	// StatusOk indicates a successful check outcome.
	// Examples: icon downloadable, icon is square, icon has the right size.
	StatusOk Status = iota

	// StatusWarning indicates an issue worth fixing that does not break
	// the icon. Examples: icon square but not the recommended size,
	// JPEG icon carrying EXIF metadata.
	StatusWarning

	// StatusError indicates a broken or missing icon.
	// Examples: no href declared, 404, non-2xx response, non-square image.
	StatusError
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOk:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON serializes the status as its string form.
// Numeric severities in reports are fragile: inserting a constant would
// silently change the meaning of stored historical reports.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses the string form written by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"OK"`:
		*s = StatusOk
	case `"WARNING"`:
		*s = StatusWarning
	case `"ERROR"`:
		*s = StatusError
	default:
		*s = StatusOk
	}
	return nil
}
