package combat

import "errors"

var (
	// ErrInvalidImprovement is returned for ImproveNone or an unknown improvement kind
	ErrInvalidImprovement = errors.New("invalid improvement kind")

	// ErrMissingImprovement is returned when the table has no value for a valid kind
	ErrMissingImprovement = errors.New("improvement value not configured")

	// ErrInvalidStats is returned when weapon stats fail validation
	ErrInvalidStats = errors.New("invalid weapon stats")
)
