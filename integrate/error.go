package integrate

import "fmt"

// UnsupportedGeometryError is returned when an input geometry cannot be
// classified, e.g. because it is malformed, self-intersecting or of a type the
// engine does not handle. This error is recoverable: the affected feature is
// skipped and reported, the run continues with the remaining features.
type UnsupportedGeometryError struct {
	Message   string
	FeatureID string
}

func NewUnsupportedGeometryError(featureID string, details string) *UnsupportedGeometryError {
	return &UnsupportedGeometryError{
		Message:   fmt.Sprintf("Unsupported geometry of feature '%s': %s", featureID, details),
		FeatureID: featureID,
	}
}

func (e *UnsupportedGeometryError) Error() string {
	return e.Message
}
