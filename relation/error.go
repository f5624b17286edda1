package relation

import "fmt"

// InternalGeometryError is returned when a classification produced an
// inconsistent result, e.g. due to numeric degeneracy beyond the configured
// tolerance. It is fatal for the affected pair only, callers log it with both
// identifiers and continue with the remaining pairs.
type InternalGeometryError struct {
	Message string
	Subject string
	Object  string
}

func NewInternalGeometryError(subject string, object string, details string) *InternalGeometryError {
	return &InternalGeometryError{
		Message: fmt.Sprintf("Inconsistent classification of '%s' and '%s': %s", subject, object, details),
		Subject: subject,
		Object:  object,
	}
}

func (e *InternalGeometryError) Error() string {
	return e.Message
}
