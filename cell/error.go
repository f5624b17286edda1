package cell

import "fmt"

// InvalidLevelError is returned when a requested subdivision level is outside
// the supported range. This is a structural error: nothing has been generated
// when it occurs and the whole run should be aborted.
type InvalidLevelError struct {
	Message string
	Level   int
}

func NewInvalidLevelError(level int) *InvalidLevelError {
	return &InvalidLevelError{
		Message: fmt.Sprintf("Invalid level %d: must be within [0, %d]", level, MaxSupportedLevel),
		Level:   level,
	}
}

func InvalidLevelErrorWithMessage(level int, message string) *InvalidLevelError {
	return &InvalidLevelError{
		Message: fmt.Sprintf("Invalid level %d: %s", level, message),
		Level:   level,
	}
}

func (e *InvalidLevelError) Error() string {
	return e.Message
}
