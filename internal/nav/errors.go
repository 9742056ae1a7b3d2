package nav

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable matches any *DataUnavailableError via errors.Is.
var ErrDataUnavailable = errors.New("nav data unavailable")

// ErrNothingToDraw is returned when a chart is requested for an empty series.
var ErrNothingToDraw = errors.New("nothing to draw")

// DataUnavailableError reports that the raw NAV resource could not be retrieved.
// Status is the HTTP status when the source answered, 0 otherwise.
type DataUnavailableError struct {
	Status  int
	Message string
}

func (e *DataUnavailableError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return "nav data unavailable: " + e.Message
}

func (e *DataUnavailableError) Is(target error) bool { return target == ErrDataUnavailable }

// Unavailable builds a DataUnavailableError.
func Unavailable(status int, format string, args ...any) error {
	return &DataUnavailableError{Status: status, Message: fmt.Sprintf(format, args...)}
}
