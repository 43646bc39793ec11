package turnover

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is returned when a parameter is outside its bounds.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrNilReceptor is returned when the model is configured without a
	// receptor.
	ErrNilReceptor = errors.New("receptor must not be nil")

	// ErrNotRegistered is returned when a cell is ticked before the model was
	// told about it.
	ErrNotRegistered = errors.New("cell not registered")

	// ErrInvalidStep is returned for a negative or non-finite step size or a
	// NaN bound fraction.
	ErrInvalidStep = errors.New("invalid step")

	// ErrAlreadyRunning is returned when the parameters are changed after the
	// first tick.
	ErrAlreadyRunning = errors.New("model is already running")
)

// ConfigError reports a parameter that does not fit its schema bounds.
type ConfigError struct {
	Param string
	Value float64
	Min   float64
	Max   float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s = %v is outside [%v, %v]",
		e.Param, e.Value, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrOutOfRange) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ValidationError collects every issue found in a scenario section.
type ValidationError struct {
	Issues []error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid turnover config: unknown validation error"
	}

	if len(e.Issues) == 1 {
		return "invalid turnover config: " + e.Issues[0].Error()
	}

	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.Error())
	}

	return "invalid turnover config: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual issues to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Issues
}

// Add records an issue.
func (e *ValidationError) Add(err error) {
	e.Issues = append(e.Issues, err)
}

// HasIssues tells if any issue was recorded.
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}
