package engine

import "fmt"

// InputValidationError reports a missing or empty argument to one of
// the engine's entry points. No partial computation happens after it.
type InputValidationError struct {
	Field string
	Msg   string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Msg)
}

// DataAccessError reports a failed call to the recipe repository. For
// whole-catalog operations it is fatal; callers must not treat it as an
// empty result.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}
