package scaffold

import "fmt"

// MaterializationError indicates that a scaffold could not be fully resolved
// against its blueprint. Materialization is all-or-nothing: when this error is
// returned, no files from the run are left in place.
type MaterializationError struct {
	File string // template file that failed, empty for pre-render failures
	Key  string // the unresolved reference (template field or tool name)
	Err  error
}

func (e *MaterializationError) Error() string {
	switch {
	case e.File == "":
		return fmt.Sprintf("materialization failed: unresolved reference %q", e.Key)
	case e.Key == "":
		return fmt.Sprintf("materializing %s: %v", e.File, e.Err)
	default:
		return fmt.Sprintf("materializing %s: unresolved reference %q", e.File, e.Key)
	}
}

func (e *MaterializationError) Unwrap() error { return e.Err }
