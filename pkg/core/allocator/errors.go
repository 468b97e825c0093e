package allocator

import "fmt"

// MissingColumnError is returned when a student source row lacks one of the
// required columns. It fails the run before any allocation starts.
type MissingColumnError struct {
	Column string
	Sheet  string
}

func (e *MissingColumnError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("missing required column %q in sheet %q", e.Column, e.Sheet)
	}
	return fmt.Sprintf("missing required column %q", e.Column)
}

// InvalidTopologyError is returned when a room's dimensions are missing,
// non-numeric or non-positive. The whole run fails before any pool is
// consumed; a bad room never yields a partial allocation.
type InvalidTopologyError struct {
	Room   string
	Reason string
}

func (e *InvalidTopologyError) Error() string {
	return fmt.Sprintf("invalid topology for room %q: %s", e.Room, e.Reason)
}
