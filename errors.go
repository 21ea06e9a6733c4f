package bootfb

import "fmt"

// MapError is returned when a surface could not be mapped or unmapped.
type MapError struct {
	Op   string
	Size int
	Err  error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("bootfb: %s of %d bytes failed: %v", e.Op, e.Size, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// ModeSetError is returned when the hardware rejects the requested mode.
type ModeSetError struct {
	Op  string
	Err error
}

func (e *ModeSetError) Error() string {
	return fmt.Sprintf("bootfb: mode set failed during %s: %v", e.Op, e.Err)
}

func (e *ModeSetError) Unwrap() error { return e.Err }

// CommitError reports a failed vertical sync wait or pan. It is not fatal: the
// surface contents were updated, but the display may not show them.
type CommitError struct {
	Op  string
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("bootfb: %s failed: %v", e.Op, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
