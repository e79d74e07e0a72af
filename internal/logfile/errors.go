package logfile

import (
	"github.com/hyp3rd/ewrap"
)

// Classified failure reasons for the append protocol. The public Append
// surface absorbs every one of them; they exist so the error handler and the
// tests can distinguish why a write was skipped.
var (
	// ErrLockFailed is returned when the advisory lock could not be acquired.
	ErrLockFailed = ewrap.New("log file lock could not be acquired")

	// ErrEmptyFileName is returned when the relative file name is empty.
	ErrEmptyFileName = ewrap.New("log file name cannot be empty")
)
