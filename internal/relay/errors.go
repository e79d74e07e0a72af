package relay

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the relay package.
var (
	// ErrNoDestination is returned when dispatch is attempted without a
	// destination URL.
	ErrNoDestination = ewrap.New("no destination URL configured")

	// ErrSpawnFailed is returned when the detached worker could not be
	// started. The staged payload is left behind as an orphan.
	ErrSpawnFailed = ewrap.New("detached worker could not be started")

	// ErrEmptyPayload is returned when dispatch is attempted with nothing to
	// deliver.
	ErrEmptyPayload = ewrap.New("payload is empty")
)
