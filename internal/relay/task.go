// Package relay implements best-effort delivery of telemetry payloads to a
// remote collector.
//
// The asynchronous path works through a staging-file handoff: the caller
// serializes the payload to a uniquely named file in a staging directory and
// spawns a fully detached worker process that reads the file, deletes it, and
// performs a single POST with a bounded timeout. The staging file's lifetime
// is exactly "created by the caller, consumed and deleted by the worker". No
// acknowledgment flows back to the caller and nothing is retried: delivery is
// fire-and-forget by design.
//
// A worker that never starts, or crashes before the delete, leaves an orphan
// behind. The core does not reconcile orphans; hosts that care can run
// SweepStale periodically.
package relay

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hyp3rd/ewrap"
)

const (
	// stagingPrefix and stagingSuffix frame every staging file name, so the
	// sweep can recognize this package's artifacts without touching foreign
	// temp files.
	stagingPrefix = "logship-"
	stagingSuffix = ".payload"

	stagingFileMode = 0o600
)

// Task is a payload staged on disk plus its destination, queued for
// out-of-band delivery by a detached worker.
type Task struct {
	// StagingPath is the file holding the serialized payload.
	StagingPath string
	// DestinationURL is the collector endpoint the worker posts to.
	DestinationURL string
	// Timeout bounds the worker's single POST attempt.
	Timeout time.Duration
}

// Stage serializes the payload to a uniquely named file in dir and returns
// its path. The name embeds a UUID, so two concurrent calls can never clobber
// each other. On any write failure the partial file is removed and nothing is
// left behind. An empty dir falls back to the system temp directory.
func Stage(dir string, payload []byte) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, stagingPrefix+uuid.NewString()+stagingSuffix)

	// O_EXCL guards the remote odds of a name collision.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, stagingFileMode)
	if err != nil {
		return "", ewrap.Wrapf(err, "creating staging file").WithMetadata("path", path)
	}

	_, err = file.Write(payload)
	if err != nil {
		file.Close()
		os.Remove(path)

		return "", ewrap.Wrapf(err, "writing staging file").WithMetadata("path", path)
	}

	err = file.Close()
	if err != nil {
		os.Remove(path)

		return "", ewrap.Wrapf(err, "closing staging file").WithMetadata("path", path)
	}

	return path, nil
}

// Consume reads the staging file and deletes it immediately, before any
// delivery attempt, so a crash mid-delivery cannot cause a second accidental
// send. A file that no longer exists yields (nil, nil): it was already
// consumed or never created, which is a successful no-op for the worker.
func Consume(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, ewrap.Wrapf(err, "reading staging file").WithMetadata("path", path)
	}

	os.Remove(path) //nolint:errcheck

	return data, nil
}

// SweepStale removes staging files in dir older than maxAge and returns how
// many were deleted. It is an optional collaborator for hosts that want to
// reclaim orphans left by workers that never ran; the dispatcher itself never
// calls it.
func SweepStale(dir string, maxAge time.Duration) int {
	if dir == "" {
		dir = os.TempDir()
	}

	matches, err := filepath.Glob(filepath.Join(dir, stagingPrefix+"*"+stagingSuffix))
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if os.Remove(match) == nil {
			removed++
		}
	}

	return removed
}
