// Package logfile implements the append-with-lock-and-rotate protocol for
// local log files.
//
// Each append is a self-contained open/lock/write/close cycle so that
// multiple goroutines and multiple independent processes can share one log
// path. The actual write is serialized by an exclusive advisory flock on the
// open file handle; rotation is advisory and best-effort. Two writers racing
// on the rotation check may both decide to rotate: at most one rename
// succeeds, the loser's rename fails against an already-moved source and its
// subsequent open simply creates a fresh file. The worst outcome of that race
// is an extra rotation artifact, never a corrupted entry, because the write
// itself always happens under the lock.
package logfile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/sys/unix"
)

// Config holds the configuration for a Writer.
type Config struct {
	// BasePath is the directory all file names are resolved against.
	BasePath string
	// Thresholds are the default rotation limits applied by Append.
	Thresholds Thresholds
	// FileMode sets the permissions for new log files.
	FileMode os.FileMode
	// DirMode sets the permissions for created intermediate directories.
	DirMode os.FileMode
	// ErrorHandler receives absorbed failures. Optional.
	ErrorHandler func(error)
	// Now supplies the clock used for rotation suffixes. Defaults to time.Now.
	Now func() time.Time
}

// Writer owns the append protocol for log files under a base path. It is safe
// for concurrent use; serialization happens at the file system level, so
// independent Writer instances in separate processes cooperate too.
type Writer struct {
	cfg Config
}

// NewWriter validates the configuration and returns a Writer.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.BasePath == "" {
		return nil, ewrap.New("writer base path is required")
	}

	if cfg.FileMode == 0 {
		cfg.FileMode = 0o644
	}

	if cfg.DirMode == 0 {
		cfg.DirMode = 0o755
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Writer{cfg: cfg}, nil
}

// Now returns the writer's clock reading. Entry timestamps and rotation
// suffixes come from the same clock.
func (w *Writer) Now() time.Time {
	return w.cfg.Now()
}

// Append writes one formatted entry to the named file using the configured
// thresholds. It never returns an error: all failures are absorbed and
// forwarded to the ErrorHandler. A logging primitive must not crash or hang
// its host.
func (w *Writer) Append(fileName, entry string) {
	w.AppendWith(fileName, entry, w.cfg.Thresholds)
}

// AppendWith is Append with explicit rotation thresholds for this one call.
func (w *Writer) AppendWith(fileName, entry string, t Thresholds) {
	err := w.append(fileName, entry, t)
	if err != nil && w.cfg.ErrorHandler != nil {
		w.cfg.ErrorHandler(err)
	}
}

// append runs the full protocol and reports the classified reason on failure.
func (w *Writer) append(fileName, entry string, t Thresholds) error {
	if fileName == "" {
		return ErrEmptyFileName
	}

	path := filepath.Join(w.cfg.BasePath, fileName)

	// Directory creation is best-effort: if it fails, the open below fails
	// instead and this call degrades to a no-op.
	//nolint:errcheck
	os.MkdirAll(filepath.Dir(path), w.cfg.DirMode)

	w.rotateIfNeeded(path, t)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, w.cfg.FileMode)
	if err != nil {
		return ewrap.Wrapf(err, "opening log file").WithMetadata("path", path)
	}
	defer file.Close()

	err = unix.Flock(int(file.Fd()), unix.LOCK_EX)
	if err != nil {
		return ErrLockFailed
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN) //nolint:errcheck

	_, err = file.WriteString(entry)
	if err != nil {
		return ewrap.Wrapf(err, "writing log entry").WithMetadata("path", path)
	}

	err = file.Sync()
	if err != nil {
		return ewrap.Wrapf(err, "syncing log file").WithMetadata("path", path)
	}

	return nil
}

// rotateIfNeeded renames the file to a timestamped sibling when it exceeds
// the thresholds. A missing file never rotates; the first write creates it
// fresh. A failed rename is swallowed: worst case the file grows past its
// threshold until a later write succeeds in rotating it.
func (w *Writer) rotateIfNeeded(path string, t Thresholds) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	if !shouldRotate(info.Size(), countLines(path), t) {
		return
	}

	//nolint:errcheck
	os.Rename(path, rotatedName(path, w.cfg.Now()))
}
