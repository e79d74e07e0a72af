package logship

import (
	"os"
	"time"

	"github.com/hyp3rd/ewrap"
)

const (
	// DefaultMaxLines is the default line-count threshold before rotation.
	DefaultMaxLines = 10000
	// DefaultMaxSizeKB is the default size threshold in KiB before rotation.
	DefaultMaxSizeKB = 2048
	// DefaultAsyncTimeout is the delivery timeout handed to the detached worker.
	DefaultAsyncTimeout = 10 * time.Second
	// DefaultSyncTimeout bounds the blocking synchronous delivery path.
	DefaultSyncTimeout = 5 * time.Second
	// LogFilePermissions are the default permissions for new log files.
	LogFilePermissions os.FileMode = 0o644
	// LogDirPermissions are the default permissions for created log directories.
	LogDirPermissions os.FileMode = 0o755
)

// Config holds the immutable configuration for a Shim. The zero value is not
// usable directly; pass it through New, which applies defaults and validates.
type Config struct {
	// BasePath is the directory under which all log files are created.
	BasePath string
	// MaxLines is the line-count rotation threshold. Defaults to DefaultMaxLines.
	MaxLines int
	// MaxSizeKB is the size rotation threshold in KiB. Defaults to DefaultMaxSizeKB.
	MaxSizeKB int
	// DestinationURL is the remote collector endpoint. Optional; reporting
	// calls on a shim without a destination are absorbed no-ops.
	DestinationURL string
	// WorkerPath is the executable spawned for asynchronous delivery. When
	// empty the worker binary is resolved from PATH at dispatch time.
	WorkerPath string
	// StagingDir is where async payloads are staged for the worker. Defaults
	// to the system temp directory.
	StagingDir string
	// AsyncTimeout is the POST timeout passed to the detached worker.
	AsyncTimeout time.Duration
	// SyncTimeout bounds ReportSync. Defaults to DefaultSyncTimeout.
	SyncTimeout time.Duration
	// FileMode sets the permissions for new log files.
	FileMode os.FileMode
	// ErrorHandler receives failures the shim absorbed. Optional; when nil,
	// absorbed failures are discarded silently.
	ErrorHandler func(error)
}

// DefaultConfig returns the default shim configuration. BasePath must still
// be provided by the caller.
func DefaultConfig() Config {
	return Config{
		MaxLines:     DefaultMaxLines,
		MaxSizeKB:    DefaultMaxSizeKB,
		AsyncTimeout: DefaultAsyncTimeout,
		SyncTimeout:  DefaultSyncTimeout,
		FileMode:     LogFilePermissions,
		StagingDir:   os.TempDir(),
	}
}

// withDefaults fills unset fields with their documented defaults.
func (c Config) withDefaults() Config {
	if c.MaxLines <= 0 {
		c.MaxLines = DefaultMaxLines
	}

	if c.MaxSizeKB <= 0 {
		c.MaxSizeKB = DefaultMaxSizeKB
	}

	if c.AsyncTimeout <= 0 {
		c.AsyncTimeout = DefaultAsyncTimeout
	}

	if c.SyncTimeout <= 0 {
		c.SyncTimeout = DefaultSyncTimeout
	}

	if c.FileMode == 0 {
		c.FileMode = LogFilePermissions
	}

	if c.StagingDir == "" {
		c.StagingDir = os.TempDir()
	}

	return c
}

// validate reports configuration errors New refuses to proceed with.
func (c Config) validate() error {
	if c.BasePath == "" {
		return ewrap.New("log base path is required")
	}

	return nil
}
