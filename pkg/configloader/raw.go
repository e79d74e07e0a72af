package configloader

import (
	"time"

	"github.com/hyp3rd/logship"
)

// rawConfig mirrors the externally configurable surface of logship.Config.
// Durations are expressed in seconds to match the worker invocation contract.
type rawConfig struct {
	BasePath       string `mapstructure:"base_path"`
	MaxLines       int    `mapstructure:"max_lines"`
	MaxSizeKB      int    `mapstructure:"max_size_kb"`
	DestinationURL string `mapstructure:"destination_url"`
	WorkerPath     string `mapstructure:"worker_path"`
	StagingDir     string `mapstructure:"staging_dir"`
	AsyncTimeoutS  int    `mapstructure:"async_timeout_seconds"`
	SyncTimeoutS   int    `mapstructure:"sync_timeout_seconds"`
}

func allKeys() []string {
	return []string{
		"base_path",
		"max_lines",
		"max_size_kb",
		"destination_url",
		"worker_path",
		"staging_dir",
		"async_timeout_seconds",
		"sync_timeout_seconds",
	}
}

// applyRaw overlays the set fields of raw onto the default configuration.
// Unset (zero) fields keep their defaults.
func applyRaw(raw rawConfig) (*logship.Config, error) {
	cfg := logship.DefaultConfig()

	if raw.BasePath != "" {
		cfg.BasePath = raw.BasePath
	}

	if raw.MaxLines > 0 {
		cfg.MaxLines = raw.MaxLines
	}

	if raw.MaxSizeKB > 0 {
		cfg.MaxSizeKB = raw.MaxSizeKB
	}

	if raw.DestinationURL != "" {
		cfg.DestinationURL = raw.DestinationURL
	}

	if raw.WorkerPath != "" {
		cfg.WorkerPath = raw.WorkerPath
	}

	if raw.StagingDir != "" {
		cfg.StagingDir = raw.StagingDir
	}

	if raw.AsyncTimeoutS > 0 {
		cfg.AsyncTimeout = time.Duration(raw.AsyncTimeoutS) * time.Second
	}

	if raw.SyncTimeoutS > 0 {
		cfg.SyncTimeout = time.Duration(raw.SyncTimeoutS) * time.Second
	}

	return &cfg, nil
}
