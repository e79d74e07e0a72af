package logship

import (
	"context"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/logship/internal/logfile"
	"github.com/hyp3rd/logship/internal/relay"
)

// Shim is the assembled telemetry facade: local persistence through the
// rotating log writer, plus best-effort remote reporting through the
// dispatcher (asynchronous) or a direct bounded POST (synchronous). Log and
// Report never return errors; ReportSync does, because its caller explicitly
// chose to block on the outcome.
type Shim struct {
	cfg        Config
	writer     *logfile.Writer
	dispatcher *relay.Dispatcher
}

// New validates the configuration and assembles a Shim.
func New(cfg Config) (*Shim, error) {
	cfg = cfg.withDefaults()

	err := cfg.validate()
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid shim configuration")
	}

	writer, err := logfile.NewWriter(logfile.Config{
		BasePath: cfg.BasePath,
		Thresholds: logfile.Thresholds{
			MaxLines:  cfg.MaxLines,
			MaxSizeKB: cfg.MaxSizeKB,
		},
		FileMode:     cfg.FileMode,
		DirMode:      LogDirPermissions,
		ErrorHandler: cfg.ErrorHandler,
	})
	if err != nil {
		return nil, ewrap.Wrap(err, "creating log writer")
	}

	dispatcher := relay.NewDispatcher(relay.DispatcherConfig{
		StagingDir:     cfg.StagingDir,
		DestinationURL: cfg.DestinationURL,
		Timeout:        cfg.AsyncTimeout,
		WorkerPath:     cfg.WorkerPath,
		ErrorHandler:   cfg.ErrorHandler,
	})

	return &Shim{
		cfg:        cfg,
		writer:     writer,
		dispatcher: dispatcher,
	}, nil
}

// Log appends one entry to the named file under the configured base path.
// The file name may include subdirectories; missing directories are created
// best-effort. Content that cannot be serialized aborts this one call with
// no partial artifact. Log never raises and never blocks indefinitely.
func (s *Shim) Log(fileName, title string, content any) {
	body, err := EncodeBody(content)
	if err != nil {
		s.absorb(err)

		return
	}

	entry := Entry{
		Timestamp: s.writer.Now(),
		Title:     title,
		Body:      body,
	}

	s.writer.Append(fileName, entry.Format())
}

// Report queues the payload for fire-and-forget delivery to the configured
// destination. Control returns as soon as the payload is staged and the
// detached worker is started; the call's latency is independent of network
// reachability. Nothing is retried and no outcome is surfaced.
func (s *Shim) Report(payload any) {
	data, err := EncodePayload(payload)
	if err != nil {
		s.absorb(err)

		return
	}

	s.dispatcher.Dispatch(data)
}

// ReportSync delivers the payload with a single blocking POST bounded by the
// configured sync timeout. Unlike Log and Report, the outcome is returned:
// the caller opted into blocking and may want to know whether the request
// went out. The response itself is still ignored.
func (s *Shim) ReportSync(ctx context.Context, payload any) error {
	if s.cfg.DestinationURL == "" {
		return relay.ErrNoDestination
	}

	data, err := EncodePayload(payload)
	if err != nil {
		return err
	}

	return relay.Deliver(ctx, s.cfg.DestinationURL, data, s.cfg.SyncTimeout)
}

// Config returns a copy of the shim's effective configuration.
func (s *Shim) Config() Config {
	return s.cfg
}

func (s *Shim) absorb(err error) {
	if s.cfg.ErrorHandler != nil {
		s.cfg.ErrorHandler(err)
	}
}
