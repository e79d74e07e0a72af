package relay

import (
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"github.com/hyp3rd/ewrap"
)

// DefaultWorkerName is the executable resolved from PATH when no explicit
// worker path is configured.
const DefaultWorkerName = "logship-worker"

// SpawnResult reports whether a detached worker was started. There is no
// channel back to the worker beyond this: once started it cannot be observed
// or aborted by the parent.
type SpawnResult struct {
	Started bool
}

// Executor runs a staged task in a fully independent execution context.
// Implementations must not block the caller beyond the time needed to start
// the work and must never wait on its completion.
type Executor interface {
	RunDetached(task Task) SpawnResult
}

// ProcessExecutor spawns the worker binary as a detached OS process. The
// arguments travel as a discrete argv array, never through a shell, so no
// value in the task can be interpreted as shell syntax. All three standard
// streams stay on the null device and the child runs in its own session,
// fully severed from the parent's lifecycle.
type ProcessExecutor struct {
	// WorkerPath is the worker executable. When empty, DefaultWorkerName is
	// resolved from PATH at spawn time.
	WorkerPath string
	// ErrorHandler receives spawn failures. Optional.
	ErrorHandler func(error)
}

// RunDetached starts the worker for the task and releases it immediately.
func (e *ProcessExecutor) RunDetached(task Task) SpawnResult {
	worker := e.WorkerPath

	if worker == "" {
		resolved, err := exec.LookPath(DefaultWorkerName)
		if err != nil {
			e.report(ewrap.Wrapf(err, "resolving worker executable"))

			return SpawnResult{}
		}

		worker = resolved
	}

	seconds := int(task.Timeout / time.Second)
	if seconds <= 0 {
		seconds = int(DefaultDeliveryTimeout / time.Second)
	}

	cmd := exec.Command(worker, task.StagingPath, task.DestinationURL, strconv.Itoa(seconds))

	// Nil standard streams connect the child to the null device. A fresh
	// session detaches it from the parent's process group and controlling
	// terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	err := cmd.Start()
	if err != nil {
		e.report(ewrap.Wrapf(err, "starting detached worker").WithMetadata("worker", worker))

		return SpawnResult{}
	}

	// The parent must not wait on or poll the child.
	cmd.Process.Release() //nolint:errcheck

	return SpawnResult{Started: true}
}

func (e *ProcessExecutor) report(err error) {
	if e.ErrorHandler != nil {
		e.ErrorHandler(err)
	}
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// StagingDir is where payloads are staged. Defaults to the system temp
	// directory.
	StagingDir string
	// DestinationURL is the collector endpoint handed to the worker.
	DestinationURL string
	// Timeout bounds the worker's POST. Defaults to DefaultDeliveryTimeout.
	Timeout time.Duration
	// WorkerPath overrides the worker executable used by the default
	// executor.
	WorkerPath string
	// Executor overrides the spawn mechanism. Defaults to a ProcessExecutor.
	Executor Executor
	// ErrorHandler receives absorbed failures. Optional.
	ErrorHandler func(error)
}

// Dispatcher stages payloads and hands them to an Executor for out-of-band
// delivery. Dispatch never raises and never blocks beyond creating the
// staging file and starting the worker; in particular its latency is
// independent of whether the destination is reachable.
type Dispatcher struct {
	cfg DispatcherConfig
}

// NewDispatcher returns a Dispatcher with defaults applied.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultDeliveryTimeout
	}

	if cfg.Executor == nil {
		cfg.Executor = &ProcessExecutor{
			WorkerPath:   cfg.WorkerPath,
			ErrorHandler: cfg.ErrorHandler,
		}
	}

	return &Dispatcher{cfg: cfg}
}

// Dispatch queues the payload for detached delivery. All failures are
// absorbed and forwarded to the ErrorHandler.
func (d *Dispatcher) Dispatch(payload []byte) {
	err := d.dispatch(payload)
	if err != nil && d.cfg.ErrorHandler != nil {
		d.cfg.ErrorHandler(err)
	}
}

// dispatch reports the classified reason when the payload could not be
// handed off.
func (d *Dispatcher) dispatch(payload []byte) error {
	if d.cfg.DestinationURL == "" {
		return ErrNoDestination
	}

	if len(payload) == 0 {
		return ErrEmptyPayload
	}

	path, err := Stage(d.cfg.StagingDir, payload)
	if err != nil {
		return err
	}

	result := d.cfg.Executor.RunDetached(Task{
		StagingPath:    path,
		DestinationURL: d.cfg.DestinationURL,
		Timeout:        d.cfg.Timeout,
	})
	if !result.Started {
		// The staged payload stays behind as an orphan; reclaiming it is
		// SweepStale's job, not the dispatch path's.
		return ErrSpawnFailed
	}

	return nil
}
