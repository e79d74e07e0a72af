// Package httpmw provides HTTP middleware that wires a logship shim into a
// request pipeline: panics are persisted to the local log and relayed to the
// remote collector, then answered with a 500.
package httpmw

import (
	"fmt"
	"net/http"
	"runtime/debug"
)

const defaultLogName = "panics.log"

// Reporter is the subset of the shim the middleware needs. *logship.Shim
// satisfies it.
type Reporter interface {
	Log(fileName string, title string, content any)
	Report(payload any)
}

// Option configures the behaviour of the Recoverer middleware.
type Option func(*options)

type options struct {
	logName string
	repanic bool
}

// WithLogName sets the log file the panic entries are appended to.
func WithLogName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.logName = name
		}
	}
}

// WithRepanic makes the middleware re-raise the panic after recording it,
// for stacks that have their own recovery layer further out.
func WithRepanic(enable bool) Option {
	return func(o *options) {
		o.repanic = enable
	}
}

// Recoverer returns middleware that records panics through the reporter. The
// panic value, request coordinates and stack are logged locally and relayed
// to the collector; the client receives a plain 500 unless WithRepanic is
// set. Recording is best-effort through the shim contract, so the middleware
// itself can never turn a panic into a second fault.
func Recoverer(reporter Reporter, opts ...Option) func(http.Handler) http.Handler {
	cfg := options{logName: defaultLogName}

	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				detail := map[string]any{
					"panic":  fmt.Sprint(recovered),
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}

				reporter.Log(cfg.logName, "panic recovered", detail)
				reporter.Report(detail)

				if cfg.repanic {
					panic(recovered)
				}

				w.WriteHeader(http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
