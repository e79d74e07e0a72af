// Package grpcmw provides a gRPC unary interceptor that records handler
// panics through a logship shim. The gRPC-backed implementation is gated
// behind the build tag `grpc`, mirroring the optional dependency: builds
// without the tag get a stub that fails loudly when invoked.
package grpcmw

// Reporter is the subset of the shim the interceptor needs. *logship.Shim
// satisfies it.
type Reporter interface {
	Log(fileName string, title string, content any)
	Report(payload any)
}

// Option defines a configuration option for the gRPC middleware.
type Option func(*options)

type options struct {
	logName string
}

// WithLogName sets the log file the panic entries are appended to.
func WithLogName(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.logName = name
	}
}
