//go:build grpc

package grpcmw

import (
	"context"
	"fmt"
	"runtime/debug"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultLogName = "panics.log"

func actualOptions(opts ...Option) options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logName == "" {
		cfg.logName = defaultLogName
	}

	return cfg
}

// UnaryServerInterceptor records handler panics through the reporter and
// converts them into codes.Internal errors. Recording follows the shim's
// best-effort contract, so the interceptor can never compound the fault.
func UnaryServerInterceptor(reporter Reporter, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			detail := map[string]any{
				"panic": fmt.Sprint(recovered),
				"stack": string(debug.Stack()),
			}
			if info != nil {
				detail["method"] = info.FullMethod
			}

			reporter.Log(cfg.logName, "panic recovered", detail)
			reporter.Report(detail)

			err = status.Error(codes.Internal, "internal server error")
		}()

		return handler(ctx, req)
	}
}
