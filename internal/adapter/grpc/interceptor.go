package grpc

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/finance-dashboard/internal/logging"
)

// LoggingInterceptor returns a gRPC unary server interceptor that logs the
// method, status code and duration of every call.
// Client errors are logged at info, server-side failures at warn.
func LoggingInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	log := logger.Named("grpc")

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}

		switch code {
		case codes.OK:
			log.Info("rpc completed", fields...)
		case codes.InvalidArgument, codes.NotFound, codes.Canceled:
			log.Info("rpc rejected", append(fields, zap.Error(err))...)
		default:
			log.Warn("rpc failed", append(fields, zap.Error(err))...)
		}

		return resp, err
	}
}

// RecoveryInterceptor turns a panic in a handler into codes.Internal
func RecoveryInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	log := logger.Named("grpc")

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in rpc handler",
					zap.String("method", info.FullMethod),
					zap.String("panic", fmt.Sprint(r)),
					zap.Stack("stack"),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}
