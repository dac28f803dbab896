package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/finance-dashboard/internal/logging"
)

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logging.Logger{Logger: zap.New(core)}, logs
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name          string
		handlerErr    error
		expectedCode  codes.Code
		expectedLevel zapcore.Level
		expectedMsg   string
	}{
		{
			name:          "Success",
			expectedCode:  codes.OK,
			expectedLevel: zapcore.InfoLevel,
			expectedMsg:   "rpc completed",
		},
		{
			name:          "Invalid Argument",
			handlerErr:    status.Error(codes.InvalidArgument, "amount must be a non-negative value"),
			expectedCode:  codes.InvalidArgument,
			expectedLevel: zapcore.InfoLevel,
			expectedMsg:   "rpc rejected",
		},
		{
			name:          "Unavailable",
			handlerErr:    status.Error(codes.Unavailable, "network error"),
			expectedCode:  codes.Unavailable,
			expectedLevel: zapcore.WarnLevel,
			expectedMsg:   "rpc failed",
		},
		{
			name:          "Plain Error",
			handlerErr:    errors.New("boom"),
			expectedCode:  codes.Unknown,
			expectedLevel: zapcore.WarnLevel,
			expectedMsg:   "rpc failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := observedLogger()
			interceptor := LoggingInterceptor(logger)

			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				if tt.handlerErr != nil {
					return nil, tt.handlerErr
				}
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: FullMethod("GetState"),
			}

			resp, err := interceptor(context.Background(), "test-request", info, handler)

			assert.True(t, handlerCalled, "handler should always be called")
			assert.Equal(t, tt.expectedCode, status.Code(err))
			if tt.handlerErr == nil {
				assert.Equal(t, "success", resp)
			}

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			assert.Equal(t, tt.expectedMsg, entries[0].Message)

			ctxMap := entries[0].ContextMap()
			assert.Equal(t, "/finance.v1.FinanceService/GetState", ctxMap["method"])
			assert.Equal(t, tt.expectedCode.String(), ctxMap["code"])
			assert.Contains(t, ctxMap, "duration")
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	logger, logs := observedLogger()
	interceptor := RecoveryInterceptor(logger)

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("unexpected nil")
	}
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("AddTransaction")}

	resp, err := interceptor(context.Background(), "req", info, handler)

	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	require.Equal(t, 1, logs.FilterMessage("panic in rpc handler").Len())
}

func TestRecoveryInterceptor_PassesThrough(t *testing.T) {
	interceptor := RecoveryInterceptor(logging.NewNop())

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	}

	resp, err := interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/x/y"}, handler)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
