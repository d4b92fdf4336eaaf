package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx := WithContext(ctx, logger)

	retrieved := FromContext(newCtx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()

	logger := FromContext(ctx)

	// Should return a no-op logger, not nil
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
	assert.Equal(t, newLogger, FromContext(newCtx))
}

func TestWithBranchID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	branchID := "branch-456"

	newCtx, newLogger := WithBranchID(ctx, logger, branchID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, branchID, GetBranchID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := "user-789"

	newCtx, newLogger := WithUserID(ctx, logger, userID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, userID, GetUserID(newCtx))
}

func TestGetters_NotFound(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetBranchID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestChainedContextValues(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithBranchID(ctx, logger, "branch-1")
	ctx, _ = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "branch-1", GetBranchID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
}

func TestContextKeys_Distinct(t *testing.T) {
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, RequestIDKey, BranchIDKey)
	assert.NotEqual(t, BranchIDKey, UserIDKey)
}

// newObservedLogger returns a logger writing JSON to the given buffer.
func newObservedLogger(buf *bytes.Buffer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestContextLogger_EnrichesFromContext(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newObservedLogger(&buf)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-123")
	ctx = context.WithValue(ctx, BranchIDKey, "branch-456")
	ctx = context.WithValue(ctx, UserIDKey, "user-789")
	ctx = WithContext(ctx, baseLogger)

	L(ctx).Info("test message")

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-123"`)
	assert.Contains(t, output, `"branch_id":"branch-456"`)
	assert.Contains(t, output, `"user_id":"user-789"`)
	assert.Contains(t, output, "test message")
}

func TestContextLogger_SkipsEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newObservedLogger(&buf)

	ctx := WithContext(context.Background(), baseLogger)

	L(ctx).Info("bare message")

	output := buf.String()
	assert.NotContains(t, output, "request_id")
	assert.NotContains(t, output, "branch_id")
	assert.NotContains(t, output, "user_id")
}

func TestContextLogger_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	explicit := newObservedLogger(&buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-override")

	WithLogger(ctx, explicit).Warn("explicit logger")

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-override"`)
	assert.Contains(t, output, "explicit logger")
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newObservedLogger(&buf)

	ctx := WithContext(context.Background(), baseLogger)

	L(ctx).With(zap.String("component", "transfer")).Info("with fields")

	output := buf.String()
	assert.Contains(t, output, `"component":"transfer"`)
}

func TestContextLogger_NilLoggerFallback(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	// Must not panic
	cl.Info("no logger attached")
}
