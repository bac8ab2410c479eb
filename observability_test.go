package userstore_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/arllen133/userstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	repo := setupRepository(t,
		userstore.WithLogger(logger),
		userstore.WithOperationLogging(true),
	)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "Test", "test@example.com", 30)
	require.NoError(t, err)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "operation executed")
	assert.Contains(t, logOutput, "operation=CreateUser")
	assert.Contains(t, logOutput, "affected=1")
}

func TestWithSlowOpThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	repo := setupRepository(t,
		userstore.WithLogger(logger),
		userstore.WithSlowOpThreshold(1*time.Nanosecond), // Very low threshold to trigger warning
	)
	ctx := context.Background()

	_, _ = repo.GetUserByName(ctx, "Nobody")

	if !bytes.Contains(buf.Bytes(), []byte("slow operation")) {
		t.Errorf("expected 'slow operation' warning in log, got: %s", buf.String())
	}
}

func TestLogsFailedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := userstore.DefaultConfig()
	cfg.Backend = userstore.BackendSQLite
	cfg.SQLiteDSN = ":memory:"

	ctx := context.Background()
	repo, err := userstore.Open(ctx, cfg, userstore.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, repo.Close(ctx))

	_, err = repo.CreateUser(ctx, "Late", "late@example.com", 1)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "operation failed")
	assert.Contains(t, buf.String(), "operation=CreateUser")
}

func TestInvalidIdentifierIsObserved(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	repo := setupRepository(t,
		userstore.WithLogger(logger),
		userstore.WithTracer(provider.Tracer("test")),
	)
	ctx := context.Background()

	_, err := repo.GetUserByID(ctx, "not-an-id")
	require.ErrorIs(t, err, userstore.ErrInvalidIdentifier)
	_, err = repo.DeleteUser(ctx, "zz")
	require.ErrorIs(t, err, userstore.ErrInvalidIdentifier)

	assert.Contains(t, buf.String(), "operation failed")
	assert.Contains(t, buf.String(), "operation=GetUserByID")
	assert.Contains(t, buf.String(), "operation=DeleteUser")

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "userstore.GetUserByID", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "userstore.DeleteUser", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestWithTracer(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	repo := setupRepository(t, userstore.WithTracer(provider.Tracer("test")))
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, "Traced", "traced@example.com", 33)
	require.NoError(t, err)
	_, err = repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	_, err = repo.DeleteUser(ctx, id)
	require.NoError(t, err)

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"userstore.CreateUser",
		"userstore.GetUserByID",
		"userstore.DeleteUser",
	}, names)
}

func TestWithMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	repo := setupRepository(t, userstore.WithMeter(provider.Meter("test")))
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "Metered", "metered@example.com", 40)
	require.NoError(t, err)
	_, err = repo.GetUsersByMinAge(ctx, 0)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var total int64
	seen := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			seen[m.Name] = true
			if m.Name != "userstore.op.count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}

	assert.True(t, seen["userstore.op.count"])
	assert.True(t, seen["userstore.op.duration"])
	assert.EqualValues(t, 2, total)
}

func TestWithDefaultTracerAndMeter(t *testing.T) {
	// Just test that it doesn't panic
	repo := setupRepository(t,
		userstore.WithDefaultTracer(),
		userstore.WithDefaultMeter(),
	)
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, "Test", "test@example.com", 20)
	require.NoError(t, err)

	found, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Test", found.Name)
}
