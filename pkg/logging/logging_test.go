package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/mirror/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Default().Debug().Msg("debug message")
	logging.Default().Info().Msg("info message")
	logging.Default().Err(assert.AnError).Msg("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, assert.AnError.Error())
}

func TestDisableLoggingForTest(t *testing.T) {
	buf := &bytes.Buffer{}
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })
	logging.SetDefault(zerolog.New(buf))

	t.Run("silenced", func(t *testing.T) {
		logging.DisableLoggingForTest(t)
		logging.Default().Info().Msg("hidden")
	})
	logging.Default().Info().Msg("restored")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "restored")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithGround(ctx, "customers")
	ctx = logging.WithMirror(ctx, "mirror_1")
	ctx = logging.WithOperation(ctx, "inspect")

	logging.FromContext(ctx).Info().Msg("divergence inspected")

	testLogger.AssertContains(t, `"ground":"customers"`)
	testLogger.AssertContains(t, `"mirror":"mirror_1"`)
	testLogger.AssertContains(t, `"operation":"inspect"`)
	assert.Len(t, testLogger.Lines(), 1)
}

func TestWithField(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithField(ctx, "matched", 2)
	ctx = logging.WithField(ctx, "keys", []string{"id"})
	logging.Ctx(ctx).Debug().Msg("joined")

	testLogger.AssertContains(t, `"matched":2`)
	testLogger.AssertContains(t, `"keys":["id"]`)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, logging.OrNop(nil))

	logger := zerolog.New(&bytes.Buffer{})
	assert.Same(t, &logger, logging.OrNop(&logger))
}

func TestConfiguration(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	tests := []struct {
		name      string
		level     string
		emit      func(l zerolog.Logger)
		shouldLog bool
	}{
		{"debug passes at debug", "debug", func(l zerolog.Logger) { l.Debug().Msg("entry") }, true},
		{"info dropped at warn", "warn", func(l zerolog.Logger) { l.Info().Msg("entry") }, false},
		{"warning alias", "warning", func(l zerolog.Logger) { l.Warn().Msg("entry") }, true},
		{"invalid falls back to info", "loud", func(l zerolog.Logger) { l.Info().Msg("entry") }, true},
		{"off disables", "off", func(l zerolog.Logger) { l.Error().Msg("entry") }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mirror.log")
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tc.level,
				Format: "json",
				Output: path,
			})
			tc.emit(logger)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			if tc.shouldLog {
				assert.Contains(t, string(content), "entry")
			} else {
				assert.Empty(t, string(content))
			}
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "console.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:   "info",
		Format:  "console",
		Output:  path,
		NoColor: true,
	})
	logger.Info().Str("mirror", "nightly").Msg("console test")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "console test")
	assert.Contains(t, string(content), "INF")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, logging.ParseLevel("trace"))
	assert.Equal(t, zerolog.ErrorLevel, logging.ParseLevel("ERROR"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel(""))
	assert.Equal(t, zerolog.Disabled, logging.ParseLevel("none"))
}
