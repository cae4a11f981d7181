package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"fatal", zerolog.FatalLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestParseTimeFormat(t *testing.T) {
	assert.Equal(t, "3:04PM", parseTimeFormat("kitchen"))
	assert.Equal(t, "", parseTimeFormat("unix"))
	assert.Equal(t, "2006-01-02", parseTimeFormat("2006-01-02"))
	assert.Equal(t, "3:04PM", parseTimeFormat("whenever"))
}

func TestParseFields(t *testing.T) {
	fields := parseFields("service=routemap, env = dev,broken")
	assert.Equal(t, map[string]any{"service": "routemap", "env": "dev"}, fields)
	assert.Empty(t, parseFields(""))
}

func TestNewLoggerFromConfigWritesFile(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	path := filepath.Join(t.TempDir(), "routemap.log")
	logger := NewLoggerFromConfig(&Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]any{"service": "routemap"},
	})
	logger.Debug().Msg("hidden")
	logger.Info().Str("router", "users").Msg("extracted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "extracted", entry["message"])
	assert.Equal(t, "users", entry["router"])
	assert.Equal(t, "routemap", entry["service"])
	assert.NotContains(t, string(data), "hidden")
}

func TestNilConfigUsesDefaults(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	logger := NewLoggerFromConfig(nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := CaptureLoggingForTest(t)

	Info().Str("path", "users.getUser").Msg("endpoint")
	Err(errors.New("boom")).Msg("failed")

	assert.Equal(t, 2, tl.Count())
	tl.AssertContains(t, "users.getUser")
	tl.AssertContains(t, "boom")
	tl.AssertNotContains(t, "createUser")

	tl.Clear()
	assert.Empty(t, tl.Lines())
}

func TestContextHelpers(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithRouter(ctx, "accounts")
	ctx = WithOperation(ctx, "extract")
	ctx = WithPath(ctx, "accounts.billing.charge")
	ctx = WithFields(ctx, map[string]any{"endpoints": 3, "merged": true})

	FromContext(ctx).Info().Msg("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(tl.Lines()[0]), &entry))
	assert.Equal(t, "accounts", entry["router"])
	assert.Equal(t, "extract", entry["operation"])
	assert.Equal(t, "accounts.billing.charge", entry["path"])
	assert.Equal(t, float64(3), entry["endpoints"])
	assert.Equal(t, true, entry["merged"])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, Default(), FromContext(nil))
	assert.Same(t, Default(), FromContext(WithLogger(context.Background(), nil)))
}
