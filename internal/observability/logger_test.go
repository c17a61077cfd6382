package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrisuehlinger/hostbridge/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultConfig().Logger
	cfg.Format = "json"
	cfg.Level = "debug"

	logger := New(cfg, zapcore.AddSync(&buf))
	logger.Named("bridge").Debug("host object created", zap.String("type", "HTMLDialogElement"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "hostbridge.bridge", entry["logger"])
	assert.Equal(t, "host object created", entry["msg"])
	assert.Equal(t, "HTMLDialogElement", entry["type"])
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultConfig().Logger
	cfg.Level = "warn"

	logger := New(cfg, zapcore.AddSync(&buf))
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "hostbridge.", "console encoder prints the logger name")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultConfig().Logger
	cfg.Level = "nonsense"

	logger := New(cfg, zapcore.AddSync(&buf))
	logger.Debug("debug line")
	logger.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNewWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostbridge.log")
	cfg := config.NewDefaultConfig().Logger
	cfg.LogFile = path
	cfg.Compress = false

	var console bytes.Buffer
	logger := New(cfg, zapcore.AddSync(&console))
	logger.Info("to both")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry), "file output is JSON")
	assert.Equal(t, "to both", entry["msg"])
	assert.Contains(t, console.String(), "to both")
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	cfg := config.NewDefaultConfig().Logger
	Initialize(cfg, zapcore.AddSync(&first))
	Initialize(cfg, zapcore.AddSync(&second))

	GetLogger().Info("global")
	Sync()

	assert.Contains(t, first.String(), "global")
	assert.Empty(t, second.String(), "only the first Initialize takes effect")
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Equal(t, "hostbridge.fallback", logger.Name(), "the fallback uses the default service name")
}
