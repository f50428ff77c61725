package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"jornada/internal/platform/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, zapcore.DebugLevel, logging.ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, logging.ParseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("bogus"))
}

func TestNewWritesFileAndWarnsToConsole(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "jornada.log")
	console := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Path: path, Level: "info", Console: console})
	require.NoError(t, err)

	logger.Info("loaded")
	logger.Warn("fallback used")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"loaded"`)
	assert.Contains(t, string(raw), `"msg":"fallback used"`)
	assert.True(t, strings.Contains(console.String(), "fallback used"))
	assert.False(t, strings.Contains(console.String(), "loaded"))
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	t.Parallel()
	logger, err := logging.New(logging.Options{})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NotNil(t, logging.OrNop(nil))
}
