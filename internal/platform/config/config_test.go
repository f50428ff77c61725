package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jornada/internal/platform/config"
)

func TestNewAppliesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("JORNADA_TZ", "")
	dir := t.TempDir()

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jornada_biblica_user.json"), cfg.ProgressPath)
	assert.Equal(t, filepath.Join(dir, "logs", "jornada.log"), cfg.LogPath)
	assert.Equal(t, config.DefaultModel, cfg.Model)
	assert.Equal(t, 800*time.Millisecond, cfg.SyncIndicator)
	assert.False(t, cfg.GenerationEnabled())
	assert.NotNil(t, cfg.Location)
}

func TestNewReadsFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	doc := "model: file-model\napi_key: from-file\nsync_indicator: 250ms\nrequests_per_minute: 4\ntime_zone: America/Sao_Paulo\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(doc), 0o644))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "from-env")
	t.Setenv("JORNADA_MODEL", "")
	t.Setenv("JORNADA_TZ", "")

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-model", cfg.Model)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncIndicator)
	assert.Equal(t, 4, cfg.RequestsPerMinute)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location.String())
	assert.True(t, cfg.GenerationEnabled())
}

func TestNewRejectsEmptyDirAndBadZone(t *testing.T) {
	_, err := config.New("  ")
	require.Error(t, err)

	t.Setenv("JORNADA_TZ", "Nowhere/Invalid")
	_, err = config.New(t.TempDir())
	require.Error(t, err)
}
