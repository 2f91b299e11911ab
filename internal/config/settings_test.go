package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	assert.Equal(t, 8760.0, s.MissionTimeHours)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.ProbabilityAnalysis)
}

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeSettings(t, "probability_analysis: true\nmission_time_hours: 100\nlog_level: debug\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.ProbabilityAnalysis)
	assert.Equal(t, 100.0, s.MissionTimeHours)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadRejectsNegativeMissionTime(t *testing.T) {
	path := writeSettings(t, "mission_time_hours: -1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeSettings(t, "log_level: verbose\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
