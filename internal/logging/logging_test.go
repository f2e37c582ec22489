package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ProductionWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flashdeck.log")

	log, err := New("production", "info", path)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("session completed", zap.Int("correct", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "session completed", entry["msg"])
	assert.Equal(t, float64(3), entry["correct"])
}

func TestNew_DevelopmentLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.log")

	log, err := New("development", "warn", path)
	require.NoError(t, err)
	log.Info("quiet")
	log.Warn("dropping undecodable card")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "dropping undecodable card")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("production", "loud", Stderr)
	assert.Error(t, err)
}
