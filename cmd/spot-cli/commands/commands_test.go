package commands

import (
	"os"
	"path/filepath"
	"testing"

	"spot-scraper/internal/spot"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{nim: "2103110001", requests_per_second: 1}`), 0o600))

	*configPath = path
	*dbPath = filepath.Join(dir, "custom.db")
	t.Setenv("SPOT_PASSWORD", "rahasia")
	t.Setenv("SPOT_NIM", "")

	cfg := loadConfig()
	require.Equal(t, "2103110001", cfg.Nim)
	require.Equal(t, "rahasia", cfg.Password)
	require.Equal(t, 1.0, cfg.RequestsPerSecond)
	require.Equal(t, *dbPath, cfg.Database)
	require.Equal(t, defaultConfig.BaseUrl, cfg.BaseUrl)
	require.Equal(t, defaultConfig.Schedule, cfg.Schedule)
}

func TestFormatting(t *testing.T) {
	require.Equal(t, "-", formatScore(spot.TaskRecord{}))
	require.Equal(t, "-", formatScore(spot.TaskRecord{Answer: &spot.AnswerRecord{}}))
	require.Equal(t, "85.5", formatScore(spot.TaskRecord{Answer: &spot.AnswerRecord{IsGraded: true, Score: 85.5}}))

	require.Equal(t, "menyusul", formatDue(spot.ParseTimestamp("menyusul")))
	require.Equal(t, "Fri 08 Mar 2024 23:59", formatDue(spot.ParseTimestamp("08-03-2024 23:59")))
}
