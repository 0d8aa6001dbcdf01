package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ASCBird0277/ca-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
data_dir: /srv/staffmap
files:
  employees: people.xlsx
flags:
  treat_missing_positions_as_vacant: true
geocode:
  enabled: true
  email: ops@example.com
http:
  addr: ":9090"
log:
  level: debug
mappings:
  employees:
    EmployeeID: ["Employee ID", "Associate ID"]
  properties:
    Property: ["Property Name"]
  positions:
    JobTitle: ["Job Title"]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/staffmap", cfg.DataDir)
	assert.Equal(t, "people.xlsx", cfg.Files.Employees)
	assert.True(t, cfg.Flags.TreatMissingPositionsAsVacant)
	assert.True(t, cfg.Geocode.Enabled)
	assert.Equal(t, "ops@example.com", cfg.Geocode.Email)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"Employee ID", "Associate ID"}, cfg.Mappings["employees"]["EmployeeID"])

	// Unset settings fall back to defaults.
	assert.Equal(t, "Properties_geocoded.xlsx", cfg.Files.Properties)
	assert.Equal(t, "Positions.xlsx", cfg.Files.Positions)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocode.BaseURL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "mappings: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Geocode.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "mappings: [broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/override")
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load(writeConfig(t, "data_dir: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override", cfg.DataDir)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}
