package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"toolshed/internal/config"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("{}"))
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	require.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	require.Equal(t, "data/toolshed.db", cfg.Storage.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "UTC", cfg.Dashboard.Timezone)
	require.True(t, cfg.Dashboard.SeedSampleData)
	require.False(t, cfg.Reports.Export.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: 127.0.0.1
  port: 9090
storage:
  driver: memory
log:
  level: debug
  format: json
dashboard:
  timezone: Europe/Moscow
  seed_sample_data: false
reports:
  export:
    enabled: true
    schedule: "0 30 22 * * *"
    sink: fs
    dir: /tmp/reports
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.GetServerAddress())
	require.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Dashboard.SeedSampleData)
	require.Equal(t, "Europe/Moscow", cfg.Location().String())
	require.Equal(t, "/tmp/reports", cfg.Reports.Export.Dir)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "localhost:7000")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("POSTGRES_CONN", "postgres://u:p@localhost/toolshed?sslmode=disable")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Parse([]byte("storage:\n  driver: sqlite\n"))
	require.NoError(t, err)
	require.Equal(t, "localhost:7000", cfg.GetServerAddress())
	require.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	require.Equal(t, "postgres://u:p@localhost/toolshed?sslmode=disable", cfg.Storage.DSN)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown driver", "storage:\n  driver: redis\n"},
		{"postgres without dsn", "storage:\n  driver: postgres\n"},
		{"bad timezone", "dashboard:\n  timezone: Mars/Olympus\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad schedule", "reports:\n  export:\n    enabled: true\n    schedule: every day\n"},
		{"s3 without bucket", "reports:\n  export:\n    enabled: true\n    sink: s3\n"},
		{"unknown sink", "reports:\n  export:\n    enabled: true\n    sink: ftp\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}
