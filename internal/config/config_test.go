package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"ENERGY_SERVER_PORT", "ENERGY_SERVER_READ_TIMEOUT",
	"ENERGY_SECURITY_ALLOWED_ORIGINS", "ENERGY_SECURITY_ENABLE_CORS",
	"ENERGY_LOGGING_LEVEL", "ENERGY_LOGGING_OUTPUT",
	"ENERGY_UPLOAD_MAX_BYTES", "ENERGY_UPLOAD_FORM_FIELD",
	"ENERGY_TELEMETRY_TRACE_EXPORTER", "ENERGY_TELEMETRY_SAMPLE_RATIO",
	ConfigFileEnv,
}

// clearEnv unsets every variable the tests touch and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		if val, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, val) })
		} else {
			t.Cleanup(func() { os.Unsetenv(name) })
		}
		os.Unsetenv(name)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5000, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://localhost:5000"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
				assert.Equal(t, "dataset", cfg.Upload.FormField)
				assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
				assert.Equal(t, ":5000", cfg.Address())
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"ENERGY_SERVER_PORT":              "9090",
				"ENERGY_SERVER_READ_TIMEOUT":      "30s",
				"ENERGY_SECURITY_ALLOWED_ORIGINS": "http://a.example,https://b.example",
				"ENERGY_LOGGING_LEVEL":            "DEBUG",
				"ENERGY_UPLOAD_MAX_BYTES":         "2048",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, int64(2048), cfg.Upload.MaxBytes)
			},
		},
		{
			name: "file then environment",
			env: map[string]string{
				"ENERGY_SERVER_PORT": "7070",
			},
			fileContent: `
server:
  port: 6060
  read_timeout: 20s
logging:
  level: error
upload:
  form_field: file
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, "file", cfg.Upload.FormField)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "untouched keys keep defaults")
			},
		},
		{
			name:        "invalid yaml",
			fileContent: "server: [unclosed",
			wantErr:     true,
		},
		{
			name:    "port out of range",
			env:     map[string]string{"ENERGY_SERVER_PORT": "99999"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			env:     map[string]string{"ENERGY_SERVER_READ_TIMEOUT": "-5s"},
			wantErr: true,
		},
		{
			name:    "empty allowed origins",
			env:     map[string]string{"ENERGY_SECURITY_ALLOWED_ORIGINS": ""},
			wantErr: true,
		},
		{
			name:    "unknown log output",
			env:     map[string]string{"ENERGY_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "unknown trace exporter",
			env:     map[string]string{"ENERGY_TELEMETRY_TRACE_EXPORTER": "otlp"},
			wantErr: true,
		},
		{
			name:    "sample ratio above one",
			env:     map[string]string{"ENERGY_TELEMETRY_SAMPLE_RATIO": "1.5"},
			wantErr: true,
		},
		{
			name:    "malformed number",
			env:     map[string]string{"ENERGY_SERVER_PORT": "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			if tt.fileContent != "" {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.fileContent), 0644))
				os.Setenv(ConfigFileEnv, path)
			}
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestValidate_FilePathRequiredForFileOutput(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_path")

	cfg.Logging.Output = "console"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_PingMustBeShorterThanPong(t *testing.T) {
	cfg := Default()
	cfg.WebSocket.PingPeriod = 2 * time.Minute

	assert.Error(t, cfg.Validate())
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
