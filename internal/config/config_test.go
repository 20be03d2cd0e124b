package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, 8*time.Second, cfg.Backend.ProbeTimeout)
	assert.Equal(t, time.Second, cfg.Poll.Interval)
	assert.Equal(t, 4*time.Second, cfg.Poll.ResetDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VIDGRAB_BACKEND_URL", "https://api.example.com")
	t.Setenv("VIDGRAB_LOG_LEVEL", "debug")
	t.Setenv("VIDGRAB_POLL_INTERVAL", "250ms")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Backend.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidgrab.yaml")
	content := "backend:\n  url: http://10.0.0.2:9000\npoll:\n  reset_delay: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9000", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Poll.ResetDelay)
	assert.Equal(t, DefaultPollInterval, cfg.Poll.Interval, "unset keys keep defaults")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultBackendURL, cfg.Backend.URL)
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid backend URL",
			envVars: map[string]string{"VIDGRAB_BACKEND_URL": "not a url"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"VIDGRAB_LOG_LEVEL": "verbose"},
		},
		{
			name:    "Zero poll interval",
			envVars: map[string]string{"VIDGRAB_POLL_INTERVAL": "0s"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load("")

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}
