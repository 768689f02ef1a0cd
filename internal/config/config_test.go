package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("flags only", func(t *testing.T) {
		conf, err := LoadConfig([]string{"-d", "postgres://flags", "-j", "secret"})
		require.NoError(t, err)
		assert.Equal(t, &Config{
			RunAddress:    defaultRunAddress,
			DatabaseDSN:   "postgres://flags",
			MigrationsDir: defaultMigrationsDir,
			JWTSecret:     "secret",
			JWTExpiry:     defaultJWTExpiry,
			UploadsDir:    defaultUploadsDir,
			FrontendURL:   defaultFrontendURL,
		}, conf)
	})

	t.Run("env overrides flags", func(t *testing.T) {
		t.Setenv("DATABASE_URI", "postgres://env")
		t.Setenv("RUN_ADDRESS", ":9000")
		t.Setenv("JWT_EXPIRY", "1h")

		conf, err := LoadConfig([]string{"-d", "postgres://flags", "-j", "secret", "-a", ":8000"})
		require.NoError(t, err)
		assert.Equal(t, "postgres://env", conf.DatabaseDSN)
		assert.Equal(t, ":9000", conf.RunAddress)
		assert.Equal(t, time.Hour, conf.JWTExpiry)
	})

	t.Run("missing dsn", func(t *testing.T) {
		_, err := LoadConfig([]string{"-j", "secret"})
		require.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := LoadConfig([]string{"-d", "postgres://flags"})
		require.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := LoadConfig([]string{"-z"})
		require.Error(t, err)
	})
}

func TestLoadClientConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		conf, err := LoadClientConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:5000/api/v1/", conf.APIURL)
		assert.Equal(t, filepath.Join(home, ".lms", "session.json"), conf.SessionFile)
		assert.Equal(t, 10*time.Second, conf.Timeout)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("LMS_API_URL", "http://api.example.com/api/v1/")
		t.Setenv("LMS_SESSION_FILE", "/tmp/s.json")
		t.Setenv("LMS_TIMEOUT", "3s")

		conf, err := LoadClientConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://api.example.com/api/v1/", conf.APIURL)
		assert.Equal(t, "/tmp/s.json", conf.SessionFile)
		assert.Equal(t, 3*time.Second, conf.Timeout)
	})
}
