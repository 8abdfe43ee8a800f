package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{
			"address": "www.example:9000",
			"database_dsn": "postgres://u:p@db/tasks",
			"secret_key": "my_secret_key",
			"access_token_validity_duration": "90m",
			"bcrypt_cost": 11,
			"cors_origins": ["http://ui"],
			"log_level": "error"
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		require.NoError(t, parseFile(cfg))

		assert.Equal(t, "www.example:9000", cfg.Address)
		assert.Equal(t, "postgres://u:p@db/tasks", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, []string{"http://ui"}, cfg.CORSOrigins)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("loads from toml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.toml", `
address = ":8081"
secret_key = "toml-secret"
access_token_validity_duration = 30
cors_origins = ["http://a", "http://b"]
`)
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{DatabaseDSN: "keep.db"}
		require.NoError(t, parseFile(cfg))

		assert.Equal(t, ":8081", cfg.Address)
		assert.Equal(t, "toml-secret", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORSOrigins)
		assert.Equal(t, "keep.db", cfg.DatabaseDSN)
	})

	t.Run("json minutes as number", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{"access_token_validity_duration": 5}`)
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		require.NoError(t, parseFile(cfg))
		assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	})

	t.Run("no config flag leaves values alone", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{Address: "defaults:1234", SecretKey: "key"}
		require.NoError(t, parseFile(cfg))

		assert.Equal(t, "defaults:1234", cfg.Address)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", path}

		require.Error(t, parseFile(&Config{}))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{"access_token_validity_duration": "later"}`)
		os.Args = []string{"testbin", "-c", path}

		require.Error(t, parseFile(&Config{}))
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}

		require.Error(t, parseFile(&Config{}))
	})
}
