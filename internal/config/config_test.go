package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-kin-bridge/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEnvVars(t *testing.T) {
	c := config.New()

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SIGNSERVICE_PORT", "")
		t.Setenv("ENV", "")
		require.Equal(t, ":8080", c.GetPort())
		require.Equal(t, "DEV", c.GetEnv())
		require.Equal(t, 24*time.Hour, c.GetTokenExpiry())
		require.Equal(t, 10*time.Second, c.GetSignTimeout())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SIGNSERVICE_PORT", "9090")
		t.Setenv("TOKEN_EXPIRY", "1h")
		t.Setenv("SIGN_TIMEOUT", "not-a-duration")
		require.Equal(t, ":9090", c.GetPort())
		require.Equal(t, time.Hour, c.GetTokenExpiry())
		require.Equal(t, 10*time.Second, c.GetSignTimeout())
	})
}

func TestCors(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	origins := config.New().GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://b.example"))
	require.False(t, origins.IsAllowedOrigin("*"))

	t.Setenv("ALLOWED_ORIGINS", "")
	require.True(t, config.New().GetAllowedOrigins().IsAllowedOrigin("*"))
}

func TestSigningKey(t *testing.T) {
	c := config.New()

	t.Run("inline", func(t *testing.T) {
		t.Setenv("SIGNING_KEY_FILE", "")
		t.Setenv("SIGNING_KEY", "inline-key")
		key, err := c.GetSigningKey()
		require.NoError(t, err)
		require.Equal(t, "inline-key", key)
	})

	t.Run("file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "key.pem")
		require.NoError(t, os.WriteFile(path, []byte("file-key\n"), 0o600))
		t.Setenv("SIGNING_KEY_FILE", path)
		t.Setenv("SIGNING_KEY", "inline-key")
		key, err := c.GetSigningKey()
		require.NoError(t, err)
		require.Equal(t, "file-key", key)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("SIGNING_KEY_FILE", filepath.Join(t.TempDir(), "absent.pem"))
		_, err := c.GetSigningKey()
		require.Error(t, err)
	})
}
