package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("EXPAND_SET", "from-env")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "host: ${EXPAND_SET}", "host: from-env"},
		{"set variable wins over default", "host: ${EXPAND_SET:fallback}", "host: from-env"},
		{"unset variable uses default", "host: ${EXPAND_UNSET:localhost}", "host: localhost"},
		{"unset variable with empty default", "password: ${EXPAND_UNSET:}", "password: "},
		{"unset variable without default stays put", "key: ${EXPAND_UNSET}", "key: ${EXPAND_UNSET}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestLoadMergesEnvironmentFileOverBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))

	base := "app:\n  name: startupops-api\nserver:\n  http:\n    port: 8080\n"
	override := "server:\n  http:\n    port: 9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.staging.yaml"), []byte(override), 0o644))

	t.Chdir(dir)
	t.Setenv("APP_ENV", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "startupops-api", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Server.HTTP.Port)

	// 文件里没写的 key 落到默认值
	assert.Equal(t, "0.0.0.0", cfg.Server.HTTP.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.HTTP.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.Identity.TokenCache.TTL)
	assert.Equal(t, 1000, cfg.Identity.TokenCache.MaxEntries)
	assert.Equal(t, "gemini", cfg.LLM.DefaultProvider)
}

func TestLoadExpandsPlaceholdersInFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))

	base := "database:\n  postgres:\n    host: ${PG_HOST_UNDER_TEST:db.internal}\n    password: ${PG_PASS_UNDER_TEST}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(base), 0o644))

	t.Chdir(dir)
	t.Setenv("PG_PASS_UNDER_TEST", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestLoadFailsWithoutBaseConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "configs/config.yaml")
}
