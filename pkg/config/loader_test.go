package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Port)
	assert.Equal(t, "backend.json", cfg.SchemaPath)
}

func TestLoad_Layers(t *testing.T) {
	path := writeConfig(t, `
port: 3000
delay: 250
schema: api.yaml
cors_domain: http://localhost
logging:
  level: debug
cache:
  backend: redis
  redis:
    addr: ${env.TEST_REDIS_HOST}:6379
    db: 2
`)
	t.Setenv("TEST_REDIS_HOST", "redis.internal")
	t.Setenv("FAKER_DELAY", "500")

	cfg, err := Load(context.Background(), Options{
		File: path,
		Flags: map[string]any{
			"port":           4000,
			"logging.format": "json",
		},
	})
	require.NoError(t, err)

	t.Run("Flags vencem tudo", func(t *testing.T) {
		assert.Equal(t, 4000, cfg.Port)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("Ambiente vence o arquivo", func(t *testing.T) {
		assert.Equal(t, 500, cfg.MaxDelayMs)
	})

	t.Run("Arquivo vence os defaults", func(t *testing.T) {
		assert.Equal(t, "api.yaml", cfg.SchemaPath)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "http://localhost", cfg.CORSDomain)
		assert.Equal(t, 2, cfg.Cache.Redis.DB)
	})

	t.Run("Defaults preservados em secoes parciais", func(t *testing.T) {
		assert.True(t, cfg.Logging.Enabled)
		assert.Equal(t, "backend-faker:", cfg.Cache.Redis.Prefix)
	})

	t.Run("Interpolacao aplicada", func(t *testing.T) {
		assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Arquivo inexistente", func(t *testing.T) {
		_, err := Load(context.Background(), Options{File: filepath.Join(t.TempDir(), "none.yaml")})
		assert.ErrorContains(t, err, "reading config file")
	})

	t.Run("YAML malformado", func(t *testing.T) {
		path := writeConfig(t, "port: [1,")
		_, err := Load(context.Background(), Options{File: path})
		assert.Error(t, err)
	})

	t.Run("Validacao falha", func(t *testing.T) {
		_, err := Load(context.Background(), Options{Flags: map[string]any{"port": 70000}})
		assert.ErrorContains(t, err, "Port")
	})
}
