package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyakaznacheev/cleanenv"
)

func TestReadConfig(t *testing.T) {
	content := `
env: test
storage:
  driver: file
  data_dir: /tmp/console-data
http_server:
  addresshttp: localhost:9090
  timeouthttp: 4s
  idle_timeout: 30s
jwttoken:
  jwt_secret_key: test-secret
  token_ttl: 1h
reports:
  dir: /tmp/console-reports
  min_delay: 0s
  max_delay: 0s
monitor:
  interval: 10s
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var cfg Config
	require.NoError(t, cleanenv.ReadConfig(path, &cfg))

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/console-data", cfg.Storage.DataDir)
	assert.Equal(t, "localhost:9090", cfg.AddressHTTP)
	assert.Equal(t, 4*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, "test-secret", cfg.JWTSecretKey)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Monitor.Interval)
	// дефолт, не заданный в файле
	assert.Equal(t, "admin@investwisepro.com", cfg.AdminEmail)
}
