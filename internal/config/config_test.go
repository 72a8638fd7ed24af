package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  env: development
  port: 8080
  read_timeout: 10s
  jwt:
    privateKeyPath: keys/jwt_private.pem
    publicKeyPath: keys/jwt_public.pem
    accessTTLMinutes: 15
    refreshTTLDays: 7
mongo:
  uri: mongodb://localhost:27017
  database: accounts
redis:
  addr: localhost:6379
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 10*time.Second, cfg.App.ReadTimeout)
	assert.Equal(t, 15, cfg.App.JWT.AccessTTLMinutes)
	assert.Equal(t, "users", cfg.User.Collection)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("MONGO_DB", "other")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.App.Port)
	assert.Equal(t, "other", cfg.Mongo.Database)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_RequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, `
app:
  jwt:
    privateKeyPath: keys/jwt_private.pem
    publicKeyPath: keys/jwt_public.pem
mongo:
  uri: ""
redis:
  addr: localhost:6379
`))
	assert.Error(t, err)
}
