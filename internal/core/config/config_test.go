package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFromFile(t *testing.T) {
	p := writeYAML(t, `
app:
  http:
    port: 9090
jwt:
  secret: s3cret
  accesstokenttlmin: 15
db:
  driver: postgres
  dsn: postgres://u:p@localhost/db
catalog:
  baseurl: https://fakestoreapi.com/products
redis:
  addr: redis:6379
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "s3cret", c.JWT.Secret)
	assert.Equal(t, 15, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, 24*60, c.JWT.RefreshTokenTTLMin)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "https://fakestoreapi.com/products", c.Catalog.BaseURL)
	assert.Equal(t, 3600, c.Catalog.CacheTTLSec)
	assert.Equal(t, "redis:6379", c.Redis.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_APP_HTTP_PORT", "7000")
	t.Setenv("URL_EXTERNAL_API", "http://catalog.local/products")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, 7000, c.App.HTTP.Port)
	assert.Equal(t, "http://catalog.local/products", c.Catalog.BaseURL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "x")
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, 8000, c.App.HTTP.Port)
	assert.Equal(t, 5, c.JWT.AccessTokenTTLMin)
}

func TestLoadRequiresSecret(t *testing.T) {
	p := writeYAML(t, "app:\n  name: x\n")
	_, err := Load(p)
	assert.Error(t, err)
}
