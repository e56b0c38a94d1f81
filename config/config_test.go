package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modeva.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults applied",
			yaml: "env: development\n",
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0:8081", cfg.Server.Addr())
				assert.Equal(t, "redis", cfg.RateLimit.Backend)
				assert.Equal(t, 100, cfg.RateLimit.Limit)
				assert.Equal(t, time.Minute, cfg.RateLimit.Window)
				assert.Equal(t, 5*time.Minute, cfg.Cache.CategoryTTL)
				assert.Equal(t, 512, cfg.Cache.ProductEntries)
				assert.Equal(t, 30*24*time.Hour, cfg.History.TTL)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "postgres://postgres:@localhost:5432/modeva_storefront?sslmode=disable", cfg.Database.DSN())
				assert.False(t, cfg.IsProduction())
			},
		},
		{
			name: "yaml overrides",
			yaml: `
env: production
server:
  port: 9000
database:
  url: postgres://u:p@db:5432/shop
rate_limit:
  backend: memory
  limit: 5
  window: 10s
logging:
  format: console
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.Database.DSN())
				assert.Equal(t, "memory", cfg.RateLimit.Backend)
				assert.Equal(t, 5, cfg.RateLimit.Limit)
				assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
				assert.Equal(t, "console", cfg.Logging.Format)
			},
		},
		{
			name: "env overrides yaml",
			yaml: "server:\n  port: 9000\n",
			envVars: map[string]string{
				"MODEVA_SERVER_PORT":   "9100",
				"MODEVA_REDIS_URL":     "redis://cache:6379/1",
				"MODEVA_LOGGING_LEVEL": "debug",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 9100, cfg.Server.Port)
				assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:    "unknown rate limit backend",
			yaml:    "rate_limit:\n  backend: memcached\n",
			wantErr: "unknown rate limit backend",
		},
		{
			name:    "bad port",
			yaml:    "server:\n  port: 70000\n",
			wantErr: "invalid server port",
		},
		{
			name:    "unknown log format",
			yaml:    "logging:\n  format: xml\n",
			wantErr: "unknown log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load(writeConfig(t, tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestTimeoutContexts(t *testing.T) {
	t.Parallel()

	ctx, cancel := WithCustomTimeout(time.Minute)
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	cancel()
	assert.Error(t, ctx.Err())

	ctx, cancel = WithTimeout()
	defer cancel()
	deadline, ok = ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, 5*time.Second)
}
