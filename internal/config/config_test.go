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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "eur", cfg.Payments.Currency)
	assert.Equal(t, "4917655382575", cfg.Consultant.WhatsAppNumber)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 1200*time.Millisecond, cfg.Schedule.SaveNoticeDelay())
	assert.True(t, cfg.Payments.VerifyOnReturn)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
allowed_origins = ["https://booking.example.com"]
trusted_proxies = ["10.0.0.0/8"]

[storage]
driver = "postgres"

[database]
host = "db"
port = 5433
user = "app"
password = "pw"
dbname = "consultations"
sslmode = "require"

[payments]
return_url = "https://booking.example.com/checkout/return"
handoff_ttl_minutes = 45

[consultant]
whatsapp_number = "+49 1234"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"https://booking.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=consultations sslmode=require", cfg.Database.DSN())
	assert.Equal(t, 45*time.Minute, cfg.Payments.HandoffTTL())
	assert.Equal(t, "49 1234", cfg.Consultant.WhatsAppNumber)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envStripeSecretKey, "sk_test_env")
	t.Setenv(envAdminSecret, "admin-env")
	t.Setenv(envStorageDriver, StorageRedis)
	t.Setenv(envRedisAddr, "redis:6379")

	cfg, err := Load(writeConfig(t, `
[payments]
secret_key = "sk_test_file"

[admin]
secret = "admin-file"
`))
	require.NoError(t, err)

	assert.Equal(t, "sk_test_env", cfg.Payments.SecretKey)
	assert.Equal(t, "admin-env", cfg.Admin.Secret)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "port out of range", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
		{name: "relative return url", mutate: func(c *Config) { c.Payments.ReturnURL = "/checkout/return" }},
		{name: "empty consultant number", mutate: func(c *Config) { c.Consultant.WhatsAppNumber = " + " }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/40"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestApplyEnv_IgnoresEmptyValues(t *testing.T) {
	cfg := defaults()
	cfg.Admin.Secret = "kept"
	cfg.applyEnv(func(key string) (string, bool) {
		if key == envAdminSecret {
			return "", true
		}
		return "", false
	})
	assert.Equal(t, "kept", cfg.Admin.Secret)
}
