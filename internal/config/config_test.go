package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
app:
  name: courtbook
  port: 8080
database:
  filename: data/test.db
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 30*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 0.5, cfg.Booking.MinDurationHours)
	assert.Equal(t, 4.0, cfg.Booking.MaxDurationHours)
	assert.Equal(t, 2*time.Hour, cfg.Booking.CancellationGrace())
	assert.Equal(t, 0.10, cfg.Booking.TaxRate)
	assert.Equal(t, "memory", cfg.Locking.Backend)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing name", func(c *Config) { c.App.Name = "" }},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }},
		{"inverted durations", func(c *Config) { c.Booking.MaxDurationHours = 0.25 }},
		{"tax rate of one", func(c *Config) { c.Booking.TaxRate = 1 }},
		{"closing before opening", func(c *Config) { c.Booking.ClosesAt = "07:00" }},
		{"bad clock", func(c *Config) { c.Booking.OpensAt = "8am" }},
		{"redis without address", func(c *Config) { c.Locking.Backend = "redis" }},
		{"unknown lock backend", func(c *Config) { c.Locking.Backend = "etcd" }},
		{"sender without region", func(c *Config) { c.Email.Sender = "desk@example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(minimal))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMergesEnvironmentSecrets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal+"events:\n  amqp_url: amqp://file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_PASSWORD=from-dotenv\n"), 0o600))

	t.Setenv("AMQP_URL", "amqp://env")
	t.Setenv("REDIS_PASSWORD", "")
	require.NoError(t, os.Unsetenv("REDIS_PASSWORD"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "amqp://env", cfg.Events.AMQPURL)
	assert.Equal(t, "from-dotenv", cfg.Locking.RedisPass)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
