package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/clubs")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.False(t, cfg.IsProduction)
		assert.Equal(t, ":5000", cfg.HTTPAddr)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
		assert.Equal(t, 30*time.Second, cfg.DBIdleTimeout)
		assert.True(t, cfg.AutoMigrate)
		assert.True(t, cfg.TrustIdentityHeaders)
		assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
		assert.Empty(t, cfg.KafkaBrokers)
		assert.Equal(t, "reservations", cfg.KafkaReservationTopic)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/clubs")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "prod")
		t.Setenv("PROD_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		t.Setenv("DB_CONNECT_TIMEOUT", "2s")
		t.Setenv("TRUST_IDENTITY_HEADERS", "false")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ProdOrigins)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 2*time.Second, cfg.DBConnectTimeout)
		assert.False(t, cfg.TrustIdentityHeaders)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("DATABASE_URL Fallback", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("DATABASE_URL", "postgres://fallback")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres://fallback", cfg.DBDSN)
	})

	t.Run("Missing Required", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		assert.ErrorContains(t, err, "DB_DSN is required")
	})

	t.Run("Invalid Number", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/clubs")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("BCRYPT_COST", "high")

		_, err := Load()
		assert.ErrorContains(t, err, "BCRYPT_COST")
	})
}
