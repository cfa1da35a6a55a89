package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load(logger.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Http.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Bakery.BaseURL)
	assert.Equal(t, 2, cfg.Bakery.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Bakery.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.StaleTime)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 25*time.Second, cfg.Checkout.SubmitTimeout, "two attempts plus backoff allowance")
	assert.True(t, cfg.Redis.Enabled)
	assert.Nil(t, cfg.Kafka, "kafka is disabled without brokers")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BAKERY_API_URL", "http://bakery:3000/")
	t.Setenv("BAKERY_API_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("WRITE_TIMEOUT", "7s")
	t.Setenv("CHECKOUT_SUBMIT_TIMEOUT", "40s")

	cfg, err := Load(logger.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "http://bakery:3000", cfg.Bakery.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Bakery.Timeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 40*time.Second, cfg.Checkout.SubmitTimeout)
	assert.Equal(t, 7*time.Second, cfg.Redis.Timeout)
	require.NotNil(t, cfg.Kafka)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "storefront.orders", cfg.Kafka.Topic)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "duration", key: "CATALOG_STALE_TIME", value: "soon"},
		{name: "bool", key: "REDIS_ENABLED", value: "maybe"},
		{name: "url", key: "BAKERY_API_URL", value: "bakery"},
		{name: "submit timeout", key: "CHECKOUT_SUBMIT_TIMEOUT", value: "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load(logger.NewNopLogger())
			assert.Error(t, err)
		})
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "x")

	v, err := parseIntEnv("SOME_INT", 4)
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	assert.Equal(t, 4, v)
}
