package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "MONGO_URI", "MONGO_DATABASE", "REDIS_URI", "CACHE_TTL", "STORE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "4013", cfg.Port)
	assert.Equal(t, ":4013", cfg.Addr())
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "examorch", cfg.MongoDatabase)
	assert.Empty(t, cfg.RedisURI)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", " Mongo ")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("STORE_TIMEOUT", "250ms")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, "cache:6379", cfg.RedisURI)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
}

func TestParse_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")

	_, err := Parse()
	assert.ErrorContains(t, err, `unknown STORE_BACKEND "postgres"`)
}

func TestParse_BadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	_, err := Parse()
	assert.ErrorContains(t, err, "parse env")
}
