package app

import (
	"testing"
	"time"

	"github.com/sahilchouksey/studyshare-api/config"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreMemoryDriver(t *testing.T) {
	store, err := OpenStore(&config.EnvironmentVariable{STORAGE_DRIVER: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &database.MemoryStore{}, store)
}

func TestOpenCacheFallsBackWithoutRedis(t *testing.T) {
	c := OpenCache(&config.EnvironmentVariable{CACHE_TTL: time.Minute})
	assert.IsType(t, &cache.MemoryCache{}, c)

	// Unreachable Redis also falls back
	c = OpenCache(&config.EnvironmentVariable{REDIS_URL: "redis://127.0.0.1:1/0", CACHE_TTL: time.Minute})
	assert.IsType(t, &cache.MemoryCache{}, c)
}
