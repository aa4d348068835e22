package plugin

import (
	"os"
	"strconv"
	"strings"
)

// CacheSizeEnv overrides the default pipeline cache size. Zero disables caching.
const CacheSizeEnv = "TABULAR_PLUGIN_CACHE_SIZE"

const defaultCacheSize = 64

// Config controls descriptor validation and pipeline caching.
type Config struct {
	// Validate enables developer-time checks of plugin contributions before
	// composition. It defaults to off in builds tagged "production".
	Validate  bool
	CacheSize int
}

// DefaultConfig returns build- and environment-aware defaults.
func DefaultConfig() *Config {
	return &Config{
		Validate:  validationEnabled,
		CacheSize: cacheSizeFromEnv(),
	}
}

func cacheSizeFromEnv() int {
	raw := strings.TrimSpace(os.Getenv(CacheSizeEnv))
	if raw == "" {
		return defaultCacheSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 0 {
		return defaultCacheSize
	}
	return size
}
