package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigCacheSizeFromEnv(t *testing.T) {
	cases := map[string]int{
		"":     defaultCacheSize,
		"16":   16,
		"0":    0,
		"-3":   defaultCacheSize,
		"lots": defaultCacheSize,
		" 8 ":  8,
	}

	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			t.Setenv(CacheSizeEnv, raw)
			require.Equal(t, want, DefaultConfig().CacheSize)
		})
	}
}

func TestDefaultConfigValidationFollowsBuild(t *testing.T) {
	require.Equal(t, validationEnabled, DefaultConfig().Validate)
}
