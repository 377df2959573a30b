package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbrief/internal/modules/tripbrief"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRIP_HTTP_ADDR", "")
	t.Setenv("TRIP_MAX_GENERATED_IMAGES", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, tripbrief.MaxGeneratedImagesPerPipeline, cfg.Image.MaxGenerated)
	assert.Equal(t, 120*time.Second, cfg.Image.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Image.CacheTTL)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Gemini.Model)
	assert.Equal(t, 90*time.Second, cfg.AI.TextTimeout)
	assert.Empty(t, cfg.AI.OpenAI.APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRIP_HTTP_ADDR", ":9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TRIP_MAX_GENERATED_IMAGES", "1")
	t.Setenv("TRIP_IMAGE_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "sk-test", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, 1, cfg.Image.MaxGenerated)
	assert.Equal(t, 5*time.Second, cfg.Image.Timeout)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	for _, key := range []string{"TRIP_TEXT_TIMEOUT", "TRIP_IMAGE_TIMEOUT", "TRIP_IMAGE_CACHE_TTL"} {
		for _, val := range []string{"abc", "90", "0s", "-5s"} {
			t.Run(key+"="+val, func(t *testing.T) {
				t.Setenv(key, val)

				_, err := Load()
				require.Error(t, err)
				assert.Contains(t, err.Error(), key)
			})
		}
	}
}
