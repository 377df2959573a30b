// README: Config loader with env defaults for HTTP, provider credentials, models, image proxy and Redis.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tripbrief/internal/modules/tripbrief"
)

type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type ImageConfig struct {
	// PublicBaseURL is where the pipelines reach the local image proxy endpoints.
	PublicBaseURL string
	DalleModel    string
	ImagenModel   string
	Timeout       time.Duration
	MaxGenerated  int
	CacheTTL      time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	AI struct {
		Anthropic   ProviderConfig
		OpenAI      ProviderConfig
		Gemini      ProviderConfig
		Temperature float32
		TextTimeout time.Duration
	}
	Image ImageConfig
}

// Load reads configuration from the process environment, after merging an optional .env file.
// Missing API keys are not an error here; each pipeline reports them when it runs.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	cfg.HTTP.Addr = v.GetString("TRIP_HTTP_ADDR")
	cfg.Redis.Addr = v.GetString("TRIP_REDIS_ADDR")
	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Format = v.GetString("LOG_FORMAT")

	cfg.AI.Anthropic = ProviderConfig{
		APIKey:  v.GetString("ANTHROPIC_API_KEY"),
		Model:   v.GetString("TRIP_ANTHROPIC_MODEL"),
		BaseURL: v.GetString("TRIP_ANTHROPIC_BASE_URL"),
	}
	cfg.AI.OpenAI = ProviderConfig{
		APIKey:  v.GetString("OPENAI_API_KEY"),
		Model:   v.GetString("TRIP_OPENAI_MODEL"),
		BaseURL: v.GetString("TRIP_OPENAI_BASE_URL"),
	}
	cfg.AI.Gemini = ProviderConfig{
		APIKey: v.GetString("GEMINI_API_KEY"),
		Model:  v.GetString("TRIP_GEMINI_MODEL"),
	}
	cfg.AI.Temperature = float32(v.GetFloat64("TRIP_TEMPERATURE"))
	textTimeout, err := positiveDuration(v, "TRIP_TEXT_TIMEOUT")
	if err != nil {
		return Config{}, err
	}
	cfg.AI.TextTimeout = textTimeout

	imageTimeout, err := positiveDuration(v, "TRIP_IMAGE_TIMEOUT")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := positiveDuration(v, "TRIP_IMAGE_CACHE_TTL")
	if err != nil {
		return Config{}, err
	}

	cfg.Image = ImageConfig{
		PublicBaseURL: v.GetString("TRIP_PUBLIC_BASE_URL"),
		DalleModel:    v.GetString("TRIP_DALLE_MODEL"),
		ImagenModel:   v.GetString("TRIP_IMAGEN_MODEL"),
		Timeout:       imageTimeout,
		MaxGenerated:  v.GetInt("TRIP_MAX_GENERATED_IMAGES"),
		CacheTTL:      cacheTTL,
	}
	if cfg.Image.MaxGenerated < 0 {
		cfg.Image.MaxGenerated = tripbrief.MaxGeneratedImagesPerPipeline
	}
	return cfg, nil
}

// positiveDuration requires a unit-suffixed Go duration ("90s", "2m") greater than zero.
// A zero timeout would leave the HTTP clients unbounded.
func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s=%q: must be positive", key, raw)
	}
	return d, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TRIP_HTTP_ADDR", ":8080")
	v.SetDefault("TRIP_REDIS_ADDR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TRIP_ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022")
	v.SetDefault("TRIP_ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	v.SetDefault("TRIP_OPENAI_MODEL", "gpt-4o")
	v.SetDefault("TRIP_OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("TRIP_GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("TRIP_TEMPERATURE", 0.7)
	v.SetDefault("TRIP_TEXT_TIMEOUT", "90s")

	v.SetDefault("TRIP_PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("TRIP_DALLE_MODEL", "dall-e-3")
	v.SetDefault("TRIP_IMAGEN_MODEL", "imagen-3.0-generate-002")
	v.SetDefault("TRIP_IMAGE_TIMEOUT", "120s")
	v.SetDefault("TRIP_MAX_GENERATED_IMAGES", tripbrief.MaxGeneratedImagesPerPipeline)
	v.SetDefault("TRIP_IMAGE_CACHE_TTL", "24h")
}

// loadDotEnv merges the first .env found walking up from the working directory.
// Variables already present in the environment win.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
