package config

import (
	"fmt"
	"time"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"dota-tracker/internal/constants"
)

type Config struct {
	ServerHost string `validate:"required"`
	ServerPort int    `validate:"required|min:1|max:65535"`
	LogLevel   string `validate:"required|in:trace,debug,info,warn,error"`

	APIBaseURL        string `validate:"required|fullUrl"`
	APITimeoutSeconds int    `validate:"min:1"`
	MaxRetries        int    `validate:"min:1|max:10"`
	RetryDelayMS      int    `validate:"min:0"`
	APIRateLimit      int    `validate:"min:1"`

	BotToken    string
	AdminChatID int64

	SessionTTLMinutes int `validate:"min:1"`
	PageSize          int `validate:"min:1|max:50"`

	CacheSizeMB    int `validate:"min:0"`
	MetricsEnabled bool
	MetricsPort    int `validate:"min:1|max:65535"`
	DemoSeed       uint64
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MetricsAddr is where the bot process serves /metrics.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.MetricsPort)
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ServerHost:        v.GetString("SERVER_HOST"),
		ServerPort:        v.GetInt("SERVER_PORT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		APIBaseURL:        v.GetString("API_BASE_URL"),
		APITimeoutSeconds: v.GetInt("API_TIMEOUT"),
		MaxRetries:        v.GetInt("MAX_RETRIES"),
		RetryDelayMS:      v.GetInt("RETRY_DELAY_MS"),
		APIRateLimit:      v.GetInt("API_RATE_LIMIT"),
		BotToken:          v.GetString("BOT_TOKEN"),
		AdminChatID:       v.GetInt64("ADMIN_CHAT_ID"),
		SessionTTLMinutes: v.GetInt("SESSION_TTL_MINUTES"),
		PageSize:          v.GetInt("PAGE_SIZE"),
		CacheSizeMB:       v.GetInt("CACHE_SIZE_MB"),
		MetricsEnabled:    v.GetBool("METRICS_ENABLED"),
		MetricsPort:       v.GetInt("BOT_METRICS_PORT"),
		DemoSeed:          v.GetUint64("DEMO_SEED"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("log_level", cfg.LogLevel).
		Str("api_base_url", cfg.APIBaseURL).
		Int("max_retries", cfg.MaxRetries).
		Dur("session_ttl", cfg.SessionTTL()).
		Int("page_size", cfg.PageSize).
		Int("cache_size_mb", cfg.CacheSizeMB).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("configuration loaded")

	return cfg, nil
}

func Validate(cfg *Config) error {
	v := validate.Struct(cfg)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("API_TIMEOUT", int(constants.ExternalAPITimeout/time.Second))
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("RETRY_DELAY_MS", int(constants.DefaultRetryDelay/time.Millisecond))
	v.SetDefault("API_RATE_LIMIT", 20)
	v.SetDefault("ADMIN_CHAT_ID", 0)
	v.SetDefault("SESSION_TTL_MINUTES", int(constants.SessionTTL/time.Minute))
	v.SetDefault("PAGE_SIZE", constants.DefaultPageSize)
	v.SetDefault("CACHE_SIZE_MB", 8)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("BOT_METRICS_PORT", 9100)
	v.SetDefault("DEMO_SEED", 0)
}

var Module = fx.Provide(Load)
