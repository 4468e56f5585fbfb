// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonathan/cardcopy/internal/llm"
)

// Config holds all service configuration.
// Values come from defaults, an optional config file, .env and the environment,
// in increasing order of precedence.
type Config struct {
	Server    Server    `mapstructure:"server"`
	LLM       LLM       `mapstructure:"llm"`
	Auth      Auth      `mapstructure:"auth"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	CORS      CORS      `mapstructure:"cors"`
	Logging   Logging   `mapstructure:"logging"`
}

// Server holds HTTP listener settings
type Server struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
}

// LLM holds model provider settings
type LLM struct {
	Provider        string        `mapstructure:"provider" validate:"oneof=gemini openai"`
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url" validate:"omitempty,url"`
	Temperature     float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP            float32       `mapstructure:"top_p" validate:"gt=0,lte=1"`
	TopK            int32         `mapstructure:"top_k" validate:"gte=0"`
	MaxOutputTokens int32         `mapstructure:"max_output_tokens" validate:"gt=0"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxConcurrent   int64         `mapstructure:"max_concurrent" validate:"min=1"`
}

// Auth holds bearer token settings. An empty secret disables authentication.
type Auth struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours" validate:"min=1"`
}

// RateLimit holds limits for the generate endpoint
type RateLimit struct {
	Enabled       bool          `mapstructure:"enabled"`
	GenerateLimit int           `mapstructure:"generate_limit" validate:"min=1"`
	Window        time.Duration `mapstructure:"window" validate:"gt=0"`
	Burst         int           `mapstructure:"burst" validate:"min=0"`
}

// CORS holds cross-origin settings
type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Logging holds log output settings
type Logging struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// envAliases lists extra environment variables accepted for a key, first found wins.
var envAliases = map[string][]string{
	"server.port":               {"SERVER_PORT", "PORT"},
	"llm.api_key":               {"LLM_API_KEY"},
	"auth.jwt_secret":           {"AUTH_JWT_SECRET", "JWT_SECRET"},
	"auth.jwt_expiration_hours": {"AUTH_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS"},
	"logging.level":             {"LOGGING_LEVEL", "LOG_LEVEL"},
}

// providerKeyEnv lists the provider-specific key variables used when llm.api_key is unset.
var providerKeyEnv = map[string][]string{
	string(llm.ProviderGemini): {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	string(llm.ProviderOpenAI): {"OPENAI_API_KEY"},
}

// Load reads configuration from configFile (optional), .env and the environment.
// Returns an error if the file cannot be read or the result is invalid.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	params := llm.DefaultParams()

	v.SetDefault("server.port", 5001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("llm.provider", string(llm.ProviderGemini))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", params.Temperature)
	v.SetDefault("llm.top_p", params.TopP)
	v.SetDefault("llm.top_k", params.TopK)
	v.SetDefault("llm.max_output_tokens", params.MaxOutputTokens)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.max_concurrent", 8)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiration_hours", 24)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.generate_limit", 30)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// normalize fills values that depend on other values.
func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if c.LLM.APIKey == "" {
		for _, name := range providerKeyEnv[c.LLM.Provider] {
			if key := os.Getenv(name); key != "" {
				c.LLM.APIKey = key
				break
			}
		}
	}

	origins := c.CORS.AllowedOrigins[:0]
	for _, o := range c.CORS.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORS.AllowedOrigins = origins
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("config error: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("config error: %w", err)
}

// Params returns the generation parameters sent with every model call.
func (l LLM) Params() llm.GenerationParams {
	return llm.GenerationParams{
		Temperature:     l.Temperature,
		TopP:            l.TopP,
		TopK:            l.TopK,
		MaxOutputTokens: l.MaxOutputTokens,
	}
}

// ClientConfig returns the provider configuration for the llm package.
func (l LLM) ClientConfig() *llm.Config {
	cfg := llm.DefaultConfig(llm.Provider(l.Provider))
	if l.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, l.Model)
	}
	cfg.BaseURL = l.BaseURL
	return cfg
}

// ModelName returns the model used for copy generation.
func (l LLM) ModelName() string {
	return l.ClientConfig().GetModel(llm.TierStandard)
}
