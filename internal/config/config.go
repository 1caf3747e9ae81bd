package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Intake    IntakeConfig    `yaml:"intake" mapstructure:"intake"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Blog      BlogConfig      `yaml:"blog" mapstructure:"blog"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	// RateLimit is webhook requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// IntakeConfig configures the intake form and its webhooks.
type IntakeConfig struct {
	// BaseURL resolves webhook URLs that start with "/".
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	Step1InternalURL string `yaml:"step1_internal_url" mapstructure:"step1_internal_url"`
	Step1ExternalURL string `yaml:"step1_external_url" mapstructure:"step1_external_url"`
	Step2InternalURL string `yaml:"step2_internal_url" mapstructure:"step2_internal_url"`
	Step2ExternalURL string `yaml:"step2_external_url" mapstructure:"step2_external_url"`
	UserAgent        string `yaml:"user_agent" mapstructure:"user_agent"`
	IPLookupURL      string `yaml:"ip_lookup_url" mapstructure:"ip_lookup_url"`
	InjuryMinLength  int    `yaml:"injury_min_length" mapstructure:"injury_min_length"`
	SchemaPath       string `yaml:"schema_path" mapstructure:"schema_path"`
	// HTTPTimeoutSecs bounds each webhook POST; 0 leaves the runtime default.
	HTTPTimeoutSecs int `yaml:"http_timeout_secs" mapstructure:"http_timeout_secs"`
}

// StoreConfig configures the blog post backend.
type StoreConfig struct {
	Driver        string `yaml:"driver" mapstructure:"driver"`
	RedisAddr     string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string `yaml:"redis_password" mapstructure:"redis_password"`
	RedisDB       int    `yaml:"redis_db" mapstructure:"redis_db"`
	DatabaseURL   string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath    string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// BlogConfig configures daily blog generation.
type BlogConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"`
	CronSecret string `yaml:"cron_secret" mapstructure:"cron_secret"`
	SiteURL    string `yaml:"site_url" mapstructure:"site_url"`
	Author     string `yaml:"author" mapstructure:"author"`
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 5)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("intake.base_url", "http://localhost:8080")
	v.SetDefault("intake.step1_internal_url", "/api/webhooks/step1")
	v.SetDefault("intake.step2_internal_url", "/api/webhooks/step2")
	v.SetDefault("intake.step1_external_url", "")
	v.SetDefault("intake.step2_external_url", "")
	v.SetDefault("intake.user_agent", "AccidentLawyerFontana/1.0")
	v.SetDefault("intake.ip_lookup_url", "https://api.ipify.org?format=json")
	v.SetDefault("intake.injury_min_length", 0)
	v.SetDefault("intake.schema_path", "")
	v.SetDefault("intake.http_timeout_secs", 0)
	v.SetDefault("store.driver", "redis")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.sqlite_path", "blog.db")
	v.SetDefault("blog.provider", "gemini")
	v.SetDefault("blog.cron_secret", "")
	v.SetDefault("blog.site_url", "https://www.accidentlawyerfontana.com")
	v.SetDefault("blog.author", "Fontana Car Accident Legal Team")
	v.SetDefault("blog.max_tokens", 8192)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("gemini.key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "serve", "blog" and "intake".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		errs = append(errs, c.validateStore()...)
	case "blog":
		errs = append(errs, c.validateStore()...)
		switch c.Blog.Provider {
		case "anthropic":
			if c.Anthropic.Key == "" {
				errs = append(errs, "anthropic.key is required")
			}
		case "gemini":
			if c.Gemini.Key == "" {
				errs = append(errs, "gemini.key is required")
			}
		default:
			errs = append(errs, fmt.Sprintf("blog.provider must be anthropic or gemini, got %q", c.Blog.Provider))
		}
	case "intake":
		if c.Intake.InjuryMinLength < 0 {
			errs = append(errs, "intake.injury_min_length must be >= 0")
		}
		if c.Intake.HTTPTimeoutSecs < 0 {
			errs = append(errs, "intake.http_timeout_secs must be >= 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateStore() []string {
	switch c.Store.Driver {
	case "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return []string{"store.redis_addr is required"}
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return []string{"store.database_url is required"}
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return []string{"store.sqlite_path is required"}
		}
	default:
		return []string{fmt.Sprintf("store.driver %q is not supported", c.Store.Driver)}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
