package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.InDelta(t, 5.0, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, "http://localhost:8080", cfg.Intake.BaseURL)
	assert.Equal(t, "/api/webhooks/step1", cfg.Intake.Step1InternalURL)
	assert.Equal(t, "/api/webhooks/step2", cfg.Intake.Step2InternalURL)
	assert.Empty(t, cfg.Intake.Step1ExternalURL)
	assert.Equal(t, "AccidentLawyerFontana/1.0", cfg.Intake.UserAgent)
	assert.Equal(t, "https://api.ipify.org?format=json", cfg.Intake.IPLookupURL)
	assert.Equal(t, 0, cfg.Intake.InjuryMinLength)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, "gemini", cfg.Blog.Provider)
	assert.Equal(t, "Fontana Car Accident Legal Team", cfg.Blog.Author)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  sqlite_path: /var/lib/intake/blog.db
log:
  level: debug
  format: console
server:
  port: 9090
intake:
  step1_external_url: https://hooks.example.com/step1
  injury_min_length: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/var/lib/intake/blog.db", cfg.Store.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://hooks.example.com/step1", cfg.Intake.Step1ExternalURL)
	assert.Equal(t, 20, cfg.Intake.InjuryMinLength)
	// Defaults still apply for unset values
	assert.Equal(t, "/api/webhooks/step2", cfg.Intake.Step2InternalURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("INTAKE_STORE_DRIVER", "postgres")
	t.Setenv("INTAKE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("INTAKE_SERVER_PORT", "3000")
	t.Setenv("INTAKE_BLOG_CRON_SECRET", "s3cret")
	t.Setenv("INTAKE_INTAKE_STEP2_EXTERNAL_URL", "https://hooks.example.com/step2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Blog.CronSecret)
	assert.Equal(t, "https://hooks.example.com/step2", cfg.Intake.Step2ExternalURL)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Store.Driver = "redis"
	cfg.Store.RedisAddr = "localhost:6379"
	cfg.Blog.Provider = "gemini"
	cfg.Gemini.Key = "gm-key"
	return cfg
}

func TestValidateServe_Valid(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_NegativeRate(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.RateLimit = -1

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.rate_limit")
}

func TestValidateStoreDrivers(t *testing.T) {
	cfg := validDefaults()

	cfg.Store.Driver = "postgres"
	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")

	cfg.Store.DatabaseURL = "postgres://localhost/blog"
	assert.NoError(t, cfg.Validate("serve"))

	cfg.Store.Driver = "sqlite"
	err = cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.sqlite_path is required")

	cfg.Store.Driver = "memory"
	assert.NoError(t, cfg.Validate("serve"))

	cfg.Store.Driver = "mongo"
	err = cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestValidateBlog_Providers(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("blog"))

	cfg.Gemini.Key = ""
	err := cfg.Validate("blog")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.key is required")

	cfg.Blog.Provider = "anthropic"
	err = cfg.Validate("blog")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")

	cfg.Anthropic.Key = "sk-ant-key"
	assert.NoError(t, cfg.Validate("blog"))

	cfg.Blog.Provider = "openai"
	err = cfg.Validate("blog")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blog.provider")
}

func TestValidateIntake(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("intake"))

	cfg.Intake.InjuryMinLength = -1
	cfg.Intake.HTTPTimeoutSecs = -5
	err := cfg.Validate("intake")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "injury_min_length")
	assert.Contains(t, err.Error(), "http_timeout_secs")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
