package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and
// optionally from a file).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Forms    FormsConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig settings for the dashboard HTTP server.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig settings for the remote inventory service.
type UpstreamConfig struct {
	BaseURL string        // e.g. https://inventory.internal
	Timeout time.Duration // transport timeout for a single call
}

// CacheConfig freshness windows for the query cache. Within a window repeated
// reads for the same key return cached data without an upstream call.
type CacheConfig struct {
	StockTTL     time.Duration // stock and audit reads
	SearchTTL    time.Duration // product search
	SalesTTL     time.Duration // monthly sales summary
	ReferenceTTL time.Duration // suppliers and locations
}

// FormsConfig lifecycle settings for server-side form sessions.
type FormsConfig struct {
	SessionTTL   time.Duration // idle sessions are discarded after this
	SuccessDelay time.Duration // how long a create-product session shows its success state
}

// Load reads configuration from environment variables (and optionally from a
// .env / config.env file). Env vars take priority. Expected names: APP_ENV,
// HTTP_PORT, UPSTREAM_BASE_URL, CACHE_STOCK_TTL_SECONDS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env); a missing file is not an error.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "pharmaudit-dashboard"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Upstream: UpstreamConfig{
			BaseURL: getString(v, "UPSTREAM_BASE_URL", "http://localhost:9000"),
			Timeout: getSeconds(v, "UPSTREAM_TIMEOUT_SECONDS", 15*time.Second),
		},
		Cache: CacheConfig{
			StockTTL:     getSeconds(v, "CACHE_STOCK_TTL_SECONDS", 10*time.Second),
			SearchTTL:    getSeconds(v, "CACHE_SEARCH_TTL_SECONDS", 30*time.Second),
			SalesTTL:     getSeconds(v, "CACHE_SALES_TTL_SECONDS", 60*time.Second),
			ReferenceTTL: getSeconds(v, "CACHE_REFERENCE_TTL_SECONDS", 300*time.Second),
		},
		Forms: FormsConfig{
			SessionTTL:   getSeconds(v, "FORMS_SESSION_TTL_SECONDS", 1800*time.Second),
			SuccessDelay: getMillis(v, "FORMS_SUCCESS_DELAY_MS", 1500*time.Millisecond),
		},
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("config: UPSTREAM_BASE_URL is required")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getSeconds(v *viper.Viper, key string, def time.Duration) time.Duration {
	if n := getInt(v, key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func getMillis(v *viper.Viper, key string, def time.Duration) time.Duration {
	if n := getInt(v, key, 0); n > 0 {
		return time.Duration(n) * time.Millisecond
	}
	return def
}
