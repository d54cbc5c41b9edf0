package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

// ConfigFileEnv names an optional YAML file whose keys mirror the lower-cased
// environment variable names (port, db_path, ...). Environment wins over file.
const ConfigFileEnv = "FITBUDDY_CONFIG"

type Config struct {
	Port          string        `validate:"required"`
	DBPath        string        `validate:"required"`
	JWTSecret     string        `validate:"required"`
	TokenTTL      time.Duration `validate:"required|min:1"`
	CORSOrigins   []string
	MigrationsDir string

	LogLevel string `validate:"required|in:trace,debug,info,warn,error,fatal"`
	LogFile  string
	LogJSON  bool

	CacheSizeMB     int           `validate:"min:0"`
	StoreCacheTTL   time.Duration `validate:"required|min:1"`
	CatalogURL      string        `validate:"required"`
	CatalogTimeout  time.Duration `validate:"required|min:1"`
	CatalogCacheTTL time.Duration `validate:"min:0"`
	MetricsEnabled  bool
}

var envBindings = map[string]string{
	"port":              "PORT",
	"db_path":           "DB_PATH",
	"jwt_secret":        "JWT_SECRET",
	"token_ttl_hours":   "TOKEN_TTL_HOURS",
	"cors_origins":      "CORS_ORIGINS",
	"migrations_dir":    "MIGRATIONS_DIR",
	"log_level":         "LOG_LEVEL",
	"log_file":          "LOG_FILE",
	"log_json":          "LOG_JSON",
	"cache_size_mb":     "CACHE_SIZE_MB",
	"store_cache_ttl":   "STORE_CACHE_TTL",
	"catalog_url":       "CATALOG_URL",
	"catalog_timeout":   "CATALOG_TIMEOUT",
	"catalog_cache_ttl": "CATALOG_CACHE_TTL",
	"metrics_enabled":   "METRICS_ENABLED",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "./data/fitbuddy.db")
	v.SetDefault("jwt_secret", "change-this-secret")
	v.SetDefault("token_ttl_hours", 72)
	v.SetDefault("cors_origins", []string{"http://localhost:8081", "http://localhost:19006"})
	v.SetDefault("migrations_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_json", false)
	v.SetDefault("cache_size_mb", 16)
	v.SetDefault("store_cache_ttl", "30s")
	v.SetDefault("catalog_url", "https://wger.de/api/v2")
	v.SetDefault("catalog_timeout", "5s")
	v.SetDefault("catalog_cache_ttl", "10m")
	v.SetDefault("metrics_enabled", true)
}

// Load reads defaults, the optional config file and the environment, in that
// order of increasing precedence, and validates the result.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	if err := v.BindEnv("config_file", ConfigFileEnv); err != nil {
		return Config{}, fmt.Errorf("bind %s: %w", ConfigFileEnv, err)
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:            v.GetString("port"),
		DBPath:          v.GetString("db_path"),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        time.Duration(v.GetInt("token_ttl_hours")) * time.Hour,
		CORSOrigins:     getList(v, "cors_origins"),
		MigrationsDir:   v.GetString("migrations_dir"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		LogFile:         v.GetString("log_file"),
		LogJSON:         v.GetBool("log_json"),
		CacheSizeMB:     v.GetInt("cache_size_mb"),
		StoreCacheTTL:   v.GetDuration("store_cache_ttl"),
		CatalogURL:      strings.TrimRight(v.GetString("catalog_url"), "/"),
		CatalogTimeout:  v.GetDuration("catalog_timeout"),
		CatalogCacheTTL: v.GetDuration("catalog_cache_ttl"),
		MetricsEnabled:  v.GetBool("metrics_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	v := validate.Struct(&c)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	return nil
}

// getList accepts both a YAML sequence and a comma separated env value.
func getList(v *viper.Viper, key string) []string {
	var parts []string
	switch raw := v.Get(key).(type) {
	case string:
		parts = strings.Split(raw, ",")
	default:
		parts = v.GetStringSlice(key)
	}

	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
