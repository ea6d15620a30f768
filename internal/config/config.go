// Package config arma la configuración del proceso: .env (si existe), un
// YAML opcional (CONFIG_FILE) y por último variables de entorno, que ganan.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"caretrack/internal/platform/localtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Notify  NotifyConfig  `yaml:"notify"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	TimeZone string `yaml:"time_zone"`
	// NearWindow: ventana "próxima" para clasificar schedules.
	NearWindow time.Duration `yaml:"near_window"`
}

type HTTPConfig struct {
	Addr                 string   `yaml:"addr"`
	CORSAllowedOrigins   []string `yaml:"cors_allowed_origins"`
	CORSAllowCredentials bool     `yaml:"cors_allow_credentials"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
	RedisURL   string `yaml:"redis_url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type NotifyConfig struct {
	// Permission inicial del dispatcher: default | granted | denied.
	Permission      string        `yaml:"permission"`
	NATSURL         string        `yaml:"nats_url"`
	NATSSubject     string        `yaml:"nats_subject"`
	WebhookURL      string        `yaml:"webhook_url"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

func defaults() Config {
	return Config{
		App: AppConfig{
			Name:       "caretrack",
			TimeZone:   localtime.DefaultTimeZone,
			NearWindow: 45 * time.Minute,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Level: "info", Format: "text"},
		Storage: StorageConfig{
			Backend:    StorageMemory,
			SQLitePath: "caretrack.db",
		},
		Notify: NotifyConfig{
			Permission:      "default",
			NATSSubject:     "caretrack.reminders",
			RefreshInterval: time.Minute,
		},
	}
}

// Load lee .env, luego CONFIG_FILE (si está) y aplica overrides de entorno.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	env := envReader{get: getenv}
	env.str("APP_NAME", &cfg.App.Name)
	env.str("APP_TIME_ZONE", &cfg.App.TimeZone)
	env.duration("NEAR_WINDOW", &cfg.App.NearWindow)

	if port := strings.TrimSpace(getenv("PORT")); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	env.str("HTTP_ADDR", &cfg.HTTP.Addr)
	env.list("CORS_ALLOWED_ORIGINS", &cfg.HTTP.CORSAllowedOrigins)
	env.boolean("CORS_ALLOW_CREDENTIALS", &cfg.HTTP.CORSAllowCredentials)

	env.str("LOG_LEVEL", &cfg.Log.Level)
	env.str("LOG_FORMAT", &cfg.Log.Format)

	env.str("STORAGE", &cfg.Storage.Backend)
	env.str("DB_DSN", &cfg.Storage.DSN)
	env.str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	env.str("REDIS_URL", &cfg.Storage.RedisURL)

	env.str("JWT_SECRET", &cfg.Auth.JWTSecret)

	env.str("NOTIFY_PERMISSION", &cfg.Notify.Permission)
	env.str("NATS_URL", &cfg.Notify.NATSURL)
	env.str("NATS_SUBJECT", &cfg.Notify.NATSSubject)
	env.str("WEBHOOK_URL", &cfg.Notify.WebhookURL)
	env.duration("REFRESH_INTERVAL", &cfg.Notify.RefreshInterval)

	if env.err != nil {
		return Config{}, env.err
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Notify.Permission = strings.ToLower(strings.TrimSpace(cfg.Notify.Permission))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage %q requires DB_DSN", c.Storage.Backend)
		}
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage %q requires REDIS_URL", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("invalid storage backend: %q (memory, postgres, sqlite or redis)", c.Storage.Backend)
	}

	switch c.Notify.Permission {
	case "default", "granted", "denied":
	default:
		return fmt.Errorf("invalid NOTIFY_PERMISSION: %q", c.Notify.Permission)
	}
	if c.Notify.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	if c.App.NearWindow < 0 {
		return fmt.Errorf("NEAR_WINDOW must not be negative")
	}
	return nil
}

// envReader junta el primer error de parseo para no chequear cada clave.
type envReader struct {
	get func(string) string
	err error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.get(key))
	return v, v != ""
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) list(key string, dst *[]string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func (e *envReader) boolean(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = b
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = d
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
