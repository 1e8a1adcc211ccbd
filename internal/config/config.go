package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LegacyJWTSecret is the placeholder secret of older deployments.
const LegacyJWTSecret = "default_secret_change_me"

// Config holds every setting of the API.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Codes     CodesConfig     `mapstructure:"codes"`
	Mail      MailConfig      `mapstructure:"mail"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode           string   `mapstructure:"mode"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
}

// DatabaseConfig selects postgres or sqlite. DSN, when set, wins over the
// individual postgres fields.
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	DSN            string `mapstructure:"dsn"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig supports the single, sentinel and cluster modes.
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Mode    string `mapstructure:"mode"`
	// Addrs lists host:port pairs. Addr is used when Addrs is empty.
	Addrs      []string `mapstructure:"addrs"`
	Addr       string   `mapstructure:"addr"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	MasterName string   `mapstructure:"master_name"`
	// MaxRetries of -1 disables retries.
	MaxRetries int `mapstructure:"max_retries"`
	// Backoffs are in milliseconds.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
}

// CodesConfig configures confirmation codes. Store is "memory" or "redis"
// and only applies to the public form codes.
type CodesConfig struct {
	Store           string        `mapstructure:"store"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type MailConfig struct {
	// Provider is smtp, resend or noop.
	Provider     string `mapstructure:"provider"`
	AppName      string `mapstructure:"app_name"`
	From         string `mapstructure:"from"`
	ContactEmail string `mapstructure:"contact_email"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPass     string `mapstructure:"smtp_pass"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
}

type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// PublicMax applies to the code gated forms, AuthMax to /api/auth.
	PublicMax int           `mapstructure:"public_max"`
	AuthMax   int           `mapstructure:"auth_max"`
	Window    time.Duration `mapstructure:"window"`
}

type CacheConfig struct {
	// PublicTTLSeconds of 0 disables the public read cache.
	PublicTTLSeconds int `mapstructure:"public_ttl_seconds"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// PostgresConnectionString returns DSN or builds a key=value string.
func (d *DatabaseConfig) PostgresConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PublicCacheTTL is the cache duration of /api/data reads.
func (c CacheConfig) PublicCacheTTL() time.Duration {
	return time.Duration(c.PublicTTLSeconds) * time.Second
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.mode", "debug")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	vip.SetDefault("server.max_body_bytes", int64(10<<20))

	vip.SetDefault("database.driver", "postgres")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("jwt.expiration_hrs", 24)

	vip.SetDefault("codes.store", "memory")
	vip.SetDefault("codes.ttl", 10*time.Minute)
	vip.SetDefault("codes.cleanup_interval", 5*time.Minute)

	vip.SetDefault("mail.provider", "smtp")
	vip.SetDefault("mail.app_name", "Administration")
	vip.SetDefault("mail.smtp_port", 587)

	vip.SetDefault("ratelimit.enabled", true)
	vip.SetDefault("ratelimit.public_max", 5)
	vip.SetDefault("ratelimit.auth_max", 10)
	vip.SetDefault("ratelimit.window", time.Minute)

	vip.SetDefault("cache.public_ttl_seconds", 30)

	vip.SetDefault("log.level", "info")
}

var envBindings = map[string]string{
	"server.port":            "SERVER_PORT",
	"server.mode":            "GIN_MODE",
	"server.allowed_origins": "CORS_ALLOWED_ORIGINS",
	"server.trusted_proxies": "TRUSTED_PROXIES",
	"server.max_body_bytes":  "SERVER_MAX_BODY_BYTES",

	"database.driver":          "DATABASE_DRIVER",
	"database.dsn":             "DATABASE_URL",
	"database.host":            "DATABASE_HOST",
	"database.port":            "DATABASE_PORT",
	"database.user":            "DATABASE_USER",
	"database.password":        "DATABASE_PASSWORD",
	"database.dbname":          "DATABASE_DBNAME",
	"database.sslmode":         "DATABASE_SSLMODE",
	"database.migrations_path": "DATABASE_MIGRATIONS_PATH",

	"redis.enabled":     "REDIS_ENABLED",
	"redis.mode":        "REDIS_MODE",
	"redis.addrs":       "REDIS_ADDRS",
	"redis.addr":        "REDIS_ADDR",
	"redis.password":    "REDIS_PASSWORD",
	"redis.db":          "REDIS_DB",
	"redis.master_name": "REDIS_MASTER_NAME",

	"jwt.secret":         "JWT_SECRET",
	"jwt.expiration_hrs": "JWT_EXPIRATIONHRS",

	"codes.store":            "CODES_STORE",
	"codes.ttl":              "CODES_TTL",
	"codes.cleanup_interval": "CODES_CLEANUP_INTERVAL",

	"mail.provider":       "MAIL_PROVIDER",
	"mail.app_name":       "APP_NAME",
	"mail.from":           "SMTP_FROM",
	"mail.contact_email":  "CONTACT_EMAIL",
	"mail.smtp_host":      "SMTP_HOST",
	"mail.smtp_port":      "SMTP_PORT",
	"mail.smtp_user":      "SMTP_USER",
	"mail.smtp_pass":      "SMTP_PASS",
	"mail.resend_api_key": "RESEND_API_KEY",

	"ratelimit.enabled":    "RATELIMIT_ENABLED",
	"ratelimit.public_max": "RATELIMIT_PUBLIC_MAX",
	"ratelimit.auth_max":   "RATELIMIT_AUTH_MAX",
	"ratelimit.window":     "RATELIMIT_WINDOW",

	"cache.public_ttl_seconds": "CACHE_PUBLIC_TTL_SECONDS",

	"log.level":       "LOG_LEVEL",
	"log.development": "LOG_DEVELOPMENT",
}

// Load reads configPath when it exists, then overlays the environment.
func Load(configPath string) (*Config, error) {
	vip := viper.New()
	setDefaults(vip)

	for key, env := range envBindings {
		if err := vip.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("config file %q not found, using environment and defaults", configPath)
			} else {
				return nil, fmt.Errorf("read config %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize splits list values that arrived as one comma separated env var.
func normalize(cfg *Config) {
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)
	cfg.Server.TrustedProxies = splitList(cfg.Server.TrustedProxies)
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	cfg.Mail.Provider = strings.ToLower(cfg.Mail.Provider)
	cfg.Codes.Store = strings.ToLower(cfg.Codes.Store)
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (check JWT_SECRET env var)")
	}
	if c.JWT.Secret == LegacyJWTSecret && c.Server.Mode == "release" {
		return errors.New("the default jwt secret cannot be used in release mode")
	}
	if c.JWT.ExpirationHrs <= 0 {
		return errors.New("jwt expiration must be positive")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" && (c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "") {
			return errors.New("database configuration (host, dbname, user) is incomplete (check DATABASE_URL or DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case "sqlite":
		if c.Database.DSN == "" {
			return errors.New("sqlite driver requires a dsn (check DATABASE_URL env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Mail.Provider {
	case "smtp":
		if c.Mail.SMTPHost == "" {
			return errors.New("smtp provider requires a host (check SMTP_HOST env var)")
		}
	case "resend":
		if c.Mail.ResendAPIKey == "" {
			return errors.New("resend provider requires an api key (check RESEND_API_KEY env var)")
		}
	case "noop":
	default:
		return fmt.Errorf("unsupported mail provider: %s", c.Mail.Provider)
	}
	if c.Mail.ContactEmail == "" {
		return errors.New("contact email is required (check CONTACT_EMAIL env var)")
	}

	switch c.Codes.Store {
	case "memory":
	case "redis":
		if !c.Redis.Enabled {
			return errors.New("redis code store requires redis.enabled")
		}
	default:
		return fmt.Errorf("unsupported code store: %s", c.Codes.Store)
	}
	if c.Codes.TTL <= 0 {
		return errors.New("code ttl must be positive")
	}

	if c.RateLimit.Enabled && (c.RateLimit.PublicMax <= 0 || c.RateLimit.AuthMax <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("rate limit requires positive limits and window")
	}
	return nil
}
