package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	AppEnv           string   `toml:"app_env"`
	LogLevel         string   `toml:"log_level"`
	HTTPAddr         string   `toml:"http_addr"`
	PublicBaseURL    string   `toml:"public_base_url"`
	SecretKey        string   `toml:"secret_key"`
	AdminEmailDomain string   `toml:"admin_email_domain"`
	CORSOrigins      []string `toml:"cors_origins"`

	DB      DBConfig      `toml:"db"`
	Redis   RedisConfig   `toml:"redis"`
	Session SessionConfig `toml:"session"`
	Tokens  TokenConfig   `toml:"tokens"`
	SMTP    SMTPConfig    `toml:"smtp"`
	Images  ImageConfig   `toml:"images"`
}

type DBConfig struct {
	Driver     string `toml:"driver"` // postgres | sqlite
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	Database   string `toml:"database"`
	SQLitePath string `toml:"sqlite_path"`
}

type RedisConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type SessionConfig struct {
	Store              string `toml:"store"` // redis | memory
	IdleTimeoutSeconds int    `toml:"idle_timeout_seconds"`
	SecureCookie       bool   `toml:"secure_cookie"`
}

type TokenConfig struct {
	EmailMaxAgeSeconds int `toml:"email_max_age_seconds"`
	AdminMaxAgeSeconds int `toml:"admin_max_age_seconds"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type ImageConfig struct {
	Dir       string `toml:"dir"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	PublicURL string `toml:"public_url"`
}

// Default returns the development configuration every file and env value overlays.
func Default() *Config {
	return &Config{
		AppEnv:        "development",
		HTTPAddr:      ":8080",
		PublicBaseURL: "http://localhost:8080",
		CORSOrigins:   []string{"https://*", "http://localhost:8081"},
		DB: DBConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			SQLitePath: "volunteers.db",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Session: SessionConfig{
			Store:              "redis",
			IdleTimeoutSeconds: 30 * 60,
		},
		Tokens: TokenConfig{
			EmailMaxAgeSeconds: 3600,
			AdminMaxAgeSeconds: 3600,
		},
		SMTP: SMTPConfig{
			Port: "587",
		},
		Images: ImageConfig{
			Dir: "static",
		},
	}
}

// Load reads the optional TOML file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.PublicBaseURL = getEnv("PUBLIC_BASE_URL", c.PublicBaseURL)
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.AdminEmailDomain = getEnv("ADMIN_EMAIL_DOMAIN", c.AdminEmailDomain)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		c.CORSOrigins = strings.Split(origins, ",")
	}

	c.DB.Driver = getEnv("DB_DRIVER", c.DB.Driver)
	c.DB.Host = getEnv("PG_HOST", c.DB.Host)
	c.DB.Port = getEnv("PG_PORT", c.DB.Port)
	c.DB.User = getEnv("PG_USER", c.DB.User)
	c.DB.Database = getEnv("PG_DB", c.DB.Database)
	c.DB.Password = getEnv("PG_PASSWORD", c.DB.Password)
	c.DB.SQLitePath = getEnv("SQLITE_PATH", c.DB.SQLitePath)

	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	c.Session.Store = getEnv("SESSION_STORE", c.Session.Store)
	c.Session.IdleTimeoutSeconds = getInt("SESSION_IDLE_TIMEOUT_SECONDS", c.Session.IdleTimeoutSeconds)
	c.Session.SecureCookie = getBool("SESSION_SECURE_COOKIE", c.Session.SecureCookie)

	c.Tokens.EmailMaxAgeSeconds = getInt("EMAIL_TOKEN_MAX_AGE_SECONDS", c.Tokens.EmailMaxAgeSeconds)
	c.Tokens.AdminMaxAgeSeconds = getInt("ADMIN_TOKEN_MAX_AGE_SECONDS", c.Tokens.AdminMaxAgeSeconds)

	c.SMTP.Host = getEnv("SMTP_HOST", c.SMTP.Host)
	c.SMTP.Port = getEnv("SMTP_PORT", c.SMTP.Port)
	c.SMTP.Username = getEnv("SMTP_USERNAME", c.SMTP.Username)
	c.SMTP.Password = getEnv("SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.From = getEnv("SMTP_FROM", c.SMTP.From)

	c.Images.Dir = getEnv("IMAGE_DIR", c.Images.Dir)
	c.Images.Bucket = getEnv("S3_BUCKET", c.Images.Bucket)
	c.Images.Region = getEnv("S3_REGION", c.Images.Region)
	c.Images.Endpoint = getEnv("S3_ENDPOINT", c.Images.Endpoint)
	c.Images.AccessKey = getEnv("S3_ACCESS_KEY", c.Images.AccessKey)
	c.Images.SecretKey = getEnv("S3_SECRET_KEY", c.Images.SecretKey)
	c.Images.PublicURL = getEnv("S3_PUBLIC_URL", c.Images.PublicURL)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		if c.IsProduction() {
			return errors.New("SECRET_KEY is required in production")
		}
		c.SecretKey = "development-secret"
	}
	if c.AdminEmailDomain == "" {
		return errors.New("ADMIN_EMAIL_DOMAIN is required")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.Session.Store {
	case "redis", "memory":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.Session.Store)
	}
	if c.Session.IdleTimeoutSeconds <= 0 {
		return errors.New("session idle timeout must be positive")
	}
	if c.Tokens.EmailMaxAgeSeconds <= 0 || c.Tokens.AdminMaxAgeSeconds <= 0 {
		return errors.New("token max ages must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutSeconds) * time.Second
}

func (c *Config) EmailTokenMaxAge() time.Duration {
	return time.Duration(c.Tokens.EmailMaxAgeSeconds) * time.Second
}

func (c *Config) AdminTokenMaxAge() time.Duration {
	return time.Duration(c.Tokens.AdminMaxAgeSeconds) * time.Second
}

// PostgresDSN builds the connection string used by both GORM and sqlx.
func (d DBConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Database)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
