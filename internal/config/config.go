package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "default-secret-key-change-me"

type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	LogLevel logger.LogLevel
}

// GetDSN returns the explicit DSN when set, otherwise one assembled for the driver.
func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Name)
	case DriverSQLite:
		return c.Name + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	}
}

type JWTConfig struct {
	Secret          string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	VerifyTokenTTL  time.Duration
}

type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

type Config struct {
	ServerPort    string
	GinMode       string
	Env           string
	LogLevel      string
	PublicBaseURL string
	UploadDir     string
	MaxUploadMB   int64
	// AdminEmails are granted the Admin role when they sign up or log in.
	AdminEmails   []string
	DB            DBConfig
	JWT           JWTConfig
	RateLimit     RateLimitConfig
}

func Load() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverMySQL))

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:   int64(getEnvAsInt("MAX_UPLOAD_MB", 50)),
		AdminEmails:   getEnvAsEmailList("ADMIN_EMAILS"),
		DB: DBConfig{
			Driver:   driver,
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", defaultPort(driver)),
			User:     getEnv("DB_USER", "cannaconnect"),
			Password: getEnv("DB_PASSWORD", "cannaconnect"),
			Name:     getEnv("DB_NAME", "cannaconnect"),
			LogLevel: getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", DefaultJWTSecret),
			Issuer:          getEnv("JWT_ISSUER", "cannaconnect"),
			AccessTokenTTL:  getEnvAsDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL: getEnvAsDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
			VerifyTokenTTL:  getEnvAsDuration("VERIFY_TOKEN_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: getEnvAsInt("AUTH_RATE_PER_MINUTE", 20),
			AuthBurst:     getEnvAsInt("AUTH_RATE_BURST", 5),
		},
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LogFields returns the non-secret settings for the startup log line.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_host", c.DB.Host),
		zap.String("db_name", c.DB.Name),
		zap.String("server_port", c.ServerPort),
		zap.String("upload_dir", c.UploadDir),
		zap.Duration("access_token_ttl", c.JWT.AccessTokenTTL),
	}
}

func defaultPort(driver string) string {
	if driver == DriverPostgres {
		return "5432"
	}
	return "3306"
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsEmailList splits a comma separated list into lower-cased addresses.
func getEnvAsEmailList(key string) []string {
	var emails []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if email := strings.ToLower(strings.TrimSpace(part)); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	switch strings.ToLower(getEnv(key, "")) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
