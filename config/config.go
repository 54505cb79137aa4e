package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort        = "8080"
	defaultStoreDriver = "gorm"
	defaultSQLitePath  = "frontdesk.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultLogLevel    = "info"
)

// AppConfig is everything main needs to wire the service, read once at startup.
type AppConfig struct {
	Port        string
	StoreDriver string // gorm | redis | memory

	DatabaseURL string
	SQLitePath  string
	MySQL       MySQLParts

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins string

	LogLevel string
	LogFile  string

	ExportDir         string
	ExportS3Bucket    string
	ExportS3Region    string
	ExportS3Endpoint  string
	ExportS3PathStyle bool
}

// MySQLParts is the DB_* fallback used when no connection URL is given.
type MySQLParts struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (p MySQLParts) configured() bool {
	return p.Host != ""
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:        EnvOrDefault("PORT", defaultPort),
		StoreDriver: strings.ToLower(EnvOrDefault("STORE_DRIVER", defaultStoreDriver)),
		DatabaseURL: EnvOrDefault("MYSQL_URL", EnvOrDefault("DATABASE_URL", "")),
		SQLitePath:  EnvOrDefault("DB_PATH", defaultSQLitePath),
		MySQL: MySQLParts{
			Host:     EnvOrDefault("DB_HOST", ""),
			Port:     EnvOrDefault("DB_PORT", "3306"),
			User:     EnvOrDefault("DB_USER", "root"),
			Password: EnvOrDefault("DB_PASS", ""),
			Name:     EnvOrDefault("DB_NAME", "hotel_frontdesk"),
		},
		RedisAddr:        EnvOrDefault("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:    EnvOrDefault("REDIS_PASSWORD", ""),
		RedisPrefix:      EnvOrDefault("REDIS_PREFIX", ""),
		JWTSecret:        EnvOrDefault("JWT_SECRET", defaultJWTSecret),
		CORSOrigins:      EnvOrDefault("CORS_ORIGINS", ""),
		LogLevel:         EnvOrDefault("LOG_LEVEL", defaultLogLevel),
		LogFile:          EnvOrDefault("LOG_FILE", ""),
		ExportDir:        EnvOrDefault("EXPORT_DIR", ""),
		ExportS3Bucket:   EnvOrDefault("EXPORT_S3_BUCKET", ""),
		ExportS3Region:   EnvOrDefault("EXPORT_S3_REGION", "us-east-1"),
		ExportS3Endpoint: EnvOrDefault("EXPORT_S3_ENDPOINT", ""),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(EnvOrDefault("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(EnvOrDefault("JWT_TTL", defaultJWTTTL)); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.ExportS3PathStyle, err = strconv.ParseBool(EnvOrDefault("EXPORT_S3_PATH_STYLE", "false")); err != nil {
		return nil, fmt.Errorf("EXPORT_S3_PATH_STYLE: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.StoreDriver {
	case "gorm", "redis", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be one of gorm, redis, memory (got %q)", c.StoreDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	return nil
}

// EnvOrDefault returns the trimmed value of key, or def when it is unset or blank.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}
