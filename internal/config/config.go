package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	RunMigrations      bool
}

// StorageConfig selects and configures the object store files are written to.
type StorageConfig struct {
	Driver           string // "minio" or "s3"
	PresignExpirySec int
	MinIO            MinIOConfig
	S3               S3Config
}

// PresignExpiry is how long download links stay valid.
func (c StorageConfig) PresignExpiry() time.Duration {
	if c.PresignExpirySec <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.PresignExpirySec) * time.Second
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Config holds settings for AWS S3 or another S3-compatible service.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// RedisConfig holds the Redis connection used by the login rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds token and password hashing parameters.
type AuthConfig struct {
	JWTSecret          string
	TokenTTLMinutes    int
	BcryptCost         int
	LoginRateLimit     int
	LoginRateWindowSec int
}

// LoginRateWindow is the window LoginRateLimit attempts are counted over.
func (c AuthConfig) LoginRateWindow() time.Duration {
	return time.Duration(c.LoginRateWindowSec) * time.Second
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	// AppHost is the host published in the API docs. Empty leaves it to the client.
	AppHost  string
	Port     string
	Database DatabaseConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", ""),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			RunMigrations:      getEnvBool("DB_RUN_MIGRATIONS", true),
		},
		Storage: StorageConfig{
			Driver:           getEnv("STORAGE_DRIVER", "minio"),
			PresignExpirySec: getEnvInt("PRESIGN_EXPIRY_SEC", 900),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				Region:    getEnv("S3_REGION", "us-east-1"),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Bucket:    getEnv("S3_BUCKET", ""),
			},
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("AUTH_JWT_SECRET", ""),
			TokenTTLMinutes:    getEnvInt("AUTH_TOKEN_TTL_MINUTES", 60),
			BcryptCost:         getEnvInt("AUTH_BCRYPT_COST", 12),
			LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
			LoginRateWindowSec: getEnvInt("LOGIN_RATE_WINDOW_SEC", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
