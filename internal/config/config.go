package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `validate:"required"`
	Port               string `validate:"required"`
	User               string `validate:"required"`
	Password           string
	Name               string `validate:"required"`
	SSLMode            string
	MaxOpenConns       int `validate:"gte=0"`
	MaxIdleConns       int `validate:"gte=0"`
	ConnMaxLifetimeSec int `validate:"gte=0"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `validate:"required"`
	AccessKey string `validate:"required"`
	SecretKey string `validate:"required"`
	Bucket    string `validate:"required"`
	UseSSL    bool
}

// S3Config holds settings for AWS S3 or an S3-compatible endpoint.
// Credentials fall back to the default AWS chain when AccessKey is empty.
type S3Config struct {
	Region       string `validate:"required"`
	Bucket       string `validate:"required"`
	Endpoint     string `validate:"omitempty,url"`
	AccessKey    string `validate:"required_with=SecretKey"`
	SecretKey    string `validate:"required_with=AccessKey"`
	UsePathStyle bool
}

// StorageConfig selects and configures the object storage backend.
// Only the section matching Driver is validated.
type StorageConfig struct {
	Driver     string        `validate:"oneof=minio s3 filesystem memory"`
	MinIO      MinIOConfig   `validate:"-"`
	S3         S3Config      `validate:"-"`
	FSRoot     string        `validate:"-"`
	PresignTTL time.Duration `validate:"gte=0"`
}

// AuthConfig holds session token and password hashing settings.
type AuthConfig struct {
	JWTSecret    string        `validate:"required,min=16"`
	TokenTTL     time.Duration `validate:"gt=0"`
	BcryptCost   int           `validate:"gte=4,lte=31"`
	CookieSecure bool
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string `validate:"required,numeric"`

	// PublicListingAnonymous lets unauthenticated callers list public documents.
	PublicListingAnonymous bool
	UploadMaxBytes         int `validate:"gt=0"`

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Database DatabaseConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:                getEnv("APP_HOST", "localhost:8080"),
		Port:                   getEnv("PORT", "8080"),
		PublicListingAnonymous: getEnvBool("PUBLIC_LISTING_ANONYMOUS", false),
		UploadMaxBytes:         getEnvInt("UPLOAD_MAX_BYTES", 16<<20),
		ReadTimeout:            getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:           getEnvDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:            getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:        getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
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
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "minio"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Region:       getEnv("S3_REGION", "us-east-1"),
				Bucket:       getEnv("S3_BUCKET", ""),
				Endpoint:     getEnv("S3_ENDPOINT", ""),
				AccessKey:    getEnv("S3_ACCESS_KEY", ""),
				SecretKey:    getEnv("S3_SECRET_KEY", ""),
				UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", false),
			},
			FSRoot:     getEnv("STORAGE_FS_ROOT", "./static"),
			PresignTTL: getEnvDuration("STORAGE_PRESIGN_TTL", 0),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvDuration("JWT_TTL", 24*time.Hour),
			BcryptCost:   getEnvInt("BCRYPT_COST", 10),
			CookieSecure: getEnvBool("AUTH_COOKIE_SECURE", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Address is the listen address for the HTTP server.
func (c *AppConfig) Address() string {
	return ":" + c.Port
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

// getEnvDuration accepts Go duration strings ("90s", "24h") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
