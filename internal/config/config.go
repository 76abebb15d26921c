// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Supported blob storage drivers
const (
	BlobDriverLocal = "local"
	BlobDriverMinIO = "minio"
)

// Consistency modes for the two-step upload and delete workflows
const (
	ConsistencyBestEffort   = "best-effort"
	ConsistencyCompensating = "compensating"
)

// Config holds all configuration for the application
type Config struct {
	Database        DatabaseConfig
	Server          ServerConfig
	Logging         LoggingConfig
	CORS            CORSConfig
	JWT             JWTConfig
	Blob            BlobConfig
	MinIO           MinIOConfig
	SubjectCache    SubjectCacheConfig
	ConsistencyMode string
	CookieSecure    bool
	SessionFile     string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Path     string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// BlobConfig holds blob storage settings
type BlobConfig struct {
	Driver        string
	Bucket        string
	BasePath      string
	PublicBaseURL string
}

// MinIOConfig holds MinIO connection settings
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	PublicURL       string
}

// SubjectCacheConfig holds subject suggestion cache settings
type SubjectCacheConfig struct {
	Size int
	TTL  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	if err := loadDatabase(cfg); err != nil {
		return nil, err
	}

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	accessExpiry, err := durationEnv("JWT_ACCESS_TOKEN_EXPIRY", "1h")
	if err != nil {
		return nil, err
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	refreshExpiry, err := durationEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h") // 7 days
	if err != nil {
		return nil, err
	}
	cfg.JWT.RefreshTokenExpiry = refreshExpiry

	if err := loadBlob(cfg); err != nil {
		return nil, err
	}

	// Subject cache configuration
	cacheSizeStr := os.Getenv("SUBJECT_CACHE_SIZE")
	if cacheSizeStr == "" {
		cacheSizeStr = "64"
	}
	cacheSize, err := strconv.Atoi(cacheSizeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SUBJECT_CACHE_SIZE: %w", err)
	}
	cfg.SubjectCache.Size = cacheSize

	cacheTTL, err := durationEnv("SUBJECT_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.SubjectCache.TTL = cacheTTL

	// Consistency mode for upload/delete
	mode := os.Getenv("CONSISTENCY_MODE")
	if mode == "" {
		mode = ConsistencyBestEffort
	}
	if mode != ConsistencyBestEffort && mode != ConsistencyCompensating {
		return nil, fmt.Errorf("invalid CONSISTENCY_MODE: %s, must be '%s' or '%s'", mode, ConsistencyBestEffort, ConsistencyCompensating)
	}
	cfg.ConsistencyMode = mode

	cookieSecureStr := os.Getenv("COOKIE_SECURE")
	if cookieSecureStr == "" {
		cookieSecureStr = "true"
	}
	cookieSecure, err := strconv.ParseBool(cookieSecureStr)
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = cookieSecure

	// Session file for the CLI (optional)
	cfg.SessionFile = os.Getenv("NOTES_SESSION_FILE")

	return cfg, nil
}

// loadDatabase reads database settings. MySQL settings are required only for the mysql driver.
func loadDatabase(cfg *Config) error {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverMySQL
	}
	cfg.Database.Driver = driver

	switch driver {
	case DriverSQLite:
		dbPath := os.Getenv("DB_PATH")
		if dbPath == "" {
			dbPath = "notespath.db"
		}
		cfg.Database.Path = dbPath
		return nil
	case DriverMySQL:
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s, must be '%s' or '%s'", driver, DriverMySQL, DriverSQLite)
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	return nil
}

// loadBlob reads blob storage settings
func loadBlob(cfg *Config) error {
	driver := os.Getenv("BLOB_DRIVER")
	if driver == "" {
		driver = BlobDriverLocal
	}
	cfg.Blob.Driver = driver

	bucket := os.Getenv("BLOB_BUCKET")
	if bucket == "" {
		bucket = "materials"
	}
	cfg.Blob.Bucket = bucket

	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	cfg.Blob.PublicBaseURL = strings.TrimRight(publicBaseURL, "/")

	switch driver {
	case BlobDriverLocal:
		basePath := os.Getenv("MEDIA_BASE_PATH")
		if basePath == "" {
			return fmt.Errorf("MEDIA_BASE_PATH is required")
		}
		cfg.Blob.BasePath = basePath
	case BlobDriverMinIO:
		endpoint := os.Getenv("MINIO_ENDPOINT")
		if endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required")
		}
		cfg.MinIO.Endpoint = endpoint

		accessKey := os.Getenv("MINIO_ACCESS_KEY")
		if accessKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY is required")
		}
		cfg.MinIO.AccessKeyID = accessKey

		secretKey := os.Getenv("MINIO_SECRET_KEY")
		if secretKey == "" {
			return fmt.Errorf("MINIO_SECRET_KEY is required")
		}
		cfg.MinIO.SecretAccessKey = secretKey

		useSSLStr := os.Getenv("MINIO_USE_SSL")
		if useSSLStr == "" {
			useSSLStr = "false"
		}
		useSSL, err := strconv.ParseBool(useSSLStr)
		if err != nil {
			return fmt.Errorf("invalid MINIO_USE_SSL: %w", err)
		}
		cfg.MinIO.UseSSL = useSSL

		cfg.MinIO.PublicURL = strings.TrimRight(os.Getenv("MINIO_PUBLIC_URL"), "/") // optional
	default:
		return fmt.Errorf("invalid BLOB_DRIVER: %s, must be '%s' or '%s'", driver, BlobDriverLocal, BlobDriverMinIO)
	}

	return nil
}

// parseOrigins parses comma-separated CORS origins, allowing all origins when none are given
func parseOrigins(corsOrigins string) []string {
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	// If no valid origins found, default to allow all
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}

// durationEnv reads a duration variable with a default value
func durationEnv(key, def string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// DSN returns the database connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.Path
	}
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
