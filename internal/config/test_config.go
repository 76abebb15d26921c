package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests.
// Tests run against a SQLite file unless TEST_DB_PATH points elsewhere,
// and against local blob storage unless TEST_MEDIA_BASE_PATH is set.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   os.Getenv("TEST_DB_PATH"),
		},
		Logging: LoggingConfig{Level: "debug"},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		JWT: JWTConfig{
			Secret:             os.Getenv("TEST_JWT_SECRET"),
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Blob: BlobConfig{
			Driver:        BlobDriverLocal,
			Bucket:        "materials",
			BasePath:      os.Getenv("TEST_MEDIA_BASE_PATH"),
			PublicBaseURL: "http://localhost:8080",
		},
		SubjectCache:    SubjectCacheConfig{Size: 16, TTL: time.Minute},
		ConsistencyMode: ConsistencyBestEffort,
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "integration-test-secret"
	}

	return cfg, nil
}
