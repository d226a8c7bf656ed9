package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Dosada05/group-stage/db"
	"github.com/Dosada05/group-stage/storage"
)

const (
	defaultDriver          = "sqlite"
	defaultSQLitePath      = "tournament.db"
	defaultServerPort      = 8080
	defaultTopScorersLimit = 10
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseDriver     string
	DatabaseURL        string
	Dialect            db.Dialect
	JWTSecretKey       string
	AdminPasswordHash  string
	ServerPort         int
	CORSAllowedOrigins []string
	TopScorersLimit    int
	R2                 storage.R2Config
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	driver := strings.ToLower(strings.TrimSpace(getenv("DATABASE_DRIVER")))
	if driver == "" {
		driver = defaultDriver
	}
	dialect, err := db.DialectForDriver(driver)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_DRIVER environment variable: %w", err)
	}

	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		if dialect != db.DialectSQLite {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		dbURL = defaultSQLitePath
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intFromEnv(getenv, "SERVER_PORT", defaultServerPort)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	limit, err := intFromEnv(getenv, "TOP_SCORERS_LIMIT", defaultTopScorersLimit)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, fmt.Errorf("TOP_SCORERS_LIMIT must be positive, got %d", limit)
	}

	r2 := storage.R2Config{
		AccountID:       getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
	}

	return &Config{
		DatabaseDriver:     driver,
		DatabaseURL:        dbURL,
		Dialect:            dialect,
		JWTSecretKey:       jwtKey,
		AdminPasswordHash:  getenv("ADMIN_PASSWORD_HASH"),
		ServerPort:         port,
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS"), "*"),
		TopScorersLimit:    limit,
		R2:                 r2,
	}, nil
}

func intFromEnv(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func splitList(raw, def string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{def}
	}
	return out
}
