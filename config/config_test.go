package config

import (
	"reflect"
	"testing"

	"github.com/Dosada05/group-stage/db"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromEnv(envMap(map[string]string{"JWT_SECRET_KEY": "secret"}))
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.Dialect != db.DialectSQLite {
		t.Errorf("driver = %q dialect = %q, want sqlite", cfg.DatabaseDriver, cfg.Dialect)
	}
	if cfg.DatabaseURL != defaultSQLitePath {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, defaultSQLitePath)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.TopScorersLimit != 10 {
		t.Errorf("TopScorersLimit = %d, want 10", cfg.TopScorersLimit)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.R2.Enabled() {
		t.Error("R2 should be disabled when no R2_* variable is set")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromEnv(envMap(map[string]string{
		"DATABASE_DRIVER":      "PGX",
		"DATABASE_URL":         "postgres://localhost/cup",
		"JWT_SECRET_KEY":       "secret",
		"SERVER_PORT":          "9090",
		"TOP_SCORERS_LIMIT":    "3",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
		"R2_BUCKET_NAME":       "reports",
	}))
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}
	if cfg.DatabaseDriver != "pgx" || cfg.Dialect != db.DialectPostgres {
		t.Errorf("driver = %q dialect = %q, want pgx/postgres", cfg.DatabaseDriver, cfg.Dialect)
	}
	if cfg.ServerPort != 9090 || cfg.TopScorersLimit != 3 {
		t.Errorf("ServerPort = %d TopScorersLimit = %d", cfg.ServerPort, cfg.TopScorersLimit)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, want)
	}
	if !cfg.R2.Enabled() {
		t.Error("R2 should be enabled once any R2_* variable is set")
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_SECRET_KEY": "s", "DATABASE_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"JWT_SECRET_KEY": "s", "DATABASE_DRIVER": "postgres"}},
		{"bad port", map[string]string{"JWT_SECRET_KEY": "s", "SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"JWT_SECRET_KEY": "s", "SERVER_PORT": "70000"}},
		{"zero limit", map[string]string{"JWT_SECRET_KEY": "s", "TOP_SCORERS_LIMIT": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := fromEnv(envMap(tt.env)); err == nil {
				t.Fatal("fromEnv() error = nil, want error")
			}
		})
	}
}
