package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != defaultPort || !cfg.IsDev() || cfg.Storage.Driver != StorageMemory {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Auth.TokenMode != TokenModeSecret || cfg.Auth.TokenTTL != defaultTokenTTL {
		t.Fatalf("unexpected auth defaults %+v", cfg.Auth)
	}
	if cfg.Backup.Interval != defaultBackupInterval {
		t.Fatalf("backup interval = %v", cfg.Backup.Interval)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: Production
allowed_origins: [" https://example.com ", ""]
storage:
  driver: SQL
database:
  driver: postgresql
  host: db.internal
  user: folio
  password: pw
  name: folio
auth:
  admin_secret: " s3cret "
  token_ttl: 2h
analytics:
  retention_days: 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.IsDev() {
		t.Fatalf("unexpected port/env %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://example.com" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.Storage.Driver != StorageSQL || cfg.Database.Driver != DriverPostgres || cfg.Database.Port != 5432 {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Auth.AdminSecret != "s3cret" || cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("auth = %+v", cfg.Auth)
	}
	if cfg.Analytics.RetentionDays != 30 {
		t.Fatalf("retention = %d", cfg.Analytics.RetentionDays)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "prot: 1\n", "field prot not found"},
		{"bad port", "port: 70000\n", "invalid port"},
		{"bad storage", "storage:\n  driver: mongo\n", "unknown storage.driver"},
		{"bad token mode", "auth:\n  token_mode: magic\n", "unknown auth.token_mode"},
		{"production without secret", "env: production\n", "must be set in production"},
		{"jwt without signing key", "auth:\n  token_mode: jwt\n", "required to sign jwt tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":           "9000",
		"APP_ENV":        "production",
		"ADMIN_PASSWORD": "from-password",
		"ADMIN_SECRET":   "admin123",
		"DATABASE_URL":   "postgres://u:p@localhost:5432/folio",
		"REDIS_URL":      "localhost:6379",
	}
	cfg := defaultAppConfig()
	applyEnv(&cfg, func(k string) string { return env[k] })
	normalize(&cfg)

	if cfg.Port != 9000 || cfg.Env != "production" {
		t.Fatalf("port/env = %d/%s", cfg.Port, cfg.Env)
	}
	if cfg.Auth.AdminSecret != "admin123" {
		t.Fatalf("ADMIN_SECRET should win over ADMIN_PASSWORD, got %q", cfg.Auth.AdminSecret)
	}
	if cfg.Storage.Driver != StorageSQL || cfg.Database.Driver != DriverPostgres {
		t.Fatalf("DATABASE_URL not applied: %+v", cfg.Database)
	}
	if cfg.Redis.URL != "redis://localhost:6379" {
		t.Fatalf("redis url = %q", cfg.Redis.URL)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPasswordHashImpliesJWT(t *testing.T) {
	cfg := defaultAppConfig()
	cfg.Auth.PasswordHash = "$2a$10$abc"
	normalize(&cfg)
	if cfg.Auth.TokenMode != TokenModeJWT {
		t.Fatalf("token mode = %q", cfg.Auth.TokenMode)
	}
}

func TestInferDriver(t *testing.T) {
	tests := map[string]string{
		"postgres://u@h/db":                 DriverPostgres,
		"postgresql://u@h/db":               DriverPostgres,
		"file:folio.db?cache=shared":        DriverSQLite,
		"data/folio.db":                     DriverSQLite,
		"root:pw@tcp(127.0.0.1:3306)/folio": DriverMySQL,
		"something-unrecognisable":          "fallback",
	}
	for dsn, want := range tests {
		if got := inferDriver(dsn, "fallback"); got != want {
			t.Errorf("inferDriver(%q) = %q, want %q", dsn, got, want)
		}
	}
}

func TestDSNValue(t *testing.T) {
	mysqlCfg := normalizeDatabaseConfig(DatabaseConfig{
		Driver: DriverMySQL, User: "root", Password: "pw", Name: "folio", ParseTime: true,
	})
	dsn := mysqlCfg.DSNValue()
	for _, part := range []string{"root:pw@tcp(127.0.0.1:3306)/folio", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("mysql dsn %q missing %q", dsn, part)
		}
	}
	if strings.Contains(mysqlCfg.Redacted(), "pw@") {
		t.Errorf("redacted dsn leaks password: %s", mysqlCfg.Redacted())
	}

	pg := normalizeDatabaseConfig(DatabaseConfig{
		Driver: DriverPostgres, User: "folio", Password: "pw", Name: "folio",
	})
	if got := pg.DSNValue(); got != "postgres://folio:pw@127.0.0.1:5432/folio?sslmode=disable" {
		t.Errorf("postgres dsn = %q", got)
	}

	sqlite := normalizeDatabaseConfig(DatabaseConfig{Driver: "sqlite3"})
	if sqlite.Driver != DriverSQLite || sqlite.DSNValue() != defaultSQLitePath {
		t.Errorf("sqlite = %+v / %q", sqlite, sqlite.DSNValue())
	}

	explicit := DatabaseConfig{Driver: DriverMySQL, DSN: "custom"}
	if explicit.DSNValue() != "custom" {
		t.Error("explicit dsn should win")
	}
}
