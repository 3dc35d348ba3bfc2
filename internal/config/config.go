package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	Timezone       string             `yaml:"timezone"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	Storage        StorageConfig      `yaml:"storage"`
	Database       DatabaseConfig     `yaml:"database"`
	Redis          RedisConfig        `yaml:"redis"`
	Auth           AuthConfig         `yaml:"auth"`
	Mail           MailConfig         `yaml:"mail"`
	S3             S3Config           `yaml:"s3"`
	Backup         BackupConfig       `yaml:"backup"`
	Analytics      AnalyticsConfig    `yaml:"analytics"`
	Paths          RuntimePathsConfig `yaml:"paths"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // "memory" | "sql"
	File   string `yaml:"file"`   // memory snapshot path, empty keeps data in memory only
}

type DatabaseConfig struct {
	Driver    string            `yaml:"driver"` // "mysql" | "postgres" | "sqlite"
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// AuthConfig configures the admin gate.
type AuthConfig struct {
	AdminSecret  string        `yaml:"admin_secret"`
	PasswordHash string        `yaml:"password_hash"` // bcrypt
	TokenMode    string        `yaml:"token_mode"`    // "secret" | "jwt"
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

type MailConfig struct {
	Enable   bool   `yaml:"enable"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"pass"`
	From     string `yaml:"from"`
	NotifyTo string `yaml:"notify_to"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
}

type BackupConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type AnalyticsConfig struct {
	RetentionDays int `yaml:"retention_days"` // 0 keeps every event
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// Load reads the YAML file at configPath (a missing file yields defaults) and
// applies environment overrides on top.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, os.Getenv)
	normalize(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Storage: StorageConfig{
			Driver: StorageMemory,
		},
		Database: DatabaseConfig{
			Driver:    DriverMySQL,
			Password:  defaultDBPassword,
			ParseTime: true,
		},
		Auth: AuthConfig{
			TokenMode: TokenModeSecret,
			TokenTTL:  defaultTokenTTL,
		},
		Mail: MailConfig{
			Port: defaultMailPort,
		},
		Backup: BackupConfig{
			Interval: defaultBackupInterval,
		},
	}
}

// applyEnv overlays environment variables. lookup is os.Getenv in production.
func applyEnv(cfg *AppConfig, lookup func(string) string) {
	if v := strings.TrimSpace(lookup("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(lookup("APP_ENV")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(lookup("ADMIN_PASSWORD")); v != "" {
		cfg.Auth.AdminSecret = v
	}
	if v := strings.TrimSpace(lookup("ADMIN_SECRET")); v != "" {
		cfg.Auth.AdminSecret = v
	}
	if v := strings.TrimSpace(lookup("JWT_SECRET")); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(lookup("REDIS_URL")); v != "" {
		cfg.Redis.URL = v
	}
	if v := strings.TrimSpace(lookup("STORAGE_FILE")); v != "" {
		cfg.Storage.File = v
	}
	if v := strings.TrimSpace(lookup("DATABASE_URL")); v != "" {
		cfg.Storage.Driver = StorageSQL
		cfg.Database.DSN = v
		cfg.Database.Driver = inferDriver(v, cfg.Database.Driver)
	}
	if v := strings.TrimSpace(lookup("DATABASE_DRIVER")); v != "" {
		cfg.Database.Driver = v
	}
}

// inferDriver guesses the SQL dialect from a connection string.
func inferDriver(dsn, fallback string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return DriverSQLite
	case strings.Contains(lower, "@tcp("):
		return DriverMySQL
	}
	return fallback
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Storage.Driver {
	case StorageMemory, StorageSQL:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageSQL {
		switch c.Database.Driver {
		case DriverMySQL, DriverPostgres, DriverSQLite:
		default:
			return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
		}
		if c.Database.Driver != DriverSQLite && (c.Database.Port < 1 || c.Database.Port > 65535) {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
		}
	}
	switch c.Auth.TokenMode {
	case TokenModeSecret, TokenModeJWT:
	default:
		return fmt.Errorf("unknown auth.token_mode %q", c.Auth.TokenMode)
	}
	if c.Auth.TokenMode == TokenModeJWT && c.Auth.SigningKey() == "" {
		return errors.New("auth.jwt_secret or auth.admin_secret is required to sign jwt tokens")
	}
	if !c.IsDev() && c.Auth.AdminSecret == "" && c.Auth.PasswordHash == "" {
		return errors.New("auth.admin_secret or auth.password_hash must be set in production")
	}
	if c.Analytics.RetentionDays < 0 {
		return fmt.Errorf("invalid analytics.retention_days %d", c.Analytics.RetentionDays)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// SigningKey returns the key used for jwt token mode. It falls back to the
// admin secret so a single configured value is enough.
func (a AuthConfig) SigningKey() string {
	if a.JWTSecret != "" {
		return a.JWTSecret
	}
	return a.AdminSecret
}

// Enabled reports whether the S3 section carries enough to upload.
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && s.Region != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}
