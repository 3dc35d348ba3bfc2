package config

import "strings"

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Storage.File = strings.TrimSpace(cfg.Storage.File)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis.URL = normalizeRedisRawURL(cfg.Redis.URL)
	cfg.Auth = normalizeAuthConfig(cfg.Auth)
	cfg.Paths.Logs = strings.TrimSpace(cfg.Paths.Logs)
	if cfg.Backup.Interval <= 0 {
		cfg.Backup.Interval = defaultBackupInterval
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = defaultMailPort
	}
}

func normalizeDatabaseConfig(cfg DatabaseConfig) DatabaseConfig {
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Charset = strings.TrimSpace(cfg.Charset)
	cfg.Loc = strings.TrimSpace(cfg.Loc)

	if cfg.Driver == "postgresql" || cfg.Driver == "pg" {
		cfg.Driver = DriverPostgres
	}
	if cfg.Driver == "sqlite3" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Host == "" {
		cfg.Host = defaultDBHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultDBPort
		if cfg.Driver == DriverPostgres {
			cfg.Port = defaultPGPort
		}
	}
	if cfg.User == "" {
		cfg.User = defaultDBUser
	}
	if cfg.Name == "" {
		cfg.Name = defaultDBName
	}
	if cfg.Charset == "" {
		cfg.Charset = defaultDBCharset
	}
	if cfg.Loc == "" {
		cfg.Loc = defaultDBLoc
	}
	if cfg.Params != nil {
		cfg.Params = copyStringMap(cfg.Params)
	}
	return cfg
}

func normalizeAuthConfig(cfg AuthConfig) AuthConfig {
	cfg.AdminSecret = strings.TrimSpace(cfg.AdminSecret)
	cfg.PasswordHash = strings.TrimSpace(cfg.PasswordHash)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.TokenMode = strings.ToLower(strings.TrimSpace(cfg.TokenMode))
	if cfg.TokenMode == "" {
		cfg.TokenMode = TokenModeSecret
	}
	// A hashed password cannot double as the bearer token.
	if cfg.PasswordHash != "" {
		cfg.TokenMode = TokenModeJWT
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return cfg
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func copyStringMap(input map[string]string) map[string]string {
	out := make(map[string]string, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}
