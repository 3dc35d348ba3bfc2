package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	StorageMemory = "memory"
	StorageSQL    = "sql"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	TokenModeSecret = "secret"
	TokenModeJWT    = "jwt"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultPGPort     = 5432
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "folio"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLitePath = "data/folio.db"

	defaultTokenTTL       = 24 * time.Hour
	defaultBackupInterval = 24 * time.Hour
	defaultMailPort       = 587
)
