package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the connection string for the configured dialect. An explicit
// dsn always wins; otherwise one is assembled from host/port/user/password/name.
func (c DatabaseConfig) DSNValue() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case DriverSQLite:
		return defaultSQLitePath
	case DriverPostgres:
		return c.postgresURL()
	default:
		return c.mysqlDSN()
	}
}

func (c DatabaseConfig) mysqlDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = c.ParseTime
	if loc, err := time.LoadLocation(c.Loc); err == nil {
		mc.Loc = loc
	}
	mc.Params = map[string]string{"charset": c.Charset}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

func (c DatabaseConfig) postgresURL() string {
	params := neturl.Values{}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	if params.Get("sslmode") == "" {
		params.Set("sslmode", "disable")
	}
	u := neturl.URL{
		Scheme:   "postgres",
		User:     neturl.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: params.Encode(),
	}
	return u.String()
}

// Redacted hides the password portion of a DSN for logging.
func (c DatabaseConfig) Redacted() string {
	dsn := c.DSNValue()
	switch c.Driver {
	case DriverSQLite:
		return dsn
	case DriverPostgres:
		if u, err := neturl.Parse(dsn); err == nil {
			return u.Redacted()
		}
		return "postgres://***"
	default:
		if mc, err := mysql.ParseDSN(dsn); err == nil {
			mc.Passwd = "***"
			return mc.FormatDSN()
		}
		return fmt.Sprintf("mysql://%s", c.Host)
	}
}
