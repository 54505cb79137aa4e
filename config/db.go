package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Dialect names the SQL backend chosen from the configuration.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ResolveDSN picks the dialect and driver DSN. A mysql:// or postgres:// URL
// wins, then DB_HOST style parts for MySQL, then the SQLite file path.
func (c *AppConfig) ResolveDSN() (Dialect, string, error) {
	raw := c.DatabaseURL
	switch {
	case strings.HasPrefix(raw, "mysql://"):
		dsn, err := mysqlDSNFromURL(raw)
		return DialectMySQL, dsn, err
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DialectPostgres, raw, nil
	case raw != "":
		// a bare go-sql-driver DSN such as user:pass@tcp(host:3306)/db
		if _, err := mysqldriver.ParseDSN(raw); err != nil {
			return "", "", fmt.Errorf("unrecognised DATABASE_URL: %w", err)
		}
		return DialectMySQL, raw, nil
	case c.MySQL.configured():
		return DialectMySQL, mysqlDSNFromParts(c.MySQL), nil
	default:
		return DialectSQLite, c.SQLitePath, nil
	}
}

func newMySQLConfig() *mysqldriver.Config {
	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func mysqlDSNFromParts(p MySQLParts) string {
	cfg := newMySQLConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Addr = net.JoinHostPort(p.Host, p.Port)
	cfg.DBName = p.Name
	return cfg.FormatDSN()
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	cfg := newMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = dbName
	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "parseTime", "loc":
			// always parseTime=true in the local zone
		default:
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}

// ConnectDatabase opens gorm on the configured dialect with its logger routed
// through log.
func ConnectDatabase(cfg *AppConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialect, dsn, err := cfg.ResolveDSN()
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogLevel(log.GetLevel()),
		IgnoreRecordNotFoundError: true,
	})

	var dialector gorm.Dialector
	switch dialect {
	case DialectMySQL:
		dialector = mysql.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn})
	}

	log.Infof("🗄️  Connecting to %s", dialect)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// one writer; also keeps a :memory: database alive across calls
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func gormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
