package config

import (
	"context"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "MYSQL_URL", "DB_HOST", "JWT_TTL", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gorm", cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_TTL", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestEnvOrDefaultTrims(t *testing.T) {
	t.Setenv("FRONTDESK_TEST_KEY", "  value  ")
	assert.Equal(t, "value", EnvOrDefault("FRONTDESK_TEST_KEY", "x"))

	t.Setenv("FRONTDESK_TEST_KEY", "   ")
	assert.Equal(t, "x", EnvOrDefault("FRONTDESK_TEST_KEY", "x"))
}

func TestResolveDSN(t *testing.T) {
	dialect, dsn, err := (&AppConfig{SQLitePath: "frontdesk.db"}).ResolveDSN()
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, dialect)
	assert.Equal(t, "frontdesk.db", dsn)

	dialect, dsn, err = (&AppConfig{DatabaseURL: "postgres://u:p@db:5432/hotel"}).ResolveDSN()
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, dialect)
	assert.Equal(t, "postgres://u:p@db:5432/hotel", dsn)
}

func TestResolveDSNMySQL(t *testing.T) {
	tests := []struct {
		name   string
		cfg    AppConfig
		user   string
		addr   string
		dbName string
	}{
		{
			name:   "url",
			cfg:    AppConfig{DatabaseURL: "mysql://u:p@db/hotel"},
			user:   "u",
			addr:   "db:3306",
			dbName: "hotel",
		},
		{
			name:   "parts",
			cfg:    AppConfig{MySQL: MySQLParts{Host: "127.0.0.1", Port: "3307", User: "root", Password: "p", Name: "fd"}},
			user:   "root",
			addr:   "127.0.0.1:3307",
			dbName: "fd",
		},
		{
			name:   "raw dsn",
			cfg:    AppConfig{DatabaseURL: "u:p@tcp(db:3306)/hotel?parseTime=true"},
			user:   "u",
			addr:   "db:3306",
			dbName: "hotel",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, dsn, err := tt.cfg.ResolveDSN()
			require.NoError(t, err)
			assert.Equal(t, DialectMySQL, dialect)

			parsed, err := mysqldriver.ParseDSN(dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.user, parsed.User)
			assert.Equal(t, "p", parsed.Passwd)
			assert.Equal(t, tt.addr, parsed.Addr)
			assert.Equal(t, tt.dbName, parsed.DBName)
			assert.True(t, parsed.ParseTime)
		})
	}
}

func TestResolveDSNMySQLURLWithoutDatabase(t *testing.T) {
	cfg := AppConfig{DatabaseURL: "mysql://u:p@db:3306/"}
	_, _, err := cfg.ResolveDSN()
	assert.Error(t, err)
}

func TestOpenStoreSQLiteMemory(t *testing.T) {
	cfg := &AppConfig{StoreDriver: "gorm", SQLitePath: ":memory:"}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	s, closeFn, err := OpenStore(context.Background(), cfg, log)
	require.NoError(t, err)
	defer closeFn()

	rooms, err := s.Rooms().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 8)
}
