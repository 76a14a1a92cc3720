package storage

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDialect(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantDriver string
		wantDSN    string
		check      func(t *testing.T, dsn string)
		wantErr    bool
	}{
		{
			name:       "postgres",
			url:        "postgres://app:secret@db:5432/slides?sslmode=disable",
			wantDriver: "pgx",
			wantDSN:    "postgres://app:secret@db:5432/slides?sslmode=disable",
		},
		{
			name:       "postgresql alias",
			url:        "postgresql://db/slides",
			wantDriver: "pgx",
			wantDSN:    "postgresql://db/slides",
		},
		{
			name:       "mysql default port",
			url:        "mysql://app:secret@db/slides",
			wantDriver: "mysql",
			check: func(t *testing.T, dsn string) {
				cfg, err := mysql.ParseDSN(dsn)
				require.NoError(t, err)
				assert.Equal(t, "app", cfg.User)
				assert.Equal(t, "secret", cfg.Passwd)
				assert.Equal(t, "db:3306", cfg.Addr)
				assert.Equal(t, "slides", cfg.DBName)
				assert.True(t, cfg.ParseTime)
				assert.Contains(t, dsn, "charset=utf8mb4")
			},
		},
		{
			name:       "sqlite absolute path",
			url:        "sqlite:///var/data/agenda.db",
			wantDriver: "sqlite",
			wantDSN:    "/var/data/agenda.db?_pragma=busy_timeout(5000)&_txlock=immediate",
		},
		{
			name:       "sqlite file uri keeps params",
			url:        "file:agenda.db?mode=rwc",
			wantDriver: "sqlite",
			wantDSN:    "file:agenda.db?mode=rwc&_pragma=busy_timeout(5000)&_txlock=immediate",
		},
		{
			name:    "no scheme",
			url:     "agenda.db",
			wantErr: true,
		},
		{
			name:    "unknown scheme",
			url:     "mongodb://db/slides",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dsn, err := resolveDialect(tt.url)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedScheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, d.driver)
			if tt.check != nil {
				tt.check(t, dsn)
				return
			}
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestDialectsSerializeSeeding(t *testing.T) {
	assert.NotEmpty(t, postgresDialect.lockTable)
	assert.Contains(t, mysqlDialect.countRows, "FOR UPDATE")
	assert.Contains(t, sqliteDSN("x.db"), "_txlock=immediate")
}
