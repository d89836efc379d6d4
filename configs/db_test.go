package configs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_foreign_keys=1&_busy_timeout=10", sqliteDSN("a.db?_foreign_keys=1&_busy_timeout=10"))
}

func TestConnectAndMigrate(t *testing.T) {
	db, err := ConnectDB(DBConfig{Driver: "sqlite", Source: filepath.Join(t.TempDir(), "t.db"), MaxOpenConns: 4}, nil)
	require.NoError(t, err)
	require.NoError(t, SetupDatabase(db))

	for _, table := range []string{"customers", "admins", "delivery_users", "menu", "orders", "order_items", "delivery_history", "favorites"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	_, err = ConnectDB(DBConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}
