package repository

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/configs"
	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configs.ConnectDB(configs.DBConfig{
		Driver:       "sqlite",
		Source:       filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) entity.Customer {
	t.Helper()
	c := entity.Customer{FullName: "Ana Lima", Email: email, Phone: "111", Address: "1 Old Road"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedMenu(t *testing.T, db *gorm.DB, name, price string) entity.Menu {
	t.Helper()
	m := entity.Menu{Name: name, Price: decimal.RequireFromString(price), Category: "bowls"}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedAgent(t *testing.T, db *gorm.DB, username string) entity.DeliveryUser {
	t.Helper()
	u := entity.DeliveryUser{Username: username, FullName: "Rider " + username}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
