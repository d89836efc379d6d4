package configs

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

// ConnectDB opens the pool for the configured driver and applies pool limits.
func ConnectDB(cfg DBConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Source)
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.Source))
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	gcfg := &gorm.Config{TranslateError: true}
	if log != nil {
		gcfg.Logger = gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		gcfg.Logger = gormlogger.Discard
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return db, nil
}

// sqlite needs foreign keys switched on per connection.
func sqliteDSN(source string) string {
	if source == "" {
		source = "healthybites.db"
	}
	params := []string{}
	if !strings.Contains(source, "_foreign_keys") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(source, "_busy_timeout") {
		params = append(params, "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + strings.Join(params, "&")
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Customer{}, &entity.Admin{}, &entity.DeliveryUser{},
		&entity.Menu{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.DeliveryHistory{},
		&entity.Favorite{},
	)
}
