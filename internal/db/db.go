// Package db opens the API database. MySQL is the production target; SQLite
// is the zero-setup default and what the tests run on.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopfront.dev/app/internal/config"
)

// Open connects with error translation on, so unique violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func Open(cfg config.Database) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dsn, err := mysqlDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		dial = mysql.Open(dsn)
	case "sqlite", "":
		dial = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.Driver)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "mysql" {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return gdb, nil
}

// Migrate creates or alters the tables for models.
func Migrate(ctx context.Context, gdb *gorm.DB, models ...any) error {
	if len(models) == 0 {
		return errors.New("no models to migrate")
	}
	return gdb.WithContext(ctx).AutoMigrate(models...)
}

func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// mysqlDSN forces the options the models rely on: time.Time scanning and
// UTC timestamps.
func mysqlDSN(raw string) (string, error) {
	mc, err := mysqldrv.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("parse DB_DSN: %w", err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN(), nil
}

// IsDuplicateKey reports a unique-key violation, translated or raw MySQL 1062.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqldrv.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
