package database

import (
	"context"
	"fmt"

	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/models"
	"github.com/tanisha366/backened/internal/repository"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func connectSQL(ctx context.Context, cfg *config.Config) (*Storage, error) {
	db, err := OpenSQL(cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.StorageDriver, err)
	}

	if err := EnsureSchema(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Log.Info("SQL database connected successfully", zap.String("driver", cfg.StorageDriver))

	return &Storage{
		Messages: repository.NewGormMessageRepository(db),
		closeFn: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

// OpenSQL opens a gorm handle for the postgres or sqlite driver
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}

// EnsureSchema creates the messages table when it does not exist yet
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Message{}); err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}
	return nil
}
