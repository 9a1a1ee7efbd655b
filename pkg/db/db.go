package db

import (
	"errors"

	"github.com/railzwaylabs/billingkit/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrMissingDSN = errors.New("database dsn not configured")

func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		return nil, ErrMissingDSN
	}

	gdb, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	log.Named("db").Info("database connection established")
	return gdb, nil
}
