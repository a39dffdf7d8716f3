package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/config"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/logger"
)

// Open connects to the configured database, retrying while it comes up,
// and applies the pool limits.
func Open(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialector, dsn, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	gormCfg := &gorm.Config{Logger: logger.Gorm(log, cfg.Debug)}

	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}
	var conn *gorm.DB
	for i := 0; i < retries; i++ {
		conn, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		log.WithError(err).Warnf("Database connection attempt %d/%d failed", i+1, retries)
		if i < retries-1 {
			time.Sleep(cfg.RetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	log.WithFields(logrus.Fields{
		"driver": cfg.Driver,
		"dsn":    MaskDSN(dsn),
	}).Info("Connected to database")
	return conn, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		dsn := SQLiteDSN(cfg.ConnString())
		return sqlite.Open(dsn), dsn, nil
	case config.DriverPostgres:
		dsn := ToURLDSN(NormalizeDSN(cfg.ConnString()))
		if dsn == "" {
			return nil, "", fmt.Errorf("postgres DSN is empty")
		}
		return postgres.Open(dsn), dsn, nil
	}
	return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
