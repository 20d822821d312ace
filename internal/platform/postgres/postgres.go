package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOrFallback dials PostgreSQL when dsn is set and returns the DB plus a
// cleanup function. When dsn is empty or the connection fails, it logs and
// returns nil with a no-op cleanup so the caller can keep reports in memory.
func ConnectOrFallback(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if strings.TrimSpace(dsn) == "" {
		logger.Debug("REPORTS_POSTGRES_DSN not set, keeping run reports in memory")
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		logger.Warn("failed to connect to postgres, keeping run reports in memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, keeping run reports in memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
