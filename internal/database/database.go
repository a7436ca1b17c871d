package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure-Go driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

func Connect(dsn string, log *zap.Logger, gormLog logger.Interface) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if gormLog == nil {
		gormLog = logger.Default.LogMode(logger.Warn)
	}
	cfg := &gorm.Config{Logger: gormLog}

	if IsPostgres(dsn) {
		log.Info("connecting to PostgreSQL")
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}

	log.Info("using SQLite for local development", zap.String("dsn", dsn))

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// DriverName returns the database/sql driver name backing db, for sqlx.
func DriverName(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "pgx"
	}
	return "sqlite"
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
