package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
)

type implRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// Open connects to the sqlite database at dsn.
func Open(dsn string, log logger.Logger) (Repository, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(dsn)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// sqlite allows one writer; a single connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)

	return &implRepository{db: db, logger: log}, nil
}

// sqliteDSN accepts plain paths and sqlite:/// URLs and enables the pragmas
// the schema relies on.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite:///")
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000&_foreign_keys=on"
}

func (r *implRepository) Migrate() error {
	if err := r.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (r *implRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withTransaction runs fn in a transaction, rolling back on error or panic.
func (r *implRepository) withTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			r.logger.Error(ctx, "Transaction rolled back due to panic: %v", p)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction failed: %w, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
