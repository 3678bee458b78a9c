package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/project-console/internal/core/datamodel/localstorage"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Storage keeps the session in a local sqlite file.
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStorage(db *gorm.DB, logger *slog.Logger) *Storage {
	return &Storage{db: db, logger: logger}
}

// Open creates path's directory if needed, opens the database and brings
// its schema up to date.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	return NewStorage(db, logger), nil
}

func OpenDB(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	return db, nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return runGoose(ctx, db, "up")
}

// Rollback undoes the latest migration.
func Rollback(ctx context.Context, db *gorm.DB) error {
	return runGoose(ctx, db, "down")
}

func runGoose(ctx context.Context, db *gorm.DB, direction string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("session database handle: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	switch direction {
	case "down":
		err = goose.DownContext(ctx, sqlDB, migrationsDir)
	default:
		err = goose.UpContext(ctx, sqlDB, migrationsDir)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", direction, err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var entry localstorage.Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("failed to read local storage", "key", key, "error", err)
		return "", false, err
	}
	return entry.Value, true, nil
}

// SetMany upserts every value in one transaction.
func (s *Storage) SetMany(ctx context.Context, values map[string]string) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			entry := localstorage.Entry{Key: key, Value: value, UpdatedAt: now}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error
			if err != nil {
				s.logger.Error("failed to write local storage", "key", key, "error", err)
				return err
			}
		}
		return nil
	})
}

func (s *Storage) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&localstorage.Entry{}).Error; err != nil {
		s.logger.Error("failed to remove local storage keys", "keys", keys, "error", err)
		return err
	}
	return nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
