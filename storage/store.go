// Package storage persists the tune library in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"beeper/logging"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Error sentinels for tune operations
var (
	ErrTuneExists   = errors.New("tune already exists")
	ErrTuneNotFound = errors.New("tune not found")
)

// gormLogger routes GORM output through the beeper logger
type gormLogger struct {
	level logger.LogLevel
}

// LogMode sets the log level
func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

// Info logs info messages
func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

// Warn logs warn messages
func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

// Error logs error messages
func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

// Trace logs SQL queries - only in debug mode
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

// newGormLogger creates a GORM logger that respects the --debug flag
func newGormLogger() logger.Interface {
	if os.Getenv("BEEPER_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// Store provides access to the tune library
type Store struct {
	db *gorm.DB
}

// NewStore opens (creating if needed) the tune database at dbPath
func NewStore(dbPath string) (*Store, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode so a playing process and a saving process don't block each other
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&Tune{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tune schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveTune stores a new named tune. Returns ErrTuneExists if the name is taken.
func (s *Store) SaveTune(ctx context.Context, name, notes string) error {
	tune := Tune{Name: name, Notes: notes}
	if err := s.db.WithContext(ctx).Create(&tune).Error; err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
			return ErrTuneExists
		}
		return fmt.Errorf("failed to save tune: %w", err)
	}
	return nil
}

// GetTune returns the tune with the given name, or ErrTuneNotFound.
func (s *Store) GetTune(ctx context.Context, name string) (*Tune, error) {
	var tune Tune
	err := s.db.WithContext(ctx).First(&tune, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTuneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tune: %w", err)
	}
	return &tune, nil
}

// ListTunes returns all saved tunes ordered by name.
func (s *Store) ListTunes(ctx context.Context) ([]Tune, error) {
	var tunes []Tune
	if err := s.db.WithContext(ctx).Order("name").Find(&tunes).Error; err != nil {
		return nil, fmt.Errorf("failed to list tunes: %w", err)
	}
	return tunes, nil
}

// DeleteTune removes a tune by name, or returns ErrTuneNotFound.
func (s *Store) DeleteTune(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Delete(&Tune{}, "name = ?", name)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tune: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTuneNotFound
	}
	return nil
}

// RecordPlay increments a tune's play counter.
func (s *Store) RecordPlay(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Model(&Tune{}).Where("name = ?", name).
		UpdateColumn("play_count", gorm.Expr("play_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to record play: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTuneNotFound
	}
	return nil
}
