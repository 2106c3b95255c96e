package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

const maxRetries = 3

// SQLiteRepository implements ports.Store using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.Store = (*SQLiteRepository)(nil)

// gormLogger wraps the pomar logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

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
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
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

func newGormLogger(debug bool) logger.Interface {
	if debug {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// schema is applied on every open; statements are idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('work','short_break','long_break')),
		status TEXT NOT NULL CHECK (status IN ('idle','running','paused','completed','cancelled')),
		planned_duration_seconds INTEGER NOT NULL CHECK (planned_duration_seconds > 0),
		actual_duration_seconds INTEGER NOT NULL DEFAULT 0,
		completed_work_count_in_cycle INTEGER NOT NULL DEFAULT 0,
		early_completion INTEGER NOT NULL DEFAULT 0,
		rating INTEGER CHECK (rating IS NULL OR rating BETWEEN 1 AND 5),
		xp_earned INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_started ON sessions(user_id, started_at)`,
	// At most one running or paused session per user
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active ON sessions(user_id) WHERE status IN ('running','paused')`,
	`CREATE TABLE IF NOT EXISTS session_pauses (
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		start_at DATETIME NOT NULL,
		end_at DATETIME,
		PRIMARY KEY (session_id, position),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS distractions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		type TEXT NOT NULL,
		occurred_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_distractions_user_occurred ON distractions(user_id, occurred_at)`,
	`CREATE INDEX IF NOT EXISTS idx_distractions_session ON distractions(session_id)`,
	`CREATE TABLE IF NOT EXISTS progression (
		user_id TEXT PRIMARY KEY,
		xp_total INTEGER NOT NULL DEFAULT 0 CHECK (xp_total >= 0),
		level INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
		applied_ref TEXT NOT NULL DEFAULT '',
		updated_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS streaks (
		user_id TEXT PRIMARY KEY,
		current_streak_days INTEGER NOT NULL DEFAULT 0,
		longest_streak_days INTEGER NOT NULL DEFAULT 0,
		last_activity_date TEXT NOT NULL DEFAULT '',
		next_milestone_days INTEGER NOT NULL DEFAULT 0,
		applied_ref TEXT NOT NULL DEFAULT '',
		updated_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS weekly_goals (
		user_id TEXT PRIMARY KEY,
		week_start_date TEXT NOT NULL,
		target_tasks INTEGER NOT NULL,
		target_sessions INTEGER NOT NULL,
		completed_tasks INTEGER NOT NULL DEFAULT 0,
		completed_sessions INTEGER NOT NULL DEFAULT 0,
		goal_met INTEGER NOT NULL DEFAULT 0,
		applied_ref TEXT NOT NULL DEFAULT '',
		updated_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS reward_grants (
		grant_key TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		source TEXT NOT NULL,
		source_id TEXT NOT NULL,
		start_level INTEGER NOT NULL,
		occurred_at DATETIME NOT NULL,
		streak_days INTEGER NOT NULL DEFAULT 0,
		milestone_days INTEGER NOT NULL DEFAULT 0,
		weekly_goal_met INTEGER NOT NULL DEFAULT 0,
		weekly_progress_percent REAL NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS reward_grant_steps (
		grant_key TEXT NOT NULL,
		step TEXT NOT NULL,
		xp INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (grant_key, step),
		FOREIGN KEY (grant_key) REFERENCES reward_grants(grant_key) ON DELETE CASCADE
	)`,
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath
func NewSQLiteRepository(dbPath string, debug bool) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Connection pragmas go in the DSN so every pooled connection gets them
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Opened state database", "path", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryForPath creates a SQLiteRepository inside a POMAR_HOME directory
func NewSQLiteRepositoryForPath(homePath string, debug bool) (*SQLiteRepository, error) {
	return NewSQLiteRepository(filepath.Join(homePath, "state.db"), debug)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withRetry retries fn while SQLite reports the database as busy or locked.
// Unique constraint violations surface as domain.ErrConflict.
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
				time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
				continue
			}
			if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
				return fmt.Errorf("%w: %v", domain.ErrConflict, err)
			}
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
