package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kulugbekwork/lema/internal/logger"
)

// ErrNotFound is returned by repositories when a referenced record does not
// exist, so callers branch on one sentinel instead of gorm's.
var ErrNotFound = errors.New("record not found")

// Store holds the gorm handle and provides access to repositories.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the database and runs auto-migration. dsn selects the
// backend: a postgres:// URL opens Postgres (the hosted deployment),
// anything else is treated as a SQLite file path (the local default).
func Open(dsn string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		if err := EnsureDir(dsn); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		// WAL + busy timeout keep the TUI and serve paths from tripping
		// over each other on the same file.
		dialector = sqlite.Open(dsn + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&Profile{},
		&Course{},
		&Module{},
		&Lesson{},
		&Slide{},
		&Question{},
		&Answer{},
		&Progress{},
		&AICall{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, log: log.With("component", "store")}, nil
}

// DB returns the underlying gorm handle for raw access.
func (s *Store) DB() *gorm.DB { return s.db }

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Profiles() ProfileRepo     { return &profileRepo{db: s.db} }
func (s *Store) Courses() CourseRepo       { return &courseRepo{db: s.db} }
func (s *Store) Lessons() LessonRepo       { return &lessonRepo{db: s.db} }
func (s *Store) Answers() AnswerRepo       { return &answerRepo{db: s.db} }
func (s *Store) Progresses() ProgressRepo  { return &progressRepo{db: s.db} }
func (s *Store) AICalls() AICallRepo       { return &aiCallRepo{db: s.db, log: s.log} }

// Reset wipes all learning data and zeroes profile counters. The AI
// call audit log is kept.
func (s *Store) Reset(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	for _, model := range []any{
		&Answer{}, &Progress{}, &Slide{}, &Question{},
		&Lesson{}, &Module{}, &Course{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return db.Model(&Profile{}).Where("1 = 1").Update("courses_created", 0).Error
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DefaultDSN resolves the data source in priority order:
// 1. LEMA_DATABASE_URL (Postgres)
// 2. LEMA_DB (SQLite file path)
// 3. $XDG_DATA_HOME/lema/lema.db
// 4. ~/.local/share/lema/lema.db
func DefaultDSN() (string, error) {
	if u := os.Getenv("LEMA_DATABASE_URL"); u != "" {
		return u, nil
	}
	if p := os.Getenv("LEMA_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "lema", "lema.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// notFound maps gorm's sentinel to the store's.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
