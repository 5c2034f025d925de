package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fixed key shared by every instance racing to migrate
const migrateLockID int64 = 20260222

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)
	return db, nil
}

// OpenSQLite opens an embedded database. ":memory:" keeps a single
// connection so every query sees the same database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates the service's tables. On postgres it holds an advisory
// lock on one pinned connection for the duration.
func Migrate(ctx context.Context, db *gorm.DB) error {
	models := []any{
		&domain.User{},
		&domain.Scholarship{},
		&domain.Submission{},
		&domain.Payment{},
		&domain.Review{},
	}

	if db.Dialector.Name() != "postgres" {
		return db.WithContext(ctx).AutoMigrate(models...)
	}

	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock error: %w", err)
		}
		defer conn.Exec("SELECT pg_advisory_unlock(?)", migrateLockID)

		if err := conn.AutoMigrate(models...); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		return nil
	})
}

func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Kind:         db.Dialector.Name(),
		Users:        NewUserRepository(db),
		Scholarships: NewScholarshipRepository(db),
		Submissions:  NewSubmissionRepository(db),
		Payments:     NewPaymentRepository(db),
		Reviews:      NewReviewRepository(db),
		PingFn: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		CloseFn: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
