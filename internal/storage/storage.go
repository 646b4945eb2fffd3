// Package storage implements the user store on top of gorm. The engine is
// opened once from a connection string and every operation runs in its own
// transaction that is committed or rolled back before the call returns.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/magabrotheeeer/user-service/internal/models"
)

// ErrUserNotFound is returned when no row matches the requested id.
var ErrUserNotFound = errors.New("user not found")

const slowQueryThreshold = 200 * time.Millisecond

// Storage holds the gorm engine. It is safe for concurrent use.
type Storage struct {
	DB *gorm.DB
}

// New opens the store described by databaseURL and creates the users table
// if it does not exist yet.
func New(databaseURL string, log *slog.Logger) (*Storage, error) {
	const op = "storage.New"

	dialector, kind, err := Dialector(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             slowQueryThreshold,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if kind == dialectSQLite {
		// a second connection to :memory: would see an empty database
		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(&models.User{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the store answers.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"

	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateUser inserts user and reloads it so the generated id and the stored
// column values are reflected back into user.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.CreateUser"

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.First(user, user.ID).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetUserActive sets the active flag of the user with the given id.
func (s *Storage) SetUserActive(ctx context.Context, id int, active bool) error {
	const op = "storage.SetUserActive"

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, id)
		if err != nil {
			return err
		}
		return tx.Model(user).Update("active", active).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveUser physically deletes the user with the given id.
func (s *Storage) RemoveUser(ctx context.Context, id int) error {
	const op = "storage.RemoveUser"

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsersByActive returns every user whose active flag equals active,
// ordered by id.
func (s *Storage) ListUsersByActive(ctx context.Context, active bool) ([]models.User, error) {
	const op = "storage.ListUsersByActive"

	users := make([]models.User, 0)
	err := s.DB.WithContext(ctx).
		Where("active = ?", active).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func findUser(tx *gorm.DB, id int) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
