// Package store implements the user repository on GORM. It is the only
// package that touches the database; activities call it and everything
// above them sees plain domain values. Concurrency control is delegated
// to the database itself (unique constraints, row locks), which is why
// Create translates a uniqueness violation into domain.ErrDuplicateUser
// instead of failing opaquely.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ahrav/go-userflow/internal/domain"
)

// userModel is the database mapping for a user row. Soft delete is a
// non-null deleted_on: GORM excludes such rows from every normal query
// while the row itself persists for audit.
type userModel struct {
	ID            int64          `gorm:"primaryKey"`
	Name          string         `gorm:"size:255"`
	Email         string         `gorm:"uniqueIndex;size:255"`
	Mobile        string         `gorm:"uniqueIndex;size:32"`
	SuspendStatus bool           `gorm:"index"`
	CreatedBy     string         `gorm:"size:64"`
	UpdatedBy     string         `gorm:"size:64"`
	DeletedBy     string         `gorm:"size:64"`
	CreatedOn     time.Time      `gorm:"column:created_on;autoCreateTime"`
	UpdatedOn     time.Time      `gorm:"column:updated_on;autoUpdateTime"`
	DeletedOn     gorm.DeletedAt `gorm:"column:deleted_on;index"`
}

// TableName returns the table name for GORM.
func (userModel) TableName() string { return "users" }

// OpenPostgres opens a Postgres-backed GORM handle. TranslateError is
// required: it is what turns driver-specific unique-constraint errors
// into gorm.ErrDuplicatedKey, which the store depends on for the
// create race window.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// UserStore performs all user reads and writes.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a store over an opened GORM handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Migrate creates or updates the users table schema.
func (s *UserStore) Migrate() error {
	if err := s.db.AutoMigrate(&userModel{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// FindIDByMobile returns the id of the live user holding the given mobile
// number, or domain.ErrUserNotFound. Only id and mobile are selected; the
// duplicate check needs nothing more.
func (s *UserStore) FindIDByMobile(ctx context.Context, mobile string) (int64, error) {
	var m userModel
	err := s.db.WithContext(ctx).
		Select("id", "mobile").
		Where("mobile = ?", mobile).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("find by mobile: %w", err)
	}
	return m.ID, nil
}

// Create inserts a new user and returns the stored record. A uniqueness
// violation (a concurrent create won the race) comes back wrapped as
// domain.ErrDuplicateUser.
func (s *UserStore) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	m := userModel{
		Name:      in.Name,
		Email:     in.Email,
		Mobile:    in.Mobile,
		CreatedBy: in.CreatedBy,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create user mobile=%s: %w", in.Mobile, domain.ErrDuplicateUser)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return m.toDomain(), nil
}

// Update applies a partial update to a live row. Updating an id that
// matches no live row affects zero rows and reports Updated=false; that
// is the store's contract, not an error. Re-applying identical fields is
// a no-op beyond the first application.
func (s *UserStore) Update(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.UpdateOutcome, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Mobile != nil {
		updates["mobile"] = *in.Mobile
	}
	if in.SuspendStatus != nil {
		updates["suspend_status"] = *in.SuspendStatus
	}
	if in.UpdatedBy != "" {
		updates["updated_by"] = in.UpdatedBy
	}

	tx := s.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("update user id=%d: %w", id, domain.ErrDuplicateUser)
		}
		return nil, fmt.Errorf("update user id=%d: %w", id, tx.Error)
	}
	return &domain.UpdateOutcome{UserID: id, Updated: tx.RowsAffected > 0}, nil
}

// Get returns the live user with the given id or domain.ErrUserNotFound.
func (s *UserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user id=%d: %w", id, err)
	}
	return m.toDomain(), nil
}

// List returns a page of live users ordered by id ascending. No total
// count is computed; callers page until a short read.
func (s *UserStore) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var models []userModel
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].toDomain())
	}
	return users, nil
}

func (m *userModel) toDomain() *domain.User {
	u := &domain.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Mobile:        m.Mobile,
		SuspendStatus: m.SuspendStatus,
		CreatedBy:     m.CreatedBy,
		UpdatedBy:     m.UpdatedBy,
		DeletedBy:     m.DeletedBy,
		CreatedOn:     m.CreatedOn,
		UpdatedOn:     m.UpdatedOn,
	}
	if m.DeletedOn.Valid {
		t := m.DeletedOn.Time
		u.DeletedOn = &t
	}
	return u
}
