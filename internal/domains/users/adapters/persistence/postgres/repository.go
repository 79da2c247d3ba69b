package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/clear-solutions/users-api/internal/domains/users/domain"
	"github.com/clear-solutions/users-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM. Schema management
// lives in internal/platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	FirstName   string    `gorm:"column:first_name"`
	Surname     string    `gorm:"column:surname"`
	BirthDate   time.Time `gorm:"column:birth_date;type:date;index"`
	Address     string    `gorm:"column:address"`
	PhoneNumber string    `gorm:"column:phone_number"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// FindByID fetches a user by identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByEmail fetches a user by exact email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByBirthDateRange returns users with birth_date inside [from, to].
func (r *Repository) FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).
		Where("birth_date BETWEEN ? AND ?", from, to).
		Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

// Save inserts a user when the id is unassigned and updates it otherwise.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	var err error
	if record.ID == 0 {
		err = r.db.WithContext(ctx).Create(&record).Error
	} else {
		err = r.db.WithContext(ctx).Save(&record).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// DeleteByID removes a user permanently.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// InTransaction wraps fn in a database transaction; errors roll it back.
func (r *Repository) InTransaction(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Repository{db: tx})
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		Surname:     user.Surname,
		BirthDate:   user.BirthDate,
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:          r.ID,
		Email:       r.Email,
		FirstName:   r.FirstName,
		Surname:     r.Surname,
		BirthDate:   r.BirthDate,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}
