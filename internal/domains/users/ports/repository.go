package ports

import (
	"context"
	"errors"
	"time"

	"github.com/clear-solutions/users-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already stored")

// Repository abstracts durable storage for user records.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
	// InTransaction runs fn against a repository view scoped to a single
	// atomic unit of work. Returning an error rolls the work back.
	InTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
