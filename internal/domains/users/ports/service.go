package ports

import (
	"context"
	"time"

	"github.com/clear-solutions/users-api/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, draft domain.Draft) (*domain.User, error)
	Replace(ctx context.Context, id int64, draft domain.Draft) (*domain.User, error)
	PartialUpdate(ctx context.Context, id int64, patch domain.Patch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.User, error)
}
