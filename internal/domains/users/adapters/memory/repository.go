package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clear-solutions/users-api/internal/domains/users/domain"
	"github.com/clear-solutions/users-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter. It backs tests and
// the no-database fallback wiring.
type Repository struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *Repository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) FindByBirthDateRange(_ context.Context, from, to time.Time) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.User
	for _, user := range r.users {
		if user.BirthDate.Before(from) || user.BirthDate.After(to) {
			continue
		}
		clone := *user
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	if clone.ID == 0 {
		clone.ID = r.nextID
		r.nextID++
	}
	r.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// InTransaction serializes units of work against the store. There is no
// rollback; callers get the same read-check-write atomicity a single
// database transaction would provide.
func (r *Repository) InTransaction(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx, r)
}
