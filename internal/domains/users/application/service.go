package application

import (
	"context"
	"errors"
	"time"

	"github.com/clear-solutions/users-api/internal/domains/users/domain"
	"github.com/clear-solutions/users-api/internal/domains/users/ports"
)

// DefaultRequiredAge applies when the caller passes a non-positive threshold.
const DefaultRequiredAge = 18

// Service exposes user bounded context use cases. It owns the business
// rules: age eligibility, email uniqueness on create, and merge semantics
// for partial updates. Every mutating use case runs inside one repository
// transaction.
type Service struct {
	repo        ports.Repository
	requiredAge int
	now         func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for age checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, requiredAge int, opts ...Option) *Service {
	if requiredAge <= 0 {
		requiredAge = DefaultRequiredAge
	}
	s := &Service{repo: repo, requiredAge: requiredAge, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Create(ctx context.Context, draft domain.Draft) (*domain.User, error) {
	var created *domain.User
	err := s.repo.InTransaction(ctx, func(ctx context.Context, repo ports.Repository) error {
		if err := s.checkAge(draft.BirthDate); err != nil {
			return err
		}
		if _, err := repo.FindByEmail(ctx, draft.Email); err == nil {
			return ErrEmailInUse
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		user := domain.NewUser(draft)
		if err := user.Validate(); err != nil {
			return err
		}
		saved, err := repo.Save(ctx, user)
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Replace overwrites every field of an existing user with the draft's
// values, keeping the id. Email uniqueness is not re-checked here; that
// mirrors the create-only scope of the uniqueness rule.
func (s *Service) Replace(ctx context.Context, id int64, draft domain.Draft) (*domain.User, error) {
	var updated *domain.User
	err := s.repo.InTransaction(ctx, func(ctx context.Context, repo ports.Repository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkAge(draft.BirthDate); err != nil {
			return err
		}
		existing.Replace(draft)
		if err := existing.Validate(); err != nil {
			return err
		}
		saved, err := repo.Save(ctx, existing)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) PartialUpdate(ctx context.Context, id int64, patch domain.Patch) (*domain.User, error) {
	var updated *domain.User
	err := s.repo.InTransaction(ctx, func(ctx context.Context, repo ports.Repository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.BirthDate != nil {
			if err := s.checkAge(*patch.BirthDate); err != nil {
				return err
			}
		}
		existing.Merge(patch)
		if err := existing.Validate(); err != nil {
			return err
		}
		saved, err := repo.Save(ctx, existing)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.InTransaction(ctx, func(ctx context.Context, repo ports.Repository) error {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		return repo.DeleteByID(ctx, id)
	})
	return mapError(err)
}

func (s *Service) FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.User, error) {
	return s.repo.FindByBirthDateRange(ctx, from, to)
}

// checkAge fails when the birth date falls strictly after today minus the
// required years. A birth date landing exactly on the anniversary passes.
func (s *Service) checkAge(birthDate time.Time) error {
	threshold := s.now().AddDate(-s.requiredAge, 0, 0)
	if birthDate.After(threshold) {
		return &BelowRequiredAgeError{RequiredAge: s.requiredAge}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
