package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clear-solutions/users-api/internal/domains/users/domain"
	"github.com/clear-solutions/users-api/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) FindByBirthDateRange(_ context.Context, from, to time.Time) ([]*domain.User, error) {
	var matched []*domain.User
	for _, u := range f.users {
		if u.BirthDate.Before(from) || u.BirthDate.After(to) {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return matched, nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	if clone.ID == 0 {
		clone.ID = f.nextID
		f.nextID++
	}
	f.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeUserRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) InTransaction(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	return fn(ctx, f)
}

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestService(repo ports.Repository) *Service {
	return NewService(repo, 18, WithClock(func() time.Time { return today }))
}

func validDraft() domain.Draft {
	return domain.Draft{
		Email:       "test@example.com",
		FirstName:   "TestName",
		Surname:     "TestSurname",
		BirthDate:   time.Date(1999, 9, 9, 0, 0, 0, 0, time.UTC),
		Address:     "TestAddress",
		PhoneNumber: "999-999-999",
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	draft := validDraft()
	created, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, draft.Email, created.Email)
	require.Equal(t, draft.FirstName, created.FirstName)
	require.Equal(t, draft.Surname, created.Surname)
	require.True(t, created.BirthDate.Equal(draft.BirthDate))
	require.Equal(t, draft.Address, created.Address)
	require.Equal(t, draft.PhoneNumber, created.PhoneNumber)
}

func TestCreate_BirthDateExactlyOnThreshold(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	draft := validDraft()
	// Exactly requiredAge years ago is old enough.
	draft.BirthDate = today.AddDate(-18, 0, 0)
	created, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestCreate_BelowRequiredAge(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	draft := validDraft()
	draft.BirthDate = today.AddDate(-18, 0, 1)
	_, err := svc.Create(context.Background(), draft)
	require.ErrorIs(t, err, ErrBelowRequiredAge)

	var ageErr *BelowRequiredAgeError
	require.ErrorAs(t, err, &ageErr)
	require.Equal(t, 18, ageErr.RequiredAge)
}

func TestCreate_EmailAlreadyInUse(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	second := validDraft()
	second.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), second)
	require.ErrorIs(t, err, ErrEmailInUse)
}

func TestCreate_AgeCheckPrecedesEmailConflict(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	tooYoung := validDraft()
	tooYoung.BirthDate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), tooYoung)
	require.ErrorIs(t, err, ErrBelowRequiredAge)
	require.NotErrorIs(t, err, ErrEmailInUse)
}

func TestReplace(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	replacement := domain.Draft{
		Email:       "updated@example.com",
		FirstName:   "UpdatedName",
		Surname:     "UpdatedSurname",
		BirthDate:   time.Date(1995, 2, 2, 0, 0, 0, 0, time.UTC),
		Address:     "UpdatedAddress",
		PhoneNumber: "111-111-111",
	}
	updated, err := svc.Replace(context.Background(), created.ID, replacement)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, replacement.Email, updated.Email)
	require.Equal(t, replacement.FirstName, updated.FirstName)
	require.Equal(t, replacement.Surname, updated.Surname)
	require.True(t, updated.BirthDate.Equal(replacement.BirthDate))
	require.Equal(t, replacement.Address, updated.Address)
	require.Equal(t, replacement.PhoneNumber, updated.PhoneNumber)
}

func TestReplace_NotFound(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Replace(context.Background(), 42, validDraft())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestReplace_BelowRequiredAge(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	replacement := validDraft()
	replacement.BirthDate = today.AddDate(-17, 0, 0)
	_, err = svc.Replace(context.Background(), created.ID, replacement)
	require.ErrorIs(t, err, ErrBelowRequiredAge)
}

func TestReplace_DoesNotRecheckEmailUniqueness(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	first, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	secondDraft := validDraft()
	secondDraft.Email = "other@example.com"
	second, err := svc.Create(context.Background(), secondDraft)
	require.NoError(t, err)

	// Replacing the second user's email with the first one's succeeds.
	secondDraft.Email = first.Email
	updated, err := svc.Replace(context.Background(), second.ID, secondDraft)
	require.NoError(t, err)
	require.Equal(t, first.Email, updated.Email)
}

func TestPartialUpdate_MergesOnlyPresentFields(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	newName := "New"
	updated, err := svc.PartialUpdate(context.Background(), created.ID, domain.Patch{FirstName: &newName})
	require.NoError(t, err)
	require.Equal(t, "New", updated.FirstName)
	require.Equal(t, created.Surname, updated.Surname)
	require.Equal(t, created.Email, updated.Email)
	require.True(t, updated.BirthDate.Equal(created.BirthDate))
	require.Equal(t, created.Address, updated.Address)
	require.Equal(t, created.PhoneNumber, updated.PhoneNumber)
}

func TestPartialUpdate_BirthDateChecked(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	tooRecent := today.AddDate(-17, 0, 0)
	_, err = svc.PartialUpdate(context.Background(), created.ID, domain.Patch{BirthDate: &tooRecent})
	require.ErrorIs(t, err, ErrBelowRequiredAge)

	// Stored birth date is untouched after the failed patch.
	unchanged, err := svc.FindByBirthDateRange(context.Background(),
		created.BirthDate.AddDate(0, 0, -1), created.BirthDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, unchanged, 1)
}

func TestPartialUpdate_BirthDateOnThreshold(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	onThreshold := today.AddDate(-18, 0, 0)
	updated, err := svc.PartialUpdate(context.Background(), created.ID, domain.Patch{BirthDate: &onThreshold})
	require.NoError(t, err)
	require.True(t, updated.BirthDate.Equal(onThreshold))
}

func TestPartialUpdate_NotFound(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	name := "Ghost"
	_, err := svc.PartialUpdate(context.Background(), 42, domain.Patch{FirstName: &name})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	// Deleting again fails the same way, no silent success.
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), ports.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	require.ErrorIs(t, svc.Delete(context.Background(), 42), ports.ErrNotFound)
}

func TestFindByBirthDateRange_InclusiveBounds(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	dates := []time.Time{
		time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for i, birthDate := range dates {
		draft := validDraft()
		draft.Email = string(rune('a'+i)) + "@example.com"
		draft.BirthDate = birthDate
		_, err := svc.Create(context.Background(), draft)
		require.NoError(t, err)
	}

	from := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	users, err := svc.FindByBirthDateRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, user := range users {
		require.False(t, user.BirthDate.Before(from))
		require.False(t, user.BirthDate.After(to))
	}
}
