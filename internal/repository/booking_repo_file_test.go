package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return store
}

func TestFileBookingRepository_CreateAndGet(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	booking := &domain.Booking{
		ID:        "booking-1",
		UserEmail: "alice@example.com",
		Status:    domain.BookingStatusPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, booking))

	got, err := repo.GetByID(ctx, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.UserEmail)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBookingRepository_Update(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	booking := &domain.Booking{ID: "booking-1", Status: domain.BookingStatusPending}
	require.NoError(t, repo.Create(ctx, booking))

	booking.Status = domain.BookingStatusConfirmed
	require.NoError(t, repo.Update(ctx, booking))

	got, err := repo.GetByID(ctx, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, &domain.Booking{ID: "missing"}), ErrNotFound)
}

func TestFileBookingRepository_Delete(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: "booking-1"}))
	require.NoError(t, repo.Delete(ctx, "booking-1"))

	_, err := repo.GetByID(ctx, "booking-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "booking-1"), ErrNotFound)
}

func TestFileBookingRepository_ListNewestFirst(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: "oldest", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: "newest", CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: "middle", CreatedAt: base.Add(time.Hour)}))

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, "newest", bookings[0].ID)
	assert.Equal(t, "middle", bookings[1].ID)
	assert.Equal(t, "oldest", bookings[2].ID)
}

func TestFileUserRepository_Duplicate(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	account := &domain.Account{Email: "alice@example.com", Password: "pw123", Name: "Alice"}
	require.NoError(t, repo.Add(ctx, account))

	err := repo.Add(ctx, &domain.Account{Email: "alice@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// Существующая запись не изменилась
	got, err := repo.FindByCredentials(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestFileUserRepository_FindByCredentials_CaseSensitive(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &domain.Account{Email: "alice@example.com", Password: "pw123"}))

	_, err := repo.FindByCredentials(ctx, "Alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByCredentials(ctx, "alice@example.com", "PW123")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.FindByCredentials(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestFileSessionRepository_Lifecycle(t *testing.T) {
	store := newTestStore(t)
	repo := NewSessionRepository(store)
	ctx := context.Background()

	current, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	account := &domain.Account{Email: "alice@example.com", Role: domain.RoleCustomer}
	require.NoError(t, repo.Set(ctx, account))

	current, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "alice@example.com", current.Email)

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx)) // повторный вызов безопасен

	current, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}
