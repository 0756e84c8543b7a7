package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/storage"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrDuplicateAccount = errors.New("account already exists")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Booking, error)
}

type FileBookingRepository struct {
	store *storage.Store
}

func NewBookingRepository(store *storage.Store) BookingRepository {
	return &FileBookingRepository{store: store}
}

func (r *FileBookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	return r.store.Update(func(state *storage.State) error {
		state.Bookings = append(state.Bookings, *booking)
		return nil
	})
}

func (r *FileBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	state, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, b := range state.Bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *FileBookingRepository) Update(_ context.Context, booking *domain.Booking) error {
	return r.store.Update(func(state *storage.State) error {
		for i := range state.Bookings {
			if state.Bookings[i].ID == booking.ID {
				state.Bookings[i] = *booking
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r *FileBookingRepository) Delete(_ context.Context, id string) error {
	return r.store.Update(func(state *storage.State) error {
		for i, b := range state.Bookings {
			if b.ID == id {
				state.Bookings = append(state.Bookings[:i], state.Bookings[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// List returns every booking ordered newest-created-first.
func (r *FileBookingRepository) List(_ context.Context) ([]domain.Booking, error) {
	state, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, len(state.Bookings))
	copy(bookings, state.Bookings)
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

var _ BookingRepository = (*FileBookingRepository)(nil)
