package repository

import (
	"context"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/storage"
)

type UserRepository interface {
	Add(ctx context.Context, account *domain.Account) error
	FindByCredentials(ctx context.Context, email, password string) (*domain.Account, error)
}

// SessionRepository is the persisted single-slot session: the "user" key of
// the original storage layout.
type SessionRepository interface {
	Get(ctx context.Context) (*domain.Account, error)
	Set(ctx context.Context, account *domain.Account) error
	Clear(ctx context.Context) error
}

type FileUserRepository struct {
	store *storage.Store
}

func NewUserRepository(store *storage.Store) UserRepository {
	return &FileUserRepository{store: store}
}

func (r *FileUserRepository) Add(_ context.Context, account *domain.Account) error {
	return r.store.Update(func(state *storage.State) error {
		for _, u := range state.Users {
			if u.Email == account.Email {
				return ErrDuplicateAccount
			}
		}
		state.Users = append(state.Users, *account)
		return nil
	})
}

// FindByCredentials scans for an exact case-sensitive email+password match.
func (r *FileUserRepository) FindByCredentials(_ context.Context, email, password string) (*domain.Account, error) {
	state, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, u := range state.Users {
		if u.Email == email && u.Password == password {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

type FileSessionRepository struct {
	store *storage.Store
}

func NewSessionRepository(store *storage.Store) SessionRepository {
	return &FileSessionRepository{store: store}
}

func (r *FileSessionRepository) Get(_ context.Context) (*domain.Account, error) {
	state, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return state.User, nil
}

func (r *FileSessionRepository) Set(_ context.Context, account *domain.Account) error {
	return r.store.Update(func(state *storage.State) error {
		state.User = account
		return nil
	})
}

func (r *FileSessionRepository) Clear(_ context.Context) error {
	return r.store.Update(func(state *storage.State) error {
		state.User = nil
		return nil
	})
}

var (
	_ UserRepository    = (*FileUserRepository)(nil)
	_ SessionRepository = (*FileSessionRepository)(nil)
)
