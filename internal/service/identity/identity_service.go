package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin bypass. The administrator is not a directory record: the pair below is
// special-cased before any lookup, exactly as in the source system.
const (
	adminEmail    = "admin@gmail.com"
	adminPassword = "admin"
)

type IdentityUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	Current(ctx context.Context) (*domain.Account, error)
	Logout(ctx context.Context) error
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type IdentityService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
}

func NewIdentityService(users repository.UserRepository, sessions repository.SessionRepository) *IdentityService {
	return &IdentityService{users: users, sessions: sessions}
}

// Register appends a new account and makes it the active session. The
// password is stored as provided; hashing it would break the persisted
// contract this design reproduces.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	account := &domain.Account{
		Email:     input.Email,
		Password:  input.Password,
		Role:      domain.RoleCustomer,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}

	if err := s.users.Add(ctx, account); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, account); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return account, nil
}

func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == adminEmail && password == adminPassword {
		admin := &domain.Account{
			Email: adminEmail,
			Role:  domain.RoleAdmin,
			Name:  "Administrator",
		}
		if err := s.sessions.Set(ctx, admin); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
		return admin, nil
	}

	account, err := s.users.FindByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.sessions.Set(ctx, account); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return account, nil
}

func (s *IdentityService) Current(ctx context.Context) (*domain.Account, error) {
	return s.sessions.Get(ctx)
}

// Logout clears the session slot. Calling it with no active session is fine.
func (s *IdentityService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

var _ IdentityUseCase = (*IdentityService)(nil)
