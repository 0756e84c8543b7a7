package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Domenick1991/carrental/internal/domain"
)

// State is the whole persisted document. The three fields correspond to the
// three storage keys of the original design: "users", "user" and "bookings".
type State struct {
	Users    []domain.Account `json:"users"`
	User     *domain.Account  `json:"user"`
	Bookings []domain.Booking `json:"bookings"`
}

// Store keeps the full state in a single JSON file. Every operation re-reads
// the file before mutating and writes the whole document back, so concurrent
// processes race with last-write-wins and no merge. That is the documented
// behavior of the source system and is kept on purpose.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	s := &Store{path: path}
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (State, error) {
	var state State
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("open storage file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&state); err != nil {
		return state, fmt.Errorf("decode storage file: %w", err)
	}
	return state, nil
}

func (s *Store) save(state State) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create storage file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	return nil
}

// Update applies fn to a freshly loaded state and persists the result.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&state); err != nil {
		return err
	}
	return s.save(state)
}
