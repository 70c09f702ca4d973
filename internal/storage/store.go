package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const stateFile = "state.json"

type Store struct {
	baseDir string
	mu      sync.Mutex
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Path() string {
	return filepath.Join(s.baseDir, stateFile)
}

type state struct {
	UserCoins int `json:"userCoins"`
}

// Coins returns the persisted coin count; a missing file counts as zero.
func (s *Store) Coins() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	return st.UserCoins, err
}

// SetCoins overwrites the counter.
func (s *Store) SetCoins(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(state{UserCoins: n})
}

// AddCoins adds n to the counter and returns the new total.
func (s *Store) AddCoins(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		return 0, err
	}
	st.UserCoins += n
	return st.UserCoins, s.save(st)
}

func (s *Store) load() (state, error) {
	var st state
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}, err
	}
	return st, nil
}

func (s *Store) save(st state) error {
	if err := s.Init(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.baseDir, stateFile+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path())
}
