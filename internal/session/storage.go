package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// State is what survives a process restart: the bearer token and an
// optional cached identity. Both are cleared wholesale on logout or on
// any unauthorized response.
type State struct {
	Token    string          `json:"token"`
	Identity *model.Identity `json:"identity,omitempty"`
}

// Storage persists session state between runs. The file implementation
// is the terminal-client analog of browser local storage; the memory
// implementation backs tests.
type Storage interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// FileStorage keeps the session in a single JSON file with owner-only
// permissions.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the persisted state. A missing file is not an error; it
// simply means there is no session.
func (f *FileStorage) Load() (State, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, nil
		}
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Save writes the state, creating the parent directory on first use.
func (f *FileStorage) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

// Clear removes the session file. Removing a file that is already gone
// is treated as success.
func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStorage is an in-process Storage used by tests.
type MemoryStorage struct {
	mu    sync.Mutex
	state State
	set   bool
}

func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return State{}, nil
	}
	return m.state, nil
}

func (m *MemoryStorage) Save(st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
	m.set = true
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	m.set = false
	return nil
}
