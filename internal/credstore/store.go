package credstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the persisted pair, keyed by the fixed names the rest of the
// stack expects.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no access credential is held.
func (c Credentials) Empty() bool { return c.AccessToken == "" }

// Store persists the credential pair. Only the session manager writes to it;
// every other component reads through the transport layer.
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// Memory is the default, process-lifetime store.
type Memory struct {
	mu    sync.Mutex
	creds Credentials
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load() (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *Memory) Save(c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = c
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	return nil
}

// File persists the pair encrypted at rest. A missing file loads as empty
// credentials, not an error.
type File struct {
	path   string
	secret string
	mu     sync.Mutex
}

// NewFile returns a file-backed store at path, encrypted with secret.
func NewFile(path, secret string) *File {
	return &File{path: path, secret: secret}
}

func (f *File) Load() (Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}
	plain, err := decrypt(f.secret, raw)
	if err != nil {
		return Credentials{}, err
	}
	var c Credentials
	if err := json.Unmarshal(plain, &c); err != nil {
		return Credentials{}, ErrInvalid
	}
	return c, nil
}

func (f *File) Save(c Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	encrypted, err := encrypt(f.secret, payload)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, encrypted, 0o600)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
