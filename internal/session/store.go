package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// persistedState is what survives between runs, the terminal analogue of the
// web client's localStorage token + user entries.
type persistedState struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

type TokenStore struct {
	path string
}

func NewTokenStore(path string) (*TokenStore, error) {

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}

		path = filepath.Join(home, ".nhom7-storefront", "session.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &TokenStore{path: path}, nil
}

func (s *TokenStore) Load() (*persistedState, error) {

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return &state, nil
}

func (s *TokenStore) Save(state *persistedState) error {

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	// The token is a credential; keep the file owner-only.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (s *TokenStore) Clear() error {

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}
