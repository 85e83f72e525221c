package session

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Storage persists the signed session token between runs
type Storage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStorage keeps the session token in a small JSON file
type FileStorage struct {
	Path string
}

type fileContent struct {
	AuthToken string `json:"authToken"`
}

// Load returns an empty token when nothing was persisted yet
func (f FileStorage) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read session file %s", f.Path)
	}
	var fc fileContent
	if err := json.Unmarshal(b, &fc); err != nil {
		return "", errors.Wrapf(err, "failed to decode session file %s", f.Path)
	}
	return fc.AuthToken, nil
}

// Save overwrites the session file, readable by the owner only
func (f FileStorage) Save(token string) error {
	b, err := json.Marshal(fileContent{AuthToken: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, b, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write session file %s", f.Path)
	}
	return nil
}

// Clear removes the session file
func (f FileStorage) Clear() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove session file %s", f.Path)
	}
	return nil
}
