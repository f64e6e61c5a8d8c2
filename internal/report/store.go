package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Store keeps the entries of the last run inside the git directory.
type Store struct {
	path string
}

func NewStore(gitDir string) Store {
	return Store{path: filepath.Join(gitDir, ".mergepick", "last-run.json")}
}

func (s Store) Path() string {
	return s.path
}

func (s Store) Load() ([]Entry, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}

	var out []Entry
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Store) Save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(s.path, b, 0o644)
}
