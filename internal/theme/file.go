package theme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// FileStore keeps the theme in a small YAML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultFilePath is $XDG_CONFIG_HOME/sleepcalc/prefs.yaml or the platform equivalent.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "sleepcalc", "prefs.yaml"), nil
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return "", false, err
	}
	if !v.IsSet(StorageKey) {
		return "", false, nil
	}
	name := strings.TrimSpace(v.GetString(StorageKey))
	return name, name != "", nil
}

func (s *FileStore) Save(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return err
	}
	v.Set(StorageKey, name)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// read returns a viper instance holding the file's current keys, empty when
// the file does not exist yet.
func (s *FileStore) read() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading preferences %s: %w", s.path, err)
	}
	return v, nil
}
