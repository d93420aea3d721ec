// Package theme keeps the single persisted UI preference: the colour theme.
package theme

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// StorageKey is the one key ever written to a Store.
const StorageKey = "sleepCalcTheme"

const Default = "purple"

// Names lists the selectable themes in display order.
var Names = []string{"purple", "blue", "green", "pink", "orange"}

var ErrUnknownTheme = errors.New("unknown theme")

// Store persists the theme name under StorageKey.
type Store interface {
	// Load reports ok=false when nothing has been saved yet.
	Load(ctx context.Context) (name string, ok bool, err error)
	Save(ctx context.Context, name string) error
}

func Valid(name string) bool {
	return slices.Contains(Names, name)
}

// Normalize lowercases and validates a user-supplied theme name.
func Normalize(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if !Valid(n) {
		return "", fmt.Errorf("%w %q (choose one of %s)", ErrUnknownTheme, name, strings.Join(Names, ", "))
	}
	return n, nil
}

// Manager holds the active theme and writes every change through to a Store.
type Manager struct {
	store   Store
	logger  *zap.Logger
	mu      sync.RWMutex
	current string
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if store == nil {
		store = NopStore{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger, current: Default}
}

// LoadSaved applies the stored theme. A missing key, or a stored name that is
// no longer a known theme, leaves the current theme active.
func (m *Manager) LoadSaved(ctx context.Context) error {
	name, ok, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}
	if !ok {
		m.logger.Debug("no saved theme", zap.String("theme", m.Current()))
		return nil
	}
	if !Valid(name) {
		m.logger.Warn("ignoring unknown saved theme", zap.String("theme", name))
		return nil
	}
	m.mu.Lock()
	m.current = name
	m.mu.Unlock()
	m.logger.Debug("loaded saved theme", zap.String("theme", name))
	return nil
}

// Set activates a theme and persists it.
func (m *Manager) Set(ctx context.Context, name string) error {
	n, err := Normalize(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current = n
	m.mu.Unlock()

	if err := m.store.Save(ctx, n); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	m.logger.Info("theme changed", zap.String("theme", n))
	return nil
}

func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// NopStore never persists anything.
type NopStore struct{}

func (NopStore) Load(context.Context) (string, bool, error) { return "", false, nil }
func (NopStore) Save(context.Context, string) error         { return nil }
