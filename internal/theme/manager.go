package theme

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/rezkam/taskmate/internal/infrastructure/preferences"
)

// PreferenceKey is the preference the chosen mode is stored under.
const PreferenceKey = "theme"

// Manager loads and toggles the persisted mode.
type Manager struct {
	store preferences.Store

	mu   sync.Mutex
	mode Mode
}

// NewManager creates a manager in light mode. Call Load before use.
func NewManager(store preferences.Store) *Manager {
	return &Manager{store: store, mode: Light}
}

// Load reads the stored mode. A missing or unrecognised value falls back to
// the system scheme; read errors are logged and fall back the same way.
func (m *Manager) Load(ctx context.Context, systemDark bool) Settings {
	mode := Light
	if systemDark {
		mode = Dark
	}

	if stored, ok := m.read(ctx); ok {
		mode = stored
	}

	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return Settings{Palette: PaletteFor(mode)}
}

func (m *Manager) read(ctx context.Context) (Mode, bool) {
	data, err := m.store.Get(ctx, PreferenceKey)
	if err != nil {
		if !errors.Is(err, preferences.ErrNotFound) {
			slog.WarnContext(ctx, "Failed to load theme preference", "error", err)
		}
		return "", false
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Tolerate values written as plain text.
		s = string(data)
	}
	mode, ok := ParseMode(s)
	if !ok {
		slog.DebugContext(ctx, "Ignoring unknown theme preference", "value", s)
	}
	return mode, ok
}

// Current returns the active settings.
func (m *Manager) Current() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Settings{Palette: PaletteFor(m.mode)}
}

// Toggle switches mode and persists the choice. A write failure is logged;
// the switch still applies for this session.
func (m *Manager) Toggle(ctx context.Context) Settings {
	m.mu.Lock()
	m.mode = m.mode.Opposite()
	mode := m.mode
	m.mu.Unlock()

	data, err := json.Marshal(string(mode))
	if err == nil {
		err = m.store.Put(ctx, PreferenceKey, data)
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to save theme preference", "mode", mode, "error", err)
	}
	return Settings{Palette: PaletteFor(mode)}
}
