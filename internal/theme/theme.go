// Package theme holds the light/dark display preference: reading it at
// startup, toggling it, and writing it back to the settings store.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/balkashynov/landing/internal/logger"
)

// StorageKey is the settings key the preference lives under
const StorageKey = "theme"

// Theme is the display mode. Values read from storage are not validated,
// so a Theme may hold something other than Light or Dark.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used whenever storage holds no value
const Default = Light

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

func (t Theme) String() string {
	return string(t)
}

// Parse converts user input into a Theme, rejecting unknown names
func Parse(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme %q (expected light or dark)", s)
	}
	return t, nil
}

// Store is persistent key-value storage
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Initial reads the startup theme from store. A missing value, an empty value
// and an unreadable store all resolve to Default; any other stored string is
// returned exactly as stored.
func Initial(store Store, log *logger.Logger) Theme {
	if store == nil {
		return Default
	}

	value, ok, err := store.Get(StorageKey)
	if err != nil {
		log.Error(err, "failed to read theme preference, using default")
		return Default
	}
	if !ok || value == "" {
		return Default
	}

	if !Theme(value).Valid() {
		log.With("theme", value).Warn("stored theme is not light or dark")
	}

	return Theme(value)
}

// Preference is the in-memory copy of the theme held for the session,
// with a setter that writes changes back to the store.
type Preference struct {
	mu      sync.RWMutex
	current Theme
	store   Store
	log     *logger.Logger
}

// Load creates a Preference seeded from store
func Load(store Store, log *logger.Logger) *Preference {
	return &Preference{
		current: Initial(store, log),
		store:   store,
		log:     log,
	}
}

// Current returns the active theme
func (p *Preference) Current() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Set makes t the active theme and persists it. The in-memory value changes
// even when the write fails, so the session keeps the user's choice.
func (p *Preference) Set(t Theme) error {
	p.mu.Lock()
	p.current = t
	p.mu.Unlock()

	if p.store == nil {
		return nil
	}
	if err := p.store.Set(StorageKey, string(t)); err != nil {
		p.log.With("theme", string(t)).Error(err, "failed to persist theme preference")
		return fmt.Errorf("failed to save theme: %w", err)
	}

	p.log.With("theme", string(t)).Debug("theme preference saved")
	return nil
}

// Toggle flips between light and dark and returns the new theme.
// Unknown values render as light, so they toggle to dark.
func (p *Preference) Toggle() (Theme, error) {
	next := Opposite(p.Current())
	return next, p.Set(next)
}

// Opposite returns the theme a toggle moves to from t
func Opposite(t Theme) Theme {
	if t == Dark {
		return Light
	}
	return Dark
}
