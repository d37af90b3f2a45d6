// Package prefs manages the persisted display preference. Interested
// parties register an explicit observer once at startup and tear it down
// with the returned cancel func; there are no ambient side effects on
// preference changes.
package prefs

import (
	"context"
	"fmt"
	"sync"

	"github.com/techcorp/toolspend/internal/storage"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Service struct {
	repo *storage.PreferencesRepository

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Theme)
}

func NewService(repo *storage.PreferencesRepository) *Service {
	return &Service{
		repo: repo,
		subs: make(map[int]func(Theme)),
	}
}

// Theme returns the stored preference, defaulting to dark when unset.
func (s *Service) Theme(ctx context.Context) (Theme, error) {
	value, err := s.repo.Get(ctx, storage.ThemeKey)
	if err != nil {
		return "", err
	}
	if value == "" {
		return ThemeDark, nil
	}
	return Theme(value), nil
}

// SetTheme persists the preference and then notifies every subscriber
// synchronously. Unknown values are rejected before any write.
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}

	if err := s.repo.Set(ctx, storage.ThemeKey, string(theme)); err != nil {
		return err
	}

	s.mu.Lock()
	observers := make([]func(Theme), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(theme)
	}
	return nil
}

// Subscribe registers an observer for theme changes. The returned cancel
// func removes it; calling cancel more than once is harmless.
func (s *Service) Subscribe(fn func(Theme)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
