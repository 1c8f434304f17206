package player

import (
	"fmt"
	"sync"
)

// Stretching is how video content is scaled into the player container.
type Stretching string

const (
	StretchFill     Stretching = "fill"
	StretchUniform  Stretching = "uniform"
	StretchExactFit Stretching = "exactfit"
	StretchNone     Stretching = "none"
)

const DefaultStretching = StretchFill

// StretchingKey is the client-local storage key holding the preference.
const StretchingKey = "playrelay.stretching"

var stretchingModes = []Stretching{StretchFill, StretchUniform, StretchExactFit, StretchNone}

// StretchingModes lists the accepted modes in display order.
func StretchingModes() []Stretching {
	return append([]Stretching(nil), stretchingModes...)
}

func ParseStretching(s string) (Stretching, error) {
	for _, m := range stretchingModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("player: unknown stretching mode %q", s)
}

// PreferenceStore is client-local key/value storage.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// LoadStretching returns the stored preference, or DefaultStretching when
// nothing valid is stored.
func LoadStretching(store PreferenceStore) Stretching {
	if store == nil {
		return DefaultStretching
	}
	raw, ok := store.Get(StretchingKey)
	if !ok {
		return DefaultStretching
	}
	mode, err := ParseStretching(raw)
	if err != nil {
		return DefaultStretching
	}
	return mode
}

func SaveStretching(store PreferenceStore, mode Stretching) error {
	if _, err := ParseStretching(string(mode)); err != nil {
		return err
	}
	if err := store.Set(StretchingKey, string(mode)); err != nil {
		return fmt.Errorf("player: save stretching: %w", err)
	}
	return nil
}

// MemoryStore is a PreferenceStore kept in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
