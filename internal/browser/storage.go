//go:build js && wasm

package browser

import (
	"fmt"
	"syscall/js"
)

// LocalStorage is a player.PreferenceStore backed by window.localStorage.
type LocalStorage struct {
	store js.Value
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{store: js.Global().Get("localStorage")}
}

func (s *LocalStorage) Get(key string) (value string, ok bool) {
	if !s.store.Truthy() {
		return "", false
	}
	defer func() {
		if recover() != nil {
			value, ok = "", false
		}
	}()
	v := s.store.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

// Set reports quota and privacy-mode exceptions as errors.
func (s *LocalStorage) Set(key, value string) (err error) {
	if !s.store.Truthy() {
		return fmt.Errorf("localStorage unavailable")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage setItem: %v", r)
		}
	}()
	s.store.Call("setItem", key, value)
	return nil
}
