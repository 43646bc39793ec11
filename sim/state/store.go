// Package state keeps encoded copies of component state, so that a host can
// put its components back to an earlier step.
package state

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Store holds the last saved state of every key. Values are gob encoded on
// Save, so later changes to the saved value do not leak into the store.
type Store struct {
	lock  sync.RWMutex
	slots map[string]slot
}

type slot struct {
	typ  reflect.Type
	data []byte
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{slots: make(map[string]slot)}
}

// Save encodes v under key. A key keeps the type it was first saved with.
func (s *Store) Save(key string, v any) error {
	if key == "" {
		return fmt.Errorf("state: empty key")
	}

	if v == nil {
		return fmt.Errorf("state: nil value for %q", key)
	}

	typ := reflect.TypeOf(v)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("state: encode %q: %w", key, err)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if old, ok := s.slots[key]; ok && old.typ != typ {
		return fmt.Errorf("state: %q holds %s, not %s", key, old.typ, typ)
	}

	s.slots[key] = slot{typ: typ, data: buf.Bytes()}

	return nil
}

// Load decodes a fresh copy of the value saved under key. The copy has the
// same type as the saved value, pointer or not.
func (s *Store) Load(key string) (any, error) {
	s.lock.RLock()
	sl, ok := s.slots[key]
	s.lock.RUnlock()

	if !ok {
		return nil, fmt.Errorf("state: nothing saved for %q", key)
	}

	isPtr := sl.typ.Kind() == reflect.Pointer

	target := reflect.New(sl.typ)
	if isPtr {
		target = reflect.New(sl.typ.Elem())
	}

	err := gob.NewDecoder(bytes.NewReader(sl.data)).Decode(target.Interface())
	if err != nil {
		return nil, fmt.Errorf("state: decode %q: %w", key, err)
	}

	if isPtr {
		return target.Interface(), nil
	}

	return target.Elem().Interface(), nil
}

// Drop forgets key. It returns false if nothing was saved under it.
func (s *Store) Drop(key string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.slots[key]
	delete(s.slots, key)

	return ok
}

// Keys returns the saved keys, sorted.
func (s *Store) Keys() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]string, 0, len(s.slots))
	for k := range s.slots {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Size returns the number of encoded bytes held by the store.
func (s *Store) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	n := 0
	for _, sl := range s.slots {
		n += len(sl.data)
	}

	return n
}
