// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package regstoretest provides an in-memory regstore.Store that records
// handle usage, for use in tests.
package regstoretest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/NVIDIA/sysreport/pkg/regstore"
)

// Key is one node of the in-memory tree.
type Key struct {
	Name    string
	Values  []regstore.Value
	Subkeys []*Key

	// Untyped makes typed enumeration report regstore.ErrUnsupported.
	Untyped bool
	// OpenErr, when set, is returned by every Open of this key.
	OpenErr error
}

// Child returns the direct subkey called name, creating it when missing.
func (k *Key) Child(name string) *Key {
	for _, c := range k.Subkeys {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	c := &Key{Name: name}
	k.Subkeys = append(k.Subkeys, c)
	return c
}

// Set adds or replaces a value.
func (k *Key) Set(name string, raw any, typ regstore.ValueType) *Key {
	for i := range k.Values {
		if strings.EqualFold(k.Values[i].Name, name) {
			k.Values[i] = regstore.Value{Name: name, Raw: raw, Type: typ}
			return k
		}
	}
	k.Values = append(k.Values, regstore.Value{Name: name, Raw: raw, Type: typ})
	return k
}

// Store is an in-memory regstore.Store.
type Store struct {
	mu     sync.Mutex
	roots  map[regstore.Handle]*Key
	open   map[regstore.Handle]*Key
	next   regstore.Handle
	Opens  int
	Closes int
	// DoubleCloses counts Close calls on handles that were not open.
	DoubleCloses int
	// TypedCalls counts typed enumeration calls per key name.
	TypedCalls map[string]int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		roots:      make(map[regstore.Handle]*Key),
		open:       make(map[regstore.Handle]*Key),
		next:       1,
		TypedCalls: make(map[string]int),
	}
}

// Path returns the key at a backslash separated path under root, creating
// intermediate keys.
func (s *Store) Path(root regstore.Handle, path string) *Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.roots[root]
	if !ok {
		k = &Key{}
		s.roots[root] = k
	}
	for _, part := range split(path) {
		k = k.Child(part)
	}
	return k
}

// Leaked returns the number of handles still open.
func (s *Store) Leaked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

func split(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, `\`) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func (s *Store) lookup(h regstore.Handle) (*Key, error) {
	if k, ok := s.open[h]; ok {
		return k, nil
	}
	if k, ok := s.roots[h]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("handle %d: %w", h, regstore.ErrNotExist)
}

func (s *Store) Open(parent regstore.Handle, path string, _ regstore.Access) (regstore.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.lookup(parent)
	if err != nil {
		return 0, err
	}
	for _, part := range split(path) {
		var next *Key
		for _, c := range k.Subkeys {
			if strings.EqualFold(c.Name, part) {
				next = c
				break
			}
		}
		if next == nil {
			return 0, fmt.Errorf("key %q: %w", path, regstore.ErrNotExist)
		}
		k = next
	}
	if k.OpenErr != nil {
		return 0, k.OpenErr
	}

	h := s.next
	s.next++
	s.open[h] = k
	s.Opens++
	return h, nil
}

func (s *Store) Close(h regstore.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.open[h]; !ok {
		s.DoubleCloses++
		return fmt.Errorf("handle %d is not open", h)
	}
	delete(s.open, h)
	s.Closes++
	return nil
}

func (s *Store) Stat(h regstore.Handle) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.lookup(h)
	if err != nil {
		return 0, 0, err
	}
	return len(k.Subkeys), len(k.Values), nil
}

func (s *Store) EnumKey(h regstore.Handle, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.lookup(h)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(k.Subkeys) {
		return "", fmt.Errorf("subkey index %d: %w", index, regstore.ErrNotExist)
	}
	return k.Subkeys[index].Name, nil
}

func (s *Store) EnumValue(h regstore.Handle, index int) (string, any, regstore.ValueType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.lookup(h)
	if err != nil {
		return "", nil, regstore.TypeUnknown, err
	}
	s.TypedCalls[k.Name]++
	if k.Untyped {
		return "", nil, regstore.TypeUnknown, regstore.ErrUnsupported
	}
	if index < 0 || index >= len(k.Values) {
		return "", nil, regstore.TypeUnknown, fmt.Errorf("value index %d: %w", index, regstore.ErrNotExist)
	}
	v := k.Values[index]
	return v.Name, v.Raw, v.Type, nil
}

func (s *Store) EnumValueUntyped(h regstore.Handle, index int) (string, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.lookup(h)
	if err != nil {
		return "", nil, err
	}
	if index < 0 || index >= len(k.Values) {
		return "", nil, fmt.Errorf("value index %d: %w", index, regstore.ErrNotExist)
	}
	v := k.Values[index]
	return v.Name, v.Raw, nil
}

func (s *Store) Query(h regstore.Handle, name string) (any, regstore.ValueType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.lookup(h)
	if err != nil {
		return nil, regstore.TypeUnknown, err
	}
	for _, v := range k.Values {
		if strings.EqualFold(v.Name, name) {
			return v.Raw, v.Type, nil
		}
	}
	return nil, regstore.TypeUnknown, fmt.Errorf("value %q: %w", name, regstore.ErrNotExist)
}
