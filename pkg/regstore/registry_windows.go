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

//go:build windows

package regstore

import (
	stderrors "errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// systemStore is the Store backed by the Windows registry. Index-based
// enumeration is served from name lists read once per open handle.
type systemStore struct {
	subkeys map[Handle][]string
	values  map[Handle][]string
}

// NewSystemStore returns the Windows registry Store.
func NewSystemStore() (Store, error) {
	return &systemStore{
		subkeys: make(map[Handle][]string),
		values:  make(map[Handle][]string),
	}, nil
}

func (s *systemStore) Open(parent Handle, path string, access Access) (Handle, error) {
	k, err := registry.OpenKey(registry.Key(parent), path, uint32(access))
	if err != nil {
		return 0, mapError(err)
	}
	return Handle(k), nil
}

func (s *systemStore) Close(h Handle) error {
	delete(s.subkeys, h)
	delete(s.values, h)
	return registry.Key(h).Close()
}

func (s *systemStore) Stat(h Handle) (int, int, error) {
	info, err := registry.Key(h).Stat()
	if err != nil {
		return 0, 0, mapError(err)
	}
	return int(info.SubKeyCount), int(info.ValueCount), nil
}

func (s *systemStore) EnumKey(h Handle, index int) (string, error) {
	names, ok := s.subkeys[h]
	if !ok {
		var err error
		if names, err = registry.Key(h).ReadSubKeyNames(0); err != nil {
			return "", mapError(err)
		}
		s.subkeys[h] = names
	}
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("subkey index %d: %w", index, ErrNotExist)
	}
	return names[index], nil
}

func (s *systemStore) valueName(h Handle, index int) (string, error) {
	names, ok := s.values[h]
	if !ok {
		var err error
		if names, err = registry.Key(h).ReadValueNames(0); err != nil {
			return "", mapError(err)
		}
		s.values[h] = names
	}
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("value index %d: %w", index, ErrNotExist)
	}
	return names[index], nil
}

func (s *systemStore) EnumValue(h Handle, index int) (string, any, ValueType, error) {
	name, err := s.valueName(h, index)
	if err != nil {
		return "", nil, TypeUnknown, err
	}
	raw, typ, err := s.Query(h, name)
	if err != nil {
		return "", nil, TypeUnknown, err
	}
	return name, raw, typ, nil
}

func (s *systemStore) EnumValueUntyped(h Handle, index int) (string, any, error) {
	name, err := s.valueName(h, index)
	if err != nil {
		return "", nil, err
	}
	raw, kind, err := readRaw(registry.Key(h), name)
	if err != nil {
		return "", nil, err
	}
	return name, decodeUntyped(raw, kind), nil
}

func (s *systemStore) Query(h Handle, name string) (any, ValueType, error) {
	k := registry.Key(h)

	_, valtype, err := k.GetValue(name, nil)
	if err != nil {
		return nil, TypeUnknown, mapError(err)
	}

	switch valtype {
	case registry.SZ, registry.EXPAND_SZ:
		v, _, err := k.GetStringValue(name)
		return v, TypeString, mapError(err)
	case registry.MULTI_SZ:
		v, _, err := k.GetStringsValue(name)
		return v, TypeString, mapError(err)
	case registry.DWORD:
		v, _, err := k.GetIntegerValue(name)
		return uint32(v), TypeDWord, mapError(err)
	case registry.QWORD:
		v, _, err := k.GetIntegerValue(name)
		return v, TypeDWord, mapError(err)
	case registry.BINARY:
		v, _, err := k.GetBinaryValue(name)
		return v, TypeBinary, mapError(err)
	default:
		v, _, err := readRaw(k, name)
		return v, TypeUnknown, err
	}
}

func readRaw(k registry.Key, name string) ([]byte, uint32, error) {
	n, _, err := k.GetValue(name, nil)
	if err != nil {
		return nil, 0, mapError(err)
	}
	buf := make([]byte, n)
	n, kind, err := k.GetValue(name, buf)
	if err != nil {
		return nil, 0, mapError(err)
	}
	return buf[:n], kind, nil
}

// mapError translates registry errnos into the package sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, windows.ERROR_FILE_NOT_FOUND), stderrors.Is(err, windows.ERROR_PATH_NOT_FOUND):
		return fmt.Errorf("%w: %w", ErrNotExist, err)
	case stderrors.Is(err, windows.ERROR_NOT_SUPPORTED), stderrors.Is(err, windows.ERROR_CALL_NOT_IMPLEMENTED):
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	default:
		return err
	}
}
