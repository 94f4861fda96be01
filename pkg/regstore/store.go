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

package regstore

import (
	stderrors "errors"
)

// Handle identifies an open key in a Store.
type Handle uintptr

// Predefined root keys. The values match the operating system's reserved
// handles so backends can use them directly.
const (
	ClassesRoot   Handle = 0x80000000
	CurrentUser   Handle = 0x80000001
	LocalMachine  Handle = 0x80000002
	Users         Handle = 0x80000003
	CurrentConfig Handle = 0x80000005
)

// Access is the access mask requested when opening a key.
type Access uint32

const (
	// AccessRead requests read access in the caller's native view.
	AccessRead Access = 0x20019
	// AccessRead64 requests read access in the 64-bit view.
	AccessRead64 Access = AccessRead | 0x0100
)

// ValueType tags the payload of a Value.
type ValueType int

const (
	TypeUnknown ValueType = iota
	TypeString
	TypeDWord
	TypeBinary
)

// String returns the type tag name.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeDWord:
		return "DWORD"
	case TypeBinary:
		return "BINARY"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrUnsupported is returned by Store.EnumValue when typed enumeration is
	// not available for a key.
	ErrUnsupported = stderrors.New("operation not supported")

	// ErrNotExist is returned when a key or value does not exist.
	ErrNotExist = stderrors.New("key or value does not exist")
)

// Store is the primitive set of a hierarchical key/value store.
//
// Raw payloads are string, []string, uint32, uint64 or []byte.
type Store interface {
	Open(parent Handle, path string, access Access) (Handle, error)
	Close(h Handle) error
	// Stat returns the number of subkeys and values of h.
	Stat(h Handle) (subkeys, values int, err error)
	EnumKey(h Handle, index int) (string, error)
	EnumValue(h Handle, index int) (name string, raw any, typ ValueType, err error)
	EnumValueUntyped(h Handle, index int) (name string, raw any, err error)
	// Query reads a named value of h. It returns ErrNotExist when the value
	// is absent.
	Query(h Handle, name string) (raw any, typ ValueType, err error)
}

// Value is one enumerated value of a key.
type Value struct {
	Name string    `json:"name" yaml:"name"`
	Raw  any       `json:"raw" yaml:"raw"`
	Type ValueType `json:"type" yaml:"type"`
}

// Subkey is a child key and its name. Key is only valid inside the loop body
// that received it.
type Subkey struct {
	Name string
	Key  *Key
}

// Program is one installed-software entry.
type Program struct {
	Name            string `json:"name" yaml:"name"`
	Publisher       string `json:"publisher" yaml:"publisher"`
	InstallLocation string `json:"install_location" yaml:"install_location"`
}

// MarshalText encodes the type tag by name.
func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
