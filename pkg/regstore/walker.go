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
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/NVIDIA/sysreport/pkg/errors"
)

const pathSeparator = `\`

// Named values that make up an installed-software entry.
var programValueNames = [3]string{"DisplayName", "Publisher", "InstallLocation"}

type enumMode int

const (
	modeRich enumMode = iota
	modeDegraded
)

// Walker traverses a Store and tracks the handles it has opened.
type Walker struct {
	store Store
	open  int
}

// NewWalker returns a Walker over store.
func NewWalker(store Store) *Walker {
	return &Walker{store: store}
}

// OpenHandles returns the number of keys opened by w and not yet closed.
func (w *Walker) OpenHandles() int {
	return w.open
}

// Key is an open key owned by the frame that opened it.
type Key struct {
	w      *Walker
	handle Handle
	path   string
	access Access
	closed bool
}

// Handle returns the store handle of k.
func (k *Key) Handle() Handle {
	return k.handle
}

// Path returns the path k was opened with, relative to its root.
func (k *Key) Path() string {
	return k.path
}

// Close releases k. Calls after the first are no-ops.
func (k *Key) Close() error {
	if k == nil || k.closed {
		return nil
	}
	k.closed = true
	k.w.open--

	if err := k.w.store.Close(k.handle); err != nil {
		return errors.WrapWithContext(errors.ErrCodeStoreAccess, "failed to close key", err,
			map[string]any{"path": k.path})
	}
	slog.Debug("closed key", slog.String("path", k.path))
	return nil
}

// Open opens path under parent. A missing path or a denied access is
// reported as errors.ErrCodeStoreAccess.
func (w *Walker) Open(parent Handle, path string, access Access) (*Key, error) {
	return w.openPath(parent, path, path, access)
}

func (w *Walker) openPath(parent Handle, rel, full string, access Access) (*Key, error) {
	h, err := w.store.Open(parent, rel, access)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeStoreAccess, "failed to open key", err,
			map[string]any{"path": full})
	}
	w.open++
	slog.Debug("opened key", slog.String("path", full))
	return &Key{w: w, handle: h, path: full, access: access}, nil
}

// WithKey opens path under parent, calls fn with the key and closes it when
// fn returns or panics. A close failure is returned only when fn succeeded.
func (w *Walker) WithKey(parent Handle, path string, access Access, fn func(*Key) error) (err error) {
	k, err := w.Open(parent, path, access)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := k.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(k)
}

// Subkeys enumerates the children of k in index order. Each yielded Subkey
// owns a freshly opened child with the access of k; the child is closed as
// soon as the loop body returns or panics. Children that fail to open are
// yielded with their name and an error.
func (w *Walker) Subkeys(k *Key) iter.Seq2[Subkey, error] {
	return func(yield func(Subkey, error) bool) {
		count, _, err := w.store.Stat(k.handle)
		if err != nil {
			yield(Subkey{}, errors.WrapWithContext(errors.ErrCodeStoreAccess, "failed to query key", err,
				map[string]any{"path": k.path}))
			return
		}

		for i := 0; i < count; i++ {
			name, err := w.store.EnumKey(k.handle, i)
			if err != nil {
				if !yield(Subkey{}, errors.WrapWithContext(errors.ErrCodeStoreAccess, "failed to enumerate subkey", err,
					map[string]any{"path": k.path, "index": i})) {
					return
				}
				continue
			}

			child, err := w.openPath(k.handle, name, k.path+pathSeparator+name, k.access)
			if err != nil {
				if !yield(Subkey{Name: name}, err) {
					return
				}
				continue
			}

			more := func() bool {
				defer closeChild(child)
				return yield(Subkey{Name: name, Key: child}, nil)
			}()
			if !more {
				return
			}
		}
	}
}

func closeChild(child *Key) {
	if err := child.Close(); err != nil {
		slog.Warn("failed to close subkey", slog.String("path", child.path), slog.String("error", err.Error()))
	}
}

// Values enumerates the values of k in index order. The typed primitive is
// tried first; if it reports ErrUnsupported for the first value, the rest of
// the key is enumerated untyped with TypeUnknown.
func (w *Walker) Values(k *Key) iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		_, count, err := w.store.Stat(k.handle)
		if err != nil {
			yield(Value{}, errors.WrapWithContext(errors.ErrCodeStoreAccess, "failed to query key", err,
				map[string]any{"path": k.path}))
			return
		}

		mode := modeRich
		for i := 0; i < count; i++ {
			var v Value

			if mode == modeRich {
				name, raw, typ, err := w.store.EnumValue(k.handle, i)
				switch {
				case err == nil:
					v = Value{Name: name, Raw: raw, Type: typ}
				case i == 0 && stderrors.Is(err, ErrUnsupported):
					slog.Debug("typed value enumeration unsupported, using untyped",
						slog.String("path", k.path))
					mode = modeDegraded
				default:
					code := errors.ErrCodeStoreAccess
					if stderrors.Is(err, ErrUnsupported) {
						code = errors.ErrCodeUnsupportedEnumeration
					}
					if !yield(Value{}, errors.WrapWithContext(code, "failed to enumerate value", err,
						map[string]any{"path": k.path, "index": i})) {
						return
					}
					continue
				}
			}

			if mode == modeDegraded {
				name, raw, err := w.store.EnumValueUntyped(k.handle, i)
				if err != nil {
					if !yield(Value{}, errors.WrapWithContext(errors.ErrCodeStoreAccess, "failed to enumerate value", err,
						map[string]any{"path": k.path, "index": i})) {
						return
					}
					continue
				}
				v = Value{Name: name, Raw: raw, Type: TypeUnknown}
			}

			if !yield(v, nil) {
				return
			}
		}
	}
}

// Decode renders v as text. Binary values become lowercase hex; everything
// else uses its natural form, with multi-strings joined by ", ".
func Decode(v Value) string {
	if v.Type == TypeBinary {
		if b, ok := v.Raw.([]byte); ok {
			return hex.EncodeToString(b)
		}
	}

	switch raw := v.Raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case []string:
		return strings.Join(raw, ", ")
	default:
		return fmt.Sprint(raw)
	}
}

// InstalledPrograms lists the entries under path that carry a display name,
// a publisher and an install location. Entries missing any of them, or that
// cannot be opened, are skipped.
func (w *Walker) InstalledPrograms(root Handle, path string) ([]Program, error) {
	programs := make([]Program, 0)

	err := w.WithKey(root, path, AccessRead64, func(k *Key) error {
		for sk, err := range w.Subkeys(k) {
			if err != nil {
				slog.Debug("skipping subkey", slog.String("name", sk.Name), slog.String("error", err.Error()))
				continue
			}
			p, err := w.program(sk.Key)
			if err != nil {
				slog.Debug("skipping incomplete program entry", slog.String("name", sk.Name))
				continue
			}
			programs = append(programs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("collected installed programs", slog.Int("count", len(programs)))
	return programs, nil
}

func (w *Walker) program(k *Key) (Program, error) {
	var fields [len(programValueNames)]string
	for i, name := range programValueNames {
		raw, typ, err := w.store.Query(k.handle, name)
		if err != nil {
			return Program{}, errors.WrapWithContext(errors.ErrCodeRecordIncomplete, "program entry is incomplete", err,
				map[string]any{"path": k.path, "value": name})
		}
		fields[i] = Decode(Value{Name: name, Raw: raw, Type: typ})
	}
	return Program{Name: fields[0], Publisher: fields[1], InstallLocation: fields[2]}, nil
}

// FlatValues returns every value of the key at path, without recursing into
// subkeys. Values that fail to enumerate are skipped.
func (w *Walker) FlatValues(root Handle, path string) ([]Value, error) {
	values := make([]Value, 0)

	err := w.WithKey(root, path, AccessRead, func(k *Key) error {
		for v, err := range w.Values(k) {
			if err != nil {
				slog.Debug("skipping value", slog.String("path", k.path), slog.String("error", err.Error()))
				continue
			}
			values = append(values, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
