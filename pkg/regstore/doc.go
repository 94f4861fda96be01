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

// Package regstore walks a hierarchical key/value store such as the Windows
// registry and turns its keys and values into typed records.
//
// # Store
//
// Store is the narrow, index-based primitive set the walker needs: open and
// close a key, query its subkey and value counts, enumerate subkeys and values
// by index, and read a named value. NewSystemStore returns the operating
// system backend; on platforms without a registry it fails with
// errors.ErrCodeStoreAccess so callers degrade instead of aborting.
//
// # Handles
//
// Every Key returned by a Walker is owned by the frame that opened it and must
// be released exactly once. WithKey scopes a key to a callback and releases it
// on every exit path, including errors and panics:
//
//	w := regstore.NewWalker(store)
//	err := w.WithKey(regstore.LocalMachine, path, regstore.AccessRead, func(k *regstore.Key) error {
//	    for v, err := range w.Values(k) {
//	        if err != nil {
//	            return err
//	        }
//	        fmt.Printf("%s: %s\n", v.Name, regstore.Decode(v))
//	    }
//	    return nil
//	})
//
// Subkeys yields children that are open only for the duration of the loop
// body; the walker closes each child before advancing.
//
// # Value enumeration
//
// Values prefers the typed (three-field) enumeration. When the store reports
// ErrUnsupported on the first value of a key, the remaining values of that key
// are read with the untyped (two-field) primitive and tagged TypeUnknown. The
// choice is made once per key; sibling keys start with the typed primitive
// again.
package regstore
