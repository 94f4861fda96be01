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
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Registry value kinds whose payload is UTF-16LE text.
const (
	kindString       uint32 = 1 // REG_SZ
	kindExpandString uint32 = 2 // REG_EXPAND_SZ
	kindMultiString  uint32 = 7 // REG_MULTI_SZ
)

// decodeUntyped turns the raw payload of a value read without the typed
// primitive into its natural form: text kinds become a string (or []string
// for multi-strings) with NUL terminators removed, anything else stays
// []byte.
func decodeUntyped(buf []byte, kind uint32) any {
	switch kind {
	case kindString, kindExpandString, kindMultiString:
	default:
		return buf
	}

	text, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(buf)
	if err != nil {
		return buf
	}

	if kind != kindMultiString {
		s := string(text)
		if i := strings.IndexByte(s, 0); i >= 0 {
			s = s[:i]
		}
		return s
	}

	parts := make([]string, 0)
	for _, p := range strings.Split(string(text), "\x00") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
