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

package runner

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// DefaultEncoding is the code page assumed for output that is neither UTF-8
// nor BOM-marked UTF-16.
var DefaultEncoding encoding.Encoding = charmap.CodePage437

// LookupEncoding resolves an IANA encoding name such as "IBM437" or
// "windows-1252". An empty name selects DefaultEncoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultEncoding, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// Decode converts raw command output into a UTF-8 string.
func Decode(b []byte, fallback encoding.Encoding) (string, error) {
	if bytes.HasPrefix(b, bomUTF16LE) || bytes.HasPrefix(b, bomUTF16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, b)
		if err != nil {
			return "", fmt.Errorf("failed to decode UTF-16 output: %w", err)
		}
		return string(out), nil
	}

	b = bytes.TrimPrefix(b, bomUTF8)
	if utf8.Valid(b) {
		return string(b), nil
	}

	if fallback == nil {
		fallback = DefaultEncoding
	}
	out, _, err := transform.Bytes(fallback.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("failed to decode legacy code page output: %w", err)
	}
	return string(out), nil
}
