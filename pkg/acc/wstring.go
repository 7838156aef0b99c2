/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package acc

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// WString15 is a NUL-terminated wchar_t[15] field.
type WString15 [30]byte

func (w WString15) String() string { return decodeWString(w[:]) }

// NewWString15 encodes s, truncating it to fit with its terminator.
func NewWString15(s string) (w WString15) {
	encodeWString(w[:], s)
	return w
}

// WString33 is a NUL-terminated wchar_t[33] field.
type WString33 [66]byte

func (w WString33) String() string { return decodeWString(w[:]) }

// NewWString33 encodes s, truncating it to fit with its terminator.
func NewWString33(s string) (w WString33) {
	encodeWString(w[:], s)
	return w
}

func decodeWString(raw []byte) string {
	n := len(raw) &^ 1
	for i := 0; i+1 < n; i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			n = i
			break
		}
	}
	out, err := utf16le.NewDecoder().Bytes(raw[:n])
	if err != nil {
		return ""
	}
	return string(out)
}

func encodeWString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return
	}
	// keep room for the terminator and never split a code unit or a
	// surrogate pair
	limit := (len(dst) - 2) &^ 1
	if len(enc) > limit {
		enc = enc[:limit]
		if n := len(enc); n >= 2 && isHighSurrogate(binary.LittleEndian.Uint16(enc[n-2:])) {
			enc = enc[:n-2]
		}
	}
	copy(dst, enc)
}

func isHighSurrogate(u uint16) bool { return u >= 0xd800 && u < 0xdc00 }
