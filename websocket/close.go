/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package websocket

import (
	"encoding/binary"
	"unicode/utf8"
)

// CloseSynthetic is substituted for an invalid or absent close code, per
// spec.md §4.7.
const CloseSynthetic = 1006

// CloseMinValid and CloseMaxValid bound the status-code subset this codebase
// accepts on the wire.
const (
	CloseMinValid = 1000
	CloseMaxValid = 4999
)

// BuildClose encodes a CLOSE payload as big-endian u16 code followed by a
// utf8 reason.
func BuildClose(code uint16, reason string) []byte {
	out := make([]byte, 2+len(reason))
	binary.BigEndian.PutUint16(out, code)
	copy(out[2:], reason)
	return out
}

// ParseClose decodes a CLOSE payload. An empty payload yields code 0 (no
// code given) with no error. A malformed code, an out-of-range code, or a
// non-utf8 reason yields CloseSynthetic.
func ParseClose(payload []byte) (code uint16, reason string) {
	if len(payload) == 0 {
		return 0, ""
	}
	if len(payload) < 2 {
		return CloseSynthetic, ""
	}

	code = binary.BigEndian.Uint16(payload[:2])
	reason = string(payload[2:])

	if code < CloseMinValid || code > CloseMaxValid || !utf8.ValidString(reason) {
		return CloseSynthetic, ""
	}

	return code, reason
}
