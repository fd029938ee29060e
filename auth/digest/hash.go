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

package digest

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
)

func hashFor(alg Algorithm) (func([]byte) []byte, error) {
	switch {
	case strings.HasPrefix(string(alg), "MD5"):
		return func(b []byte) []byte { sum := md5.Sum(b); return sum[:] }, nil
	case strings.HasPrefix(string(alg), "SHA-256"):
		return func(b []byte) []byte { sum := sha256.Sum256(b); return sum[:] }, nil
	case strings.HasPrefix(string(alg), "SHA-512-256"):
		return func(b []byte) []byte { sum := sha512.Sum512_256(b); return sum[:] }, nil
	}
	return nil, ErrorUnknownAlgorithm.Error()
}

func hexHash(h func([]byte) []byte, parts ...string) string {
	return hex.EncodeToString(h([]byte(strings.Join(parts, ":"))))
}

// computeResponse implements RFC 7616 section 3.4.1's response formula for
// qop=auth (the only qop this package issues or accepts).
func computeResponse(alg Algorithm, username, realm, password, nonce, cnonce, nc, qop, method, uri string) (string, error) {
	h, err := hashFor(alg)
	if err != nil {
		return "", err
	}

	ha1 := hexHash(h, username, realm, password)
	if alg.sessionVariant() {
		ha1 = hexHash(h, ha1, nonce, cnonce)
	}

	ha2 := hexHash(h, method, uri)

	if qop == "" {
		return hexHash(h, ha1, nonce, ha2), nil
	}
	return hexHash(h, ha1, nonce, nc, cnonce, qop, ha2), nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func newOpaque() (string, error) {
	return randomHex(8)
}

func formatNC(nc uint32) string {
	return fmt.Sprintf("%08x", nc)
}
