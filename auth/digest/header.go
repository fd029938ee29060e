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

import "strings"

const (
	HeaderAuthRequire = "WWW-Authenticate"
	HeaderAuthSend    = "Authorization"
	authScheme        = "Digest"
)

// parsePairs parses the comma-separated k=v (optionally quoted) pairs
// carried by a Digest Authorization/WWW-Authenticate header value.
func parsePairs(value string) (map[string]string, error) {
	out := make(map[string]string)

	rest := value
	for len(rest) > 0 {
		rest = strings.TrimLeft(rest, " ,")
		if rest == "" {
			break
		}

		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return nil, ErrorMalformedHeader.Error()
		}
		key := strings.TrimSpace(rest[:eq])
		rest = rest[eq+1:]

		var val string
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, ErrorMalformedHeader.Error()
			}
			val = rest[1 : 1+end]
			rest = rest[1+end+1:]
		} else {
			comma := strings.IndexByte(rest, ',')
			if comma < 0 {
				val = strings.TrimSpace(rest)
				rest = ""
			} else {
				val = strings.TrimSpace(rest[:comma])
				rest = rest[comma:]
			}
		}

		out[key] = val
	}

	return out, nil
}

// buildChallengeHeader formats a WWW-Authenticate: Digest ... value.
func buildChallengeHeader(c Challenge) string {
	var b strings.Builder
	b.WriteString(authScheme)
	b.WriteString(` realm="`)
	b.WriteString(c.Realm)
	b.WriteString(`", qop="`)
	b.WriteString(c.QOP)
	b.WriteString(`", nonce="`)
	b.WriteString(c.Nonce)
	b.WriteString(`", opaque="`)
	b.WriteString(c.Opaque)
	b.WriteString(`", algorithm=`)
	b.WriteString(string(c.Algorithm))
	return b.String()
}
