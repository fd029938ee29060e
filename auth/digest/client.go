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
	"strings"
	"sync"
)

// Client plays the requesting side of Digest auth: it holds the nc counter
// that must strictly increase across every response sent for a given nonce.
type Client struct {
	mu sync.Mutex
	nc uint32
}

// NewClient returns a Client with its nc counter at zero.
func NewClient() *Client {
	return &Client{}
}

// NextNC advances and returns the next nc value to use.
func (cl *Client) NextNC() uint32 {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.nc++
	return cl.nc
}

// Authorize builds the Authorization: Digest ... header value satisfying
// challenge for creds, generating a fresh cnonce and advancing nc.
func (cl *Client) Authorize(challenge Challenge, creds Credentials) (string, error) {
	cnonce, err := randomHex(8)
	if err != nil {
		return "", err
	}
	nc := formatNC(cl.NextNC())

	response, err := computeResponse(challenge.Algorithm, creds.Username, challenge.Realm, creds.Password,
		challenge.Nonce, cnonce, nc, challenge.QOP, creds.Method, creds.URI)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(authScheme)
	b.WriteString(` username="`)
	b.WriteString(creds.Username)
	b.WriteString(`", realm="`)
	b.WriteString(challenge.Realm)
	b.WriteString(`", nonce="`)
	b.WriteString(challenge.Nonce)
	b.WriteString(`", uri="`)
	b.WriteString(creds.URI)
	b.WriteString(`", qop=`)
	b.WriteString(challenge.QOP)
	b.WriteString(`, nc=`)
	b.WriteString(nc)
	b.WriteString(`, cnonce="`)
	b.WriteString(cnonce)
	b.WriteString(`", response="`)
	b.WriteString(response)
	b.WriteString(`"`)
	if challenge.Opaque != "" {
		b.WriteString(`, opaque="`)
		b.WriteString(challenge.Opaque)
		b.WriteString(`"`)
	}
	if challenge.Algorithm != "" {
		b.WriteString(`, algorithm=`)
		b.WriteString(string(challenge.Algorithm))
	}

	return b.String(), nil
}
