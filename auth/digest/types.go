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

// Package digest implements RFC 2617 / RFC 7616 HTTP Digest access
// authentication: a server-side gin middleware that issues challenges and
// validates responses, and a Client helper that computes responses and
// tracks the strictly-increasing nc counter for a caller playing the client
// role (e.g. the engine's forward-proxy path authenticating to an upstream).
package digest

import "strings"

// Algorithm identifies the hash construction used for HA1/HA2/response, per
// RFC 7616 section 6.1. The "-sess" variants fold the nonce/cnonce into HA1.
type Algorithm string

const (
	AlgorithmMD5           Algorithm = "MD5"
	AlgorithmMD5Sess       Algorithm = "MD5-sess"
	AlgorithmSHA256        Algorithm = "SHA-256"
	AlgorithmSHA256Sess    Algorithm = "SHA-256-sess"
	AlgorithmSHA512256     Algorithm = "SHA-512-256"
	AlgorithmSHA512256Sess Algorithm = "SHA-512-256-sess"
)

func (a Algorithm) sessionVariant() bool {
	return strings.HasSuffix(string(a), "-sess")
}

// Challenge is the set of parameters a server issues in a WWW-Authenticate
// Digest header, and a client echoes back (realm, nonce, opaque, algorithm)
// alongside its own contribution (cnonce, nc, response).
type Challenge struct {
	Realm     string
	Nonce     string
	Opaque    string
	Algorithm Algorithm
	QOP       string // "auth", the only qop this package issues
}

// Credentials is what a client needs to compute a response: its identity,
// secret, and the request line being authenticated.
type Credentials struct {
	Username string
	Password string
	Method   string
	URI      string
}

// ValidatorFunc looks up the password for username, returning ok=false if
// no such user exists. Passwords are never transmitted in the clear by
// Digest, so implementations must hold the plaintext (or an HA1 precompute)
// server-side.
type ValidatorFunc func(username string) (password string, ok bool)
