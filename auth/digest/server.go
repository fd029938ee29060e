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
	"net/http"
	"strconv"
	"sync"

	ginsdk "github.com/gin-gonic/gin"

	"github.com/anyks/awh/logger"
)

// AuthCode mirrors auth/basic's three-way outcome.
type AuthCode uint8

const (
	AuthCodeSuccess AuthCode = iota
	AuthCodeRequire
	AuthCodeForbidden
)

type nonceState struct {
	lastNC uint32
}

// Authorization is gin middleware guarding a route behind Digest
// authentication, tracking one nonce per outstanding challenge and
// rejecting any request whose nc does not strictly increase for that nonce.
type Authorization struct {
	log       func() logger.Logger
	realm     string
	algorithm Algorithm
	lookup    ValidatorFunc

	mu     sync.Mutex
	nonces map[string]*nonceState
	opaque string

	handlers []ginsdk.HandlerFunc
}

// NewDigestAuth builds an Authorization issuing challenges for realm using
// algorithm, validating responses via lookup. logFunc may be nil.
func NewDigestAuth(logFunc func() logger.Logger, realm string, algorithm Algorithm, lookup ValidatorFunc) (*Authorization, error) {
	opaque, err := newOpaque()
	if err != nil {
		return nil, err
	}
	return &Authorization{
		log:       logFunc,
		realm:     realm,
		algorithm: algorithm,
		lookup:    lookup,
		nonces:    make(map[string]*nonceState),
		opaque:    opaque,
	}, nil
}

func (a *Authorization) logger() logger.Logger {
	if a.log == nil {
		return nil
	}
	return a.log()
}

func (a *Authorization) challenge() (Challenge, error) {
	nonce, err := randomHex(16)
	if err != nil {
		return Challenge{}, err
	}

	a.mu.Lock()
	a.nonces[nonce] = &nonceState{}
	a.mu.Unlock()

	return Challenge{
		Realm:     a.realm,
		Nonce:     nonce,
		Opaque:    a.opaque,
		Algorithm: a.algorithm,
		QOP:       "auth",
	}, nil
}

func (a *Authorization) sendChallenge(c *ginsdk.Context) error {
	ch, err := a.challenge()
	if err != nil {
		return err
	}
	c.Header(HeaderAuthRequire, buildChallengeHeader(ch))
	return nil
}

func (a *Authorization) check(c *ginsdk.Context) (AuthCode, error) {
	header := c.GetHeader(HeaderAuthSend)
	if header == "" {
		return AuthCodeRequire, ErrorMissingHeader.Error()
	}

	if len(header) <= len(authScheme) || header[:len(authScheme)] != authScheme {
		return AuthCodeRequire, ErrorMalformedHeader.Error()
	}

	fields, err := parsePairs(header[len(authScheme):])
	if err != nil {
		return AuthCodeRequire, err
	}

	username, nonce, nc, cnonce, qop, response := fields["username"], fields["nonce"], fields["nc"], fields["cnonce"], fields["qop"], fields["response"]
	if username == "" || nonce == "" || response == "" {
		return AuthCodeRequire, ErrorMalformedHeader.Error()
	}

	a.mu.Lock()
	state, known := a.nonces[nonce]
	a.mu.Unlock()
	if !known {
		return AuthCodeRequire, ErrorStaleNonce.Error()
	}

	ncVal, err := strconv.ParseUint(nc, 16, 32)
	if err != nil {
		return AuthCodeForbidden, ErrorMalformedHeader.Error()
	}

	a.mu.Lock()
	replay := uint32(ncVal) <= state.lastNC
	if !replay {
		state.lastNC = uint32(ncVal)
	}
	a.mu.Unlock()
	if replay {
		return AuthCodeForbidden, ErrorReplayedNonceCount.Error()
	}

	password, ok := a.lookup(username)
	if !ok {
		return AuthCodeForbidden, ErrorUnknownUser.Error()
	}

	expected, err := computeResponse(a.algorithm, username, a.realm, password, nonce, cnonce, nc, qop, c.Request.Method, fields["uri"])
	if err != nil {
		return AuthCodeForbidden, err
	}
	if expected != response {
		return AuthCodeForbidden, ErrorResponseMismatch.Error()
	}

	return AuthCodeSuccess, nil
}

// Handler is the gin.HandlerFunc form of Authorization.
func (a *Authorization) Handler(c *ginsdk.Context) {
	code, err := a.check(c)

	switch code {
	case AuthCodeSuccess:
		for _, h := range a.handlers {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	case AuthCodeRequire:
		if log := a.logger(); log != nil {
			log.Warning("digest auth challenge", err)
		}
		if chErr := a.sendChallenge(c); chErr != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.AbortWithStatus(http.StatusUnauthorized)
	case AuthCodeForbidden:
		if log := a.logger(); log != nil {
			log.Warning("digest auth rejected", err)
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// Register sets the handler chain run after a successful check and returns
// Handler, ready to be wired directly into a gin route.
func (a *Authorization) Register(handlers ...ginsdk.HandlerFunc) ginsdk.HandlerFunc {
	a.handlers = handlers
	return a.Handler
}

// Append adds more handlers to the end of the chain set by Register.
func (a *Authorization) Append(handlers ...ginsdk.HandlerFunc) {
	a.handlers = append(a.handlers, handlers...)
}
