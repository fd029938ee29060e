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

// Package basic implements RFC 7617 Basic HTTP authentication as a gin
// middleware: the Authorization header is decoded and the resulting
// username/password pair handed to a caller-supplied Validator.
package basic

import (
	"encoding/base64"
	"strings"

	ginsdk "github.com/gin-gonic/gin"

	"github.com/anyks/awh/logger"
)

// Validator checks a decoded username/password pair, typically against a
// user store or an upstream directory (see auth/ldap for an LDAP-backed one).
type Validator func(username, password string) bool

// Authorization is gin middleware guarding a route (or group of handlers)
// behind Basic authentication.
type Authorization struct {
	log       func() logger.Logger
	validator Validator
	handlers  []ginsdk.HandlerFunc
}

// NewBasicAuth builds an Authorization. logFunc may be nil.
func NewBasicAuth(logFunc func() logger.Logger, validator Validator) *Authorization {
	return &Authorization{log: logFunc, validator: validator}
}

func (a *Authorization) logger() logger.Logger {
	if a.log == nil {
		return nil
	}
	return a.log()
}

func (a *Authorization) check(c *ginsdk.Context) (AuthCode, error) {
	header := c.GetHeader(HeaderAuthSend)
	if header == "" {
		return AuthCodeRequire, ErrorMissingHeader.Error()
	}

	scheme, payload, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, authScheme) {
		return AuthCodeRequire, ErrorMalformedHeader.Error()
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return AuthCodeRequire, ErrorMalformedHeader.Error()
	}

	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return AuthCodeRequire, ErrorMalformedHeader.Error()
	}

	if !a.validator(username, password) {
		return AuthCodeForbidden, ErrorInvalidCredentials.Error()
	}

	return AuthCodeSuccess, nil
}

// Handler is the gin.HandlerFunc form of Authorization: it runs the
// credential check and, on success, invokes the handlers previously
// registered via Register/Append in order.
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
			log.Warning("basic auth challenge", err)
		}
		AuthRequire(c, err)
	case AuthCodeForbidden:
		if log := a.logger(); log != nil {
			log.Warning("basic auth rejected", err)
		}
		AuthForbidden(c, err)
	default:
		c.AbortWithStatus(500)
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
