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

package basic

import (
	"net/http"

	ginsdk "github.com/gin-gonic/gin"
)

// AuthCode is the three-way outcome of a credential check.
type AuthCode uint8

const (
	AuthCodeSuccess AuthCode = iota
	AuthCodeRequire
	AuthCodeForbidden
)

const (
	HeaderAuthRequire = "WWW-Authenticate"
	HeaderAuthSend    = "Authorization"
	HeaderAuthReal    = `Basic realm="Restricted"`
	authScheme        = "Basic"
)

// AuthRequire aborts the request with 401 and a WWW-Authenticate challenge.
func AuthRequire(c *ginsdk.Context, err error) {
	c.Header(HeaderAuthRequire, HeaderAuthReal)
	if err != nil {
		_ = c.Error(err).SetType(ginsdk.ErrorTypePrivate)
	}
	c.AbortWithStatus(http.StatusUnauthorized)
}

// AuthForbidden aborts the request with 403.
func AuthForbidden(c *ginsdk.Context, err error) {
	if err != nil {
		_ = c.Error(err).SetType(ginsdk.ErrorTypePrivate)
	}
	c.AbortWithStatus(http.StatusForbidden)
}
