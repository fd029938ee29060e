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

package ldap

import (
	"github.com/anyks/awh/auth/basic"
	"github.com/anyks/awh/socks5"
)

// BasicValidator adapts AuthUser to auth/basic's Validator shape, wiring an
// LDAP directory as the credential backend for a basic.Authorization.
func (cl *Client) BasicValidator() basic.Validator {
	return func(username, password string) bool {
		return cl.AuthUser(username, password) == nil
	}
}

// Socks5Authenticator adapts AuthUser to socks5's Authenticator shape.
func (cl *Client) Socks5Authenticator() socks5.Authenticator {
	return func(creds socks5.Credentials) bool {
		return cl.AuthUser(creds.Username, creds.Password) == nil
	}
}
