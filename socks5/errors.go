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

package socks5

import "github.com/anyks/awh/errors"

const (
	ErrorUnsupportedVersion errors.CodeError = iota + errors.MinPkgSocks5
	ErrorNoAcceptableMethod
	ErrorAuthFailed
	ErrorMalformedRequest
	ErrorUnsupportedCommand
	ErrorUnsupportedAddressType
	ErrorAlreadyTunneling
	ErrorBroken
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorUnsupportedVersion)
	errors.RegisterIdFctMessage(ErrorUnsupportedVersion, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorUnsupportedVersion:
		return "unsupported socks version, only version 5 is handled"
	case ErrorNoAcceptableMethod:
		return "no acceptable authentication method"
	case ErrorAuthFailed:
		return "username/password authentication failed"
	case ErrorMalformedRequest:
		return "malformed socks5 request"
	case ErrorUnsupportedCommand:
		return "unsupported socks5 command, only CONNECT is handled"
	case ErrorUnsupportedAddressType:
		return "unsupported socks5 address type"
	case ErrorAlreadyTunneling:
		return "socks5 state machine already past the handshake, no re-handshake allowed"
	case ErrorBroken:
		return "socks5 state machine is broken and terminal"
	}

	return ""
}
