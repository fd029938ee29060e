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

package proxy

import "github.com/anyks/awh/errors"

const (
	ErrorRouteInvalid errors.CodeError = iota + errors.MinPkgProxy
	ErrorAlreadyRunning
	ErrorNotRunning
	ErrorListenFailed
	ErrorDialUpstreamFailed
	ErrorUnsupportedMode
	ErrorNotConnect
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorRouteInvalid)
	errors.RegisterIdFctMessage(ErrorRouteInvalid, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorRouteInvalid:
		return "route configuration is invalid"
	case ErrorAlreadyRunning:
		return "proxy server is already running"
	case ErrorNotRunning:
		return "proxy server is not running"
	case ErrorListenFailed:
		return "opening a route's listener failed"
	case ErrorDialUpstreamFailed:
		return "dialing the upstream failed"
	case ErrorUnsupportedMode:
		return "unsupported route mode"
	case ErrorNotConnect:
		return "forward route requires an HTTP CONNECT request"
	}

	return ""
}
