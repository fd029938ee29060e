/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package engine

import "github.com/anyks/awh/errors"

// ErrorKind classifies engine failures the way callers must branch on them:
// a fatal transport error closes the endpoint, WOULD_BLOCK does not.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindWouldBlock
	KindInterrupted
	KindClosed
	KindTLSWantRead
	KindTLSWantWrite
	KindFatal
)

func (k ErrorKind) String() string {
	switch k {
	case KindWouldBlock:
		return "WOULD_BLOCK"
	case KindInterrupted:
		return "INTERRUPTED"
	case KindClosed:
		return "CLOSED"
	case KindTLSWantRead:
		return "TLS_WANT_READ"
	case KindTLSWantWrite:
		return "TLS_WANT_WRITE"
	case KindFatal:
		return "FATAL"
	default:
		return "NONE"
	}
}

const (
	ErrorSonetUnsupported errors.CodeError = iota + errors.MinPkgEngine
	ErrorAlreadyWrapped
	ErrorHandshakeRequired
	ErrorHostnameMismatch
	ErrorSCTPUnavailable
	ErrorUnixPermission
	ErrorEndpointClosed
	ErrorDatagramTooLarge
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorSonetUnsupported)
	errors.RegisterIdFctMessage(ErrorSonetUnsupported, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorSonetUnsupported:
		return "unsupported transport kind"
	case ErrorAlreadyWrapped:
		return "endpoint already wrapped"
	case ErrorHandshakeRequired:
		return "handshake must complete before application I/O"
	case ErrorHostnameMismatch:
		return "peer certificate does not match requested hostname"
	case ErrorSCTPUnavailable:
		return "SCTP is not available on this platform"
	case ErrorUnixPermission:
		return "cannot apply permissions to unix socket path"
	case ErrorEndpointClosed:
		return "endpoint is closed"
	case ErrorDatagramTooLarge:
		return "decoded datagram exceeds caller buffer"
	}

	return ""
}
