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

package websocket

import "github.com/anyks/awh/errors"

const (
	ErrorControlFrameTooLarge errors.CodeError = iota + errors.MinPkgWebsocket
	ErrorControlFrameFragmented
	ErrorInvalidCloseCode
	ErrorHandshakeRejected
	ErrorUnknownExtension
	ErrorCompressionFailed
	ErrorEncryptionFailed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorControlFrameTooLarge)
	errors.RegisterIdFctMessage(ErrorControlFrameTooLarge, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorControlFrameTooLarge:
		return "control frame payload exceeds 125 bytes"
	case ErrorControlFrameFragmented:
		return "control frame must not be fragmented"
	case ErrorInvalidCloseCode:
		return "close frame carries an invalid status code"
	case ErrorHandshakeRejected:
		return "opening handshake was rejected"
	case ErrorUnknownExtension:
		return "unrecognized permessage extension token"
	case ErrorCompressionFailed:
		return "permessage compression/decompression failed"
	case ErrorEncryptionFailed:
		return "permessage encryption/decryption failed"
	}

	return ""
}
