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

import "github.com/anyks/awh/errors"

const (
	ErrorMissingHeader errors.CodeError = iota + errors.MinPkgAuthDigest
	ErrorMalformedHeader
	ErrorUnknownAlgorithm
	ErrorUnknownUser
	ErrorStaleNonce
	ErrorReplayedNonceCount
	ErrorResponseMismatch
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorMissingHeader)
	errors.RegisterIdFctMessage(ErrorMissingHeader, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorMissingHeader:
		return "authorization header is missing"
	case ErrorMalformedHeader:
		return "authorization header is not a well-formed Digest credential"
	case ErrorUnknownAlgorithm:
		return "digest algorithm is not recognized"
	case ErrorUnknownUser:
		return "no such user for digest authentication"
	case ErrorStaleNonce:
		return "nonce is unknown or has expired"
	case ErrorReplayedNonceCount:
		return "nc did not strictly increase, possible replay"
	case ErrorResponseMismatch:
		return "computed digest response did not match"
	}

	return ""
}
