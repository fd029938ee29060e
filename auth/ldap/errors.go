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

import "github.com/anyks/awh/errors"

const (
	ErrorParamEmpty errors.CodeError = iota + errors.MinPkgAuthLDAP
	ErrorConfigInvalid
	ErrorServerDial
	ErrorServerTLS
	ErrorServerStartTLS
	ErrorBind
	ErrorSearch
	ErrorUserNotUniq
	ErrorUserNotFound
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamEmpty)
	errors.RegisterIdFctMessage(ErrorParamEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorParamEmpty:
		return "given parameter is empty"
	case ErrorConfigInvalid:
		return "ldap config is not well defined"
	case ErrorServerDial:
		return "dialing ldap server failed"
	case ErrorServerTLS:
		return "dialing ldap server with tls failed"
	case ErrorServerStartTLS:
		return "starttls negotiation with ldap server failed"
	case ErrorBind:
		return "binding to ldap server failed"
	case ErrorSearch:
		return "ldap search request failed"
	case ErrorUserNotUniq:
		return "user uid is not unique"
	case ErrorUserNotFound:
		return "user uid was not found"
	}

	return ""
}
