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

// Package ldap adapts an LDAP directory into the Validator/Authenticator
// shapes used by auth/basic and socks5: a username/password pair is
// authenticated by resolving the user's DN through a search filter, then
// binding as that DN with the supplied password.
package ldap

import (
	"fmt"

	validator "github.com/go-playground/validator/v10"
)

// TLSMode selects how the connection to the directory is secured.
type TLSMode uint8

const (
	tlsModeInit TLSMode = iota
	TLSModeNone
	TLSModeTLS
	TLSModeStartTLS
)

func (m TLSMode) String() string {
	switch m {
	case TLSModeTLS:
		return "tls"
	case TLSModeStartTLS:
		return "starttls"
	case TLSModeNone:
		return "none"
	}
	return "not defined"
}

const (
	groupFieldCN = "cn"
	userFieldUID = "uid"
)

// Config describes how to reach and search a directory.
type Config struct {
	URI         string `mapstructure:"uri" json:"uri" yaml:"uri" validate:"required"`
	PortLDAP    int    `mapstructure:"port_ldap" json:"port_ldap" yaml:"port_ldap" validate:"omitempty,gt=0,nefield=PortLDAPS"`
	PortLDAPS   int    `mapstructure:"port_ldaps" json:"port_ldaps" yaml:"port_ldaps" validate:"omitempty,gt=0,nefield=PortLDAP"`
	BaseDN      string `mapstructure:"basedn" json:"basedn" yaml:"basedn" validate:"required"`
	FilterGroup string `mapstructure:"filter_group" json:"filter_group" yaml:"filter_group" validate:"required"`
	FilterUser  string `mapstructure:"filter_user" json:"filter_user" yaml:"filter_user" validate:"required"`
}

// Validate checks the config against its struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return ErrorConfigInvalid.Error(err)
	}
	return nil
}

// ServerAddr formats the host:port to dial for the requested security mode.
func (c Config) ServerAddr(tls bool) string {
	if tls && c.PortLDAPS > 0 {
		return fmt.Sprintf("%s:%d", c.URI, c.PortLDAPS)
	}
	if !tls && c.PortLDAP > 0 {
		return fmt.Sprintf("%s:%d", c.URI, c.PortLDAP)
	}
	return ""
}
