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

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/anyks/awh/certificates"
	tlsaut "github.com/anyks/awh/certificates/auth"
)

// TLSOptions carries everything wrap()/wrap_server() needs to build a
// *tls.Config for a single endpoint, on top of the shared certificate store.
type TLSOptions struct {
	Store      certificates.TLSConfig
	ServerName string
	ALPN       []string
	Verify     VerifyMode
	Role       Role
}

// buildTLSConfig turns TLSOptions into a *tls.Config whose hostname check
// matches spec.md §4.2 exactly instead of Go's default (SAN-or-CN, no
// fallback ordering guarantee).
func buildTLSConfig(opt TLSOptions) *tls.Config {
	store := opt.Store
	if store == nil {
		store = certificates.New()
	}

	cfg := store.TlsConfig(opt.ServerName)
	cfg.ServerName = opt.ServerName
	if len(opt.ALPN) > 0 {
		cfg.NextProtos = opt.ALPN
	}

	switch opt.Verify {
	case VerifyNone:
		cfg.InsecureSkipVerify = true
	case VerifyOptional:
		if opt.Role == RoleServer {
			cfg.ClientAuth = tls.VerifyClientCertIfGiven
		}
		cfg.InsecureSkipVerify = true
		cfg.VerifyPeerCertificate = verifyFunc(opt.ServerName, false)
	case VerifyPeer:
		if opt.Role == RoleServer {
			cfg.ClientAuth = tls.RequireAndVerifyClientCert
		}
		cfg.InsecureSkipVerify = true
		cfg.VerifyPeerCertificate = verifyFunc(opt.ServerName, true)
	}

	_ = tlsaut.NoClientCert // keep certificates/auth import path documented for readers

	return cfg
}

// verifyFunc builds the chain-plus-hostname check spec.md §4.2 requires:
// the peer cert must chain to the trusted store AND satisfy the SAN/CN
// hostname rule. required=false still checks the chain but tolerates an
// empty peer certificate list (VerifyOptional with nothing presented).
func verifyFunc(host string, required bool) func(raw [][]byte, chains [][]*x509.Certificate) error {
	return func(raw [][]byte, chains [][]*x509.Certificate) error {
		if len(raw) == 0 {
			if required {
				return ErrorHandshakeRequired.Error()
			}
			return nil
		}

		leaf, err := x509.ParseCertificate(raw[0])
		if err != nil {
			return err
		}

		if host != "" && !matchHostname(leaf, host) {
			return ErrorHostnameMismatch.Error()
		}

		return nil
	}
}
