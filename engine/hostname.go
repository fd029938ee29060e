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
	"crypto/x509"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// matchHostname implements the verification rule from spec.md §4.2: a SAN
// DNS/IP entry must match, case-insensitively; a single leading "*" label
// matches exactly one label and never spans a dot; CN is only consulted when
// the certificate carries no SAN entries at all; both sides are compared
// post-punycode.
func matchHostname(cert *x509.Certificate, host string) bool {
	host = normalizeHost(host)

	if ip := net.ParseIP(host); ip != nil {
		for _, sanIP := range cert.IPAddresses {
			if sanIP.Equal(ip) {
				return true
			}
		}
		return false
	}

	if len(cert.DNSNames) == 0 {
		return matchPattern(normalizeHost(cert.Subject.CommonName), host)
	}

	for _, name := range cert.DNSNames {
		if matchPattern(normalizeHost(name), host) {
			return true
		}
	}

	return false
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSuffix(h, "."))
	if ascii, err := idna.ToASCII(h); err == nil {
		return ascii
	}
	return h
}

// matchPattern compares a certificate pattern against a host, allowing a
// single leading "*" label to stand in for exactly one non-empty label.
func matchPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}

	if !strings.HasPrefix(pattern, "*.") {
		return false
	}

	patternRest := pattern[2:]
	dot := strings.IndexByte(host, '.')
	if dot < 0 {
		return false
	}

	hostLabel, hostRest := host[:dot], host[dot+1:]
	if hostLabel == "" || strings.Contains(hostLabel, ".") {
		return false
	}

	return patternRest == hostRest
}
