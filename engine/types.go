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

// Package engine provides a unified non-blocking endpoint abstraction over
// TCP, UDP, UDP+DTLS, TCP+TLS, SCTP and UNIX-domain sockets, folding TLS/DTLS
// handshake and hostname verification behind a single read/write/shutdown
// contract so upper protocols never touch a raw socket directly.
package engine

// Sonet identifies the transport carried by an Endpoint.
type Sonet uint8

const (
	SonetTCP Sonet = iota
	SonetUDP
	SonetTLS
	SonetDTLS
	SonetSCTP
	SonetUnix
	SonetICMP
)

func (s Sonet) String() string {
	switch s {
	case SonetTCP:
		return "tcp"
	case SonetUDP:
		return "udp"
	case SonetTLS:
		return "tls"
	case SonetDTLS:
		return "dtls"
	case SonetSCTP:
		return "sctp"
	case SonetUnix:
		return "unix"
	case SonetICMP:
		return "icmp"
	default:
		return "unknown"
	}
}

// Secure reports whether this transport wraps a handshake layer.
func (s Sonet) Secure() bool {
	return s == SonetTLS || s == SonetDTLS
}

// Family is the address family of an Endpoint.
type Family uint8

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
	FamilyUnix
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	case FamilyUnix:
		return "unix"
	default:
		return "unknown"
	}
}

// Role distinguishes the client/server side of a handshake, mirroring
// spec.md's wrap()/wrap_server() split.
type Role uint8

const (
	RoleClient Role = iota
	RoleServer
)

// VerifyMode controls how strictly a TLS/DTLS peer certificate is checked.
type VerifyMode uint8

const (
	VerifyNone VerifyMode = iota
	VerifyPeer
	VerifyOptional
)
