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

import "fmt"

// State is a position in the socks5 handshake state machine:
// METHOD -> (AUTH?) -> REQUEST -> RESPONSE -> HANDSHAKE | BROKEN.
type State uint8

const (
	StateMethod State = iota
	StateAuth
	StateRequest
	StateResponse
	StateHandshake
	StateBroken
)

func (s State) String() string {
	switch s {
	case StateMethod:
		return "METHOD"
	case StateAuth:
		return "AUTH"
	case StateRequest:
		return "REQUEST"
	case StateResponse:
		return "RESPONSE"
	case StateHandshake:
		return "HANDSHAKE"
	case StateBroken:
		return "BROKEN"
	}
	return "UNKNOWN"
}

// Method is a SOCKS5 authentication method identifier (RFC 1928 section 3).
type Method uint8

const (
	MethodNoAuth       Method = 0x00
	MethodPassword     Method = 0x02
	MethodNoAcceptable Method = 0xFF
)

// Command is a SOCKS5 request command (RFC 1928 section 4). Only CONNECT
// is implemented; BIND and UDP_ASSOCIATE are rejected with CmdUnsupported.
type Command uint8

const (
	CmdConnect      Command = 0x01
	CmdBind         Command = 0x02
	CmdUDPAssociate Command = 0x03
)

// AddrType is a SOCKS5 address type tag (RFC 1928 section 5).
type AddrType uint8

const (
	AddrIPv4   AddrType = 0x01
	AddrDomain AddrType = 0x03
	AddrIPv6   AddrType = 0x04
)

// Reply is the `rep` field of a SOCKS5 reply (RFC 1928 section 6).
type Reply uint8

const (
	ReplySucceeded          Reply = 0x00
	ReplyGeneralFailure     Reply = 0x01
	ReplyNotAllowed         Reply = 0x02
	ReplyNetworkUnreachable Reply = 0x03
	ReplyHostUnreachable    Reply = 0x04
	ReplyConnectionRefused  Reply = 0x05
	ReplyTTLExpired         Reply = 0x06
	ReplyCommandUnsupported Reply = 0x07
	ReplyAddressUnsupported Reply = 0x08
)

const socksVersion = 0x05

// Address is a SOCKS5 destination address: a v4/v6 IP or a domain name,
// plus a port in host byte order.
type Address struct {
	Type   AddrType
	IP     []byte // 4 or 16 bytes, set when Type is AddrIPv4/AddrIPv6
	Domain string // set when Type is AddrDomain
	Port   uint16
}

func (a Address) String() string {
	switch a.Type {
	case AddrDomain:
		return fmt.Sprintf("%s:%d", a.Domain, a.Port)
	case AddrIPv4, AddrIPv6:
		return fmt.Sprintf("%s:%d", ipString(a.IP), a.Port)
	}
	return fmt.Sprintf("<unknown>:%d", a.Port)
}

func ipString(ip []byte) string {
	if len(ip) == 4 {
		return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
	}
	out := make([]byte, 0, 40)
	for i := 0; i < len(ip); i += 2 {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, []byte(fmt.Sprintf("%02x%02x", ip[i], ip[i+1]))...)
	}
	return string(out)
}

// Credentials is a username/password pair offered during MethodPassword
// sub-negotiation (RFC 1929).
type Credentials struct {
	Username string
	Password string
}

// Authenticator validates credentials offered by a client. Returning false
// causes the server to reply with a failure status and transition to BROKEN.
type Authenticator func(creds Credentials) bool

// Resolver maps a requested Address to the Reply a server should answer
// with, and, on ReplySucceeded, the bound address reported back to the
// client. Implementations perform the actual outbound dial/resolution.
type Resolver func(addr Address) (Reply, Address)
