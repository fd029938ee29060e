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

import "encoding/binary"

// encodeGreeting builds the client's version+methods identifier message.
func encodeGreeting(methods []Method) []byte {
	out := make([]byte, 2, 2+len(methods))
	out[0] = socksVersion
	out[1] = byte(len(methods))
	for _, m := range methods {
		out = append(out, byte(m))
	}
	return out
}

// encodeMethodSelection builds the server's method-selection reply.
func encodeMethodSelection(m Method) []byte {
	return []byte{socksVersion, byte(m)}
}

// encodeAuthRequest builds the RFC 1929 username/password sub-negotiation
// request: ver(1) ulen(1) uname(ulen) plen(1) passwd(plen).
func encodeAuthRequest(creds Credentials) []byte {
	u := []byte(creds.Username)
	p := []byte(creds.Password)
	out := make([]byte, 0, 3+len(u)+len(p))
	out = append(out, 0x01, byte(len(u)))
	out = append(out, u...)
	out = append(out, byte(len(p)))
	out = append(out, p...)
	return out
}

// encodeAuthStatus builds the RFC 1929 sub-negotiation status reply.
func encodeAuthStatus(ok bool) []byte {
	status := byte(0x01)
	if ok {
		status = 0x00
	}
	return []byte{0x01, status}
}

// encodeAddress appends a SOCKS5 address/port encoding to out.
func encodeAddress(out []byte, addr Address) []byte {
	out = append(out, byte(addr.Type))
	switch addr.Type {
	case AddrIPv4, AddrIPv6:
		out = append(out, addr.IP...)
	case AddrDomain:
		out = append(out, byte(len(addr.Domain)))
		out = append(out, []byte(addr.Domain)...)
	}
	port := make([]byte, 2)
	binary.BigEndian.PutUint16(port, addr.Port)
	return append(out, port...)
}

// encodeRequest builds a client CONNECT request.
func encodeRequest(cmd Command, addr Address) []byte {
	out := make([]byte, 0, 22)
	out = append(out, socksVersion, byte(cmd), 0x00)
	return encodeAddress(out, addr)
}

// encodeReply builds a server reply: ver(1) rep(1) rsv(1) then address+port.
// Per RFC 1928 the bound-address field may be zero-filled when the caller
// has nothing meaningful to report (e.g. on failure).
func encodeReply(rep Reply, bound Address) []byte {
	out := make([]byte, 0, 22)
	out = append(out, socksVersion, byte(rep), 0x00)
	if bound.Type == 0 {
		bound = Address{Type: AddrIPv4, IP: []byte{0, 0, 0, 0}, Port: 0}
	}
	return encodeAddress(out, bound)
}

// addressLen reports the wire length (including the 1-byte type tag and the
// 2-byte port, but not the leading type byte already consumed by callers
// that peek at it) once the type and, for AddrDomain, the length byte are
// known. It returns ok=false when data doesn't yet hold enough bytes to
// know the full length.
func addressWireLen(atype AddrType, data []byte) (n int, ok bool) {
	switch atype {
	case AddrIPv4:
		return 4 + 2, true
	case AddrIPv6:
		return 16 + 2, true
	case AddrDomain:
		if len(data) < 1 {
			return 0, false
		}
		return 1 + int(data[0]) + 2, true
	}
	return 0, false
}

// decodeAddress parses a type-tagged address+port starting at data[0]
// (the address type byte). It returns the number of bytes consumed.
func decodeAddress(data []byte) (addr Address, consumed int, ok bool, err error) {
	if len(data) < 1 {
		return Address{}, 0, false, nil
	}
	atype := AddrType(data[0])
	body := data[1:]
	wireLen, known := addressWireLen(atype, body)
	if !known {
		return Address{}, 0, false, ErrorUnsupportedAddressType.Error()
	}
	if len(body) < wireLen {
		return Address{}, 0, false, nil
	}

	switch atype {
	case AddrIPv4:
		addr.Type = AddrIPv4
		addr.IP = append([]byte(nil), body[:4]...)
		addr.Port = binary.BigEndian.Uint16(body[4:6])
	case AddrIPv6:
		addr.Type = AddrIPv6
		addr.IP = append([]byte(nil), body[:16]...)
		addr.Port = binary.BigEndian.Uint16(body[16:18])
	case AddrDomain:
		dlen := int(body[0])
		addr.Type = AddrDomain
		addr.Domain = string(body[1 : 1+dlen])
		addr.Port = binary.BigEndian.Uint16(body[1+dlen : 1+dlen+2])
	}

	return addr, 1 + wireLen, true, nil
}
