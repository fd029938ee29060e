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
	"context"
	"net"
	"strings"

	"golang.org/x/net/icmp"
)

// Dial establishes a plain (unwrapped) connection for the requested
// transport; callers needing TLS/DTLS layer it with WrapClient/dialDTLS
// afterwards.
func Dial(ctx context.Context, sonet Sonet, addr string) (net.Conn, error) {
	switch sonet {
	case SonetTCP, SonetTLS:
		return (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	case SonetUDP, SonetDTLS:
		return (&net.Dialer{}).DialContext(ctx, "udp", addr)
	case SonetUnix:
		return (&net.Dialer{}).DialContext(ctx, "unix", addr)
	case SonetSCTP:
		raddr, err := net.ResolveTCPAddr("tcp", addr)
		if err != nil {
			return nil, err
		}
		return dialSCTP("sctp", raddr)
	default:
		return nil, ErrorSonetUnsupported.Error()
	}
}

// Listen opens a listener for the requested transport. SCTP listeners are
// out of scope for this milestone (one-to-one association dialing only);
// they return ErrorSCTPUnavailable for symmetry with dialSCTP's behavior
// off Linux.
func Listen(sonet Sonet, addr string) (net.Listener, error) {
	switch sonet {
	case SonetTCP, SonetTLS:
		return net.Listen("tcp", addr)
	case SonetUnix:
		return net.Listen("unix", addr)
	default:
		return nil, ErrorSonetUnsupported.Error()
	}
}

// ListenPacket opens a PacketConn for UDP/DTLS, or for ICMP an unprivileged
// datagram-oriented ICMP socket (Linux ping_group_range; no raw-socket
// capability required) bound to addr's family.
func ListenPacket(sonet Sonet, addr string) (net.PacketConn, error) {
	switch sonet {
	case SonetUDP, SonetDTLS:
		return net.ListenPacket("udp", addr)
	case SonetICMP:
		return icmp.ListenPacket(icmpNetwork(addr), addr)
	default:
		return nil, ErrorSonetUnsupported.Error()
	}
}

// icmpNetwork picks the "udp4"/"udp6" network x/net/icmp expects from a bind
// address, defaulting to v4 when addr has no literal IPv6 colon-form.
func icmpNetwork(addr string) string {
	if strings.Contains(addr, ":") && strings.Count(addr, ":") > 1 {
		return "udp6"
	}
	return "udp4"
}
