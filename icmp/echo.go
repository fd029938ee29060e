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

package icmp

import (
	"context"
	"net"
	"time"

	"golang.org/x/net/icmp"

	"github.com/anyks/awh/engine"
)

// Echoer sends echo requests of one IP family over a single bound socket. It
// is not safe for concurrent Echo calls against the same sequence number,
// but distinct Echoer values (or serialized sequence numbers) may share a
// socket's lifetime across goroutines.
type Echoer struct {
	family Family
	conn   net.PacketConn
}

// NewEchoer binds a packet endpoint for family via engine.ListenPacket, using
// the unprivileged datagram-oriented ICMP socket path (no CAP_NET_RAW
// required on Linux when the process's group is within
// net.ipv4.ping_group_range). laddr may be "" to bind the wildcard address.
func NewEchoer(family Family, laddr string) (*Echoer, error) {
	conn, err := engine.ListenPacket(engine.SonetICMP, laddr)
	if err != nil {
		return nil, ErrorListenFailed.Error(err)
	}
	return &Echoer{family: family, conn: conn}, nil
}

// Close releases the underlying socket.
func (e *Echoer) Close() error {
	return e.conn.Close()
}

// Echo sends a single ICMP echo request to addr carrying id/seq and payload,
// blocks for the reply (or ctx's deadline), and reports the measured
// round-trip time.
func (e *Echoer) Echo(ctx context.Context, addr string, id, seq int, payload []byte) (time.Duration, error) {
	dst, err := net.ResolveIPAddr(e.network(), addr)
	if err != nil {
		return 0, err
	}

	msg := icmp.Message{
		Type: e.family.requestType(),
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: payload,
		},
	}

	wire, err := msg.Marshal(nil)
	if err != nil {
		return 0, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = e.conn.SetDeadline(deadline)
	} else {
		_ = e.conn.SetDeadline(time.Time{})
	}

	start := time.Now()
	if _, err = e.conn.WriteTo(wire, &net.UDPAddr{IP: dst.IP, Zone: dst.Zone}); err != nil {
		return 0, ErrorWriteFailed.Error(err)
	}

	buf := make([]byte, 1500)
	for {
		n, _, rerr := e.conn.ReadFrom(buf)
		if rerr != nil {
			return 0, ErrorReadFailed.Error(rerr)
		}
		rtt := time.Since(start)

		reply, perr := icmp.ParseMessage(e.family.protocol(), buf[:n])
		if perr != nil {
			return 0, ErrorReadFailed.Error(perr)
		}
		if reply.Type != e.family.replyType() {
			continue
		}

		echo, ok := reply.Body.(*icmp.Echo)
		if !ok {
			return 0, ErrorUnexpectedReply.Error()
		}
		if echo.ID != id || echo.Seq != seq {
			continue
		}

		return rtt, nil
	}
}

func (e *Echoer) network() string {
	if e.family == FamilyIPv6 {
		return "ip6"
	}
	return "ip4"
}
