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
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Endpoint is the uniform, non-blocking-capable wire abstraction every
// higher protocol (HTTP, WebSocket, SOCKS5) reads and writes through. It
// never exposes the raw fd; the reactor keeps its own readiness watcher
// keyed by the fd obtained through RawFD at registration time.
type Endpoint struct {
	mu sync.Mutex

	sonet  Sonet
	family Family
	role   Role

	conn   net.Conn
	packet net.PacketConn
	peer   net.Addr

	wrapped  atomic.Bool
	shaken   atomic.Bool
	closed   atomic.Bool
	blocking atomic.Bool

	readBuf  int
	writeBuf int
	backlog  int

	dtls *dtlsSession
}

// NewPlain wraps an already-established net.Conn with no TLS/DTLS layer,
// corresponding to spec.md's `wrap(fd)`.
func NewPlain(sonet Sonet, family Family, conn net.Conn) *Endpoint {
	e := &Endpoint{sonet: sonet, family: family, conn: conn, peer: conn.RemoteAddr()}
	e.wrapped.Store(true)
	e.shaken.Store(true)
	e.blocking.Store(false)
	return e
}

// WrapClient performs `wrap(fd, url)`: a client-side TLS/DTLS handshake
// using serverName for SNI and optional ALPN hints.
func WrapClient(conn net.Conn, opt TLSOptions) (*Endpoint, error) {
	opt.Role = RoleClient
	e := &Endpoint{sonet: SonetTLS, family: familyOf(conn.RemoteAddr()), conn: conn, peer: conn.RemoteAddr(), role: RoleClient}
	e.wrapped.Store(true)

	cfg := buildTLSConfig(opt)
	tlsConn := tlsClient(conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		return nil, err
	}

	e.conn = tlsConn
	e.shaken.Store(true)
	return e, nil
}

// WrapServer performs `wrap_server(fd)`: a server-side TLS handshake using
// the pre-loaded certificate chain and key already configured in opt.Store.
func WrapServer(conn net.Conn, opt TLSOptions) (*Endpoint, error) {
	opt.Role = RoleServer
	e := &Endpoint{sonet: SonetTLS, family: familyOf(conn.RemoteAddr()), conn: conn, peer: conn.RemoteAddr(), role: RoleServer}
	e.wrapped.Store(true)

	cfg := buildTLSConfig(opt)
	tlsConn := tlsServer(conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		return nil, err
	}

	e.conn = tlsConn
	e.shaken.Store(true)
	return e, nil
}

func familyOf(addr net.Addr) Family {
	if addr == nil {
		return FamilyIPv4
	}
	switch a := addr.(type) {
	case *net.UnixAddr:
		return FamilyUnix
	case *net.TCPAddr:
		if a.IP.To4() == nil {
			return FamilyIPv6
		}
		return FamilyIPv4
	case *net.UDPAddr:
		if a.IP.To4() == nil {
			return FamilyIPv6
		}
		return FamilyIPv4
	default:
		return FamilyIPv4
	}
}

// Sonet reports the transport kind carried by this endpoint.
func (e *Endpoint) Sonet() Sonet { return e.sonet }

// Family reports the address family of this endpoint.
func (e *Endpoint) Family() Family { return e.family }

// Read moves bytes into buf, returning (n, KindNone) on success or a
// negative-signalling ErrorKind describing why nothing more can be read
// right now. A handshake that has not completed yet is reported as
// KindFatal via ErrorHandshakeRequired, matching the invariant that no
// application byte may be read before the handshake finishes.
func (e *Endpoint) Read(buf []byte) (int, ErrorKind, error) {
	if e.closed.Load() {
		return 0, KindClosed, nil
	}
	if !e.shaken.Load() {
		return 0, KindFatal, ErrorHandshakeRequired.Error()
	}

	if e.dtls != nil {
		return e.dtls.read(buf)
	}

	n, err := e.conn.Read(buf)
	return classifyIO(n, err)
}

// Write moves bytes out, leaving any unwritten remainder in buf untouched
// by the caller's own bookkeeping (the Broker's tx_buffer owns retry).
func (e *Endpoint) Write(buf []byte) (int, ErrorKind, error) {
	if e.closed.Load() {
		return 0, KindClosed, nil
	}
	if !e.shaken.Load() {
		return 0, KindFatal, ErrorHandshakeRequired.Error()
	}

	if e.dtls != nil {
		return e.dtls.write(buf)
	}

	n, err := e.conn.Write(buf)
	return classifyIO(n, err)
}

func classifyIO(n int, err error) (int, ErrorKind, error) {
	if err == nil {
		return n, KindNone, nil
	}

	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return n, KindWouldBlock, nil
	}

	return n, KindFatal, err
}

// Blocking toggles blocking vs. non-blocking semantics by arming or
// disarming a deadline on every future I/O call; the reactor always runs
// non-blocking endpoints (on=false is the default for anything it owns).
func (e *Endpoint) Blocking(on bool) {
	e.blocking.Store(on)
	if on {
		_ = e.setDeadline(time.Time{})
	} else {
		_ = e.setDeadline(time.Now().Add(-time.Second))
	}
}

func (e *Endpoint) setDeadline(t time.Time) error {
	if e.conn != nil {
		return e.conn.SetDeadline(t)
	}
	if e.packet != nil {
		return e.packet.SetDeadline(t)
	}
	return nil
}

// BufferSize records the read/write/backlog sizing hints a Broker applies
// when sizing its own buffers; the OS socket buffer is tuned best-effort.
func (e *Endpoint) BufferSize(read, write, backlog int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readBuf, e.writeBuf, e.backlog = read, write, backlog
	applySocketBuffers(e.conn, read, write)
}

// Shutdown closes the endpoint. Once closed it is permanently unusable,
// matching the Engine/Endpoint invariant in spec.md §3.
func (e *Endpoint) Shutdown() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	if e.conn != nil {
		return e.conn.Close()
	}
	if e.packet != nil {
		return e.packet.Close()
	}
	return nil
}

// Closed reports whether Shutdown has already run.
func (e *Endpoint) Closed() bool { return e.closed.Load() }

// PeerAddr returns the remote address observed at wrap time.
func (e *Endpoint) PeerAddr() net.Addr { return e.peer }

// PeerMAC returns a best-effort hardware address for the peer, resolved
// from the local neighbor table; empty when the peer is off-LAN or the
// platform exposes no such table.
func (e *Endpoint) PeerMAC() string {
	host, _, err := net.SplitHostPort(e.peer.String())
	if err != nil {
		host = e.peer.String()
	}
	return lookupMAC(host)
}

// LocalAddr returns the local address of the underlying connection.
func (e *Endpoint) LocalAddr() net.Addr {
	if e.conn != nil {
		return e.conn.LocalAddr()
	}
	if e.packet != nil {
		return e.packet.LocalAddr()
	}
	return nil
}
