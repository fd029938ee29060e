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
	"net"
)

func tlsClient(conn net.Conn, cfg *tls.Config) *tls.Conn { return tls.Client(conn, cfg) }
func tlsServer(conn net.Conn, cfg *tls.Config) *tls.Conn { return tls.Server(conn, cfg) }

// applySocketBuffers tunes OS-level socket buffers best-effort; failures are
// not fatal since the Broker's own buffering still bounds throughput.
func applySocketBuffers(conn net.Conn, read, write int) {
	if conn == nil {
		return
	}

	type readBufferer interface{ SetReadBuffer(int) error }
	type writeBufferer interface{ SetWriteBuffer(int) error }

	if read > 0 {
		if rb, ok := conn.(readBufferer); ok {
			_ = rb.SetReadBuffer(read)
		}
	}
	if write > 0 {
		if wb, ok := conn.(writeBufferer); ok {
			_ = wb.SetWriteBuffer(write)
		}
	}
}

// ApplyListenerOptions applies the socket options spec.md §6 requires of
// reactor-managed listeners: TCP_NODELAY on stream sockets, SO_KEEPALIVE
// with the given probe parameters, and non-blocking mode (handled by the
// caller setting a deadline through Endpoint.Blocking).
func ApplyListenerOptions(conn net.Conn, keepAlive bool, idle int) {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
		_ = tc.SetKeepAlive(keepAlive)
		if idle > 0 {
			_ = tc.SetKeepAlivePeriod(secondsToDuration(idle))
		}
	}
}
