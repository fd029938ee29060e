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

package proxy

import (
	"context"
	"io"
	"net"
	"strings"

	"github.com/anyks/awh/engine"
	"github.com/anyks/awh/protocol/http1"
)

// serveForward expects an HTTP CONNECT request on conn, dials the requested
// host:port (route.Upstream is unused here; the target travels in the
// request itself), answers "200 Connection Established", and then tunnels
// raw bytes both ways until either side closes.
func serveForward(conn net.Conn, route Route) error {
	var (
		target  string
		isConn  bool
		headErr error
	)

	onHeaders := func(start http1.StartLine, _ http1.Headers) {
		isConn = strings.EqualFold(start.Method, "CONNECT")
		target = start.Target
	}

	parser := http1.NewParser(false, onHeaders, nil, nil)

	buf := make([]byte, 4096)
	for parser.State() != http1.StateEnd && parser.State() != http1.StateBroken {
		n, rerr := conn.Read(buf)
		if n > 0 {
			if perr := parser.Feed(buf[:n]); perr != nil {
				return perr
			}
		}
		if rerr != nil {
			return rerr
		}
	}

	if !isConn {
		headErr = ErrorNotConnect.Error()
		_, _ = conn.Write([]byte("HTTP/1.1 400 Bad Request\r\n\r\n"))
		return headErr
	}

	upstream, err := engine.Dial(context.Background(), engine.SonetTCP, target)
	if err != nil {
		_, _ = conn.Write([]byte("HTTP/1.1 502 Bad Gateway\r\n\r\n"))
		return ErrorDialUpstreamFailed.Error(err)
	}
	defer upstream.Close()

	if _, err = conn.Write([]byte("HTTP/1.1 200 Connection Established\r\n\r\n")); err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		_, cerr := io.Copy(upstream, conn)
		errCh <- cerr
	}()
	go func() {
		_, cerr := io.Copy(conn, upstream)
		errCh <- cerr
	}()

	return <-errCh
}
