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
	"fmt"
	"io"
	"net"

	"github.com/anyks/awh/engine"
	"github.com/anyks/awh/protocol/http1"
)

// serveReverse reads one request off conn, rewrites its Host header to
// route.Upstream, forwards it, and relays the upstream's response back
// unmodified. Keep-alive reuse is out of scope: one request per accepted
// connection.
func serveReverse(conn net.Conn, route Route) error {
	upstream, err := engine.Dial(context.Background(), engine.SonetTCP, route.Upstream)
	if err != nil {
		return ErrorDialUpstreamFailed.Error(err)
	}
	defer upstream.Close()

	sent := false
	var sendErr error

	onHeaders := func(start http1.StartLine, headers http1.Headers) {
		headers["host"] = []string{route.Upstream}
		if _, werr := upstream.Write(buildRequestHead(start, headers)); werr != nil {
			sendErr = werr
			return
		}
		sent = true
	}
	onBody := func(chunk []byte) {
		if sendErr != nil {
			return
		}
		if _, werr := upstream.Write(chunk); werr != nil {
			sendErr = werr
		}
	}

	parser := http1.NewParser(false, onHeaders, onBody, nil)

	buf := make([]byte, 32*1024)
	for parser.State() != http1.StateEnd && parser.State() != http1.StateBroken {
		n, rerr := conn.Read(buf)
		if n > 0 {
			if perr := parser.Feed(buf[:n]); perr != nil {
				return perr
			}
			if sendErr != nil {
				return sendErr
			}
		}
		if rerr != nil {
			if rerr == io.EOF && parser.State() == http1.StateEnd {
				break
			}
			return rerr
		}
	}

	if !sent {
		return nil
	}

	_, err = io.Copy(conn, upstream)
	return err
}

func buildRequestHead(start http1.StartLine, headers http1.Headers) []byte {
	head := fmt.Sprintf("%s %s %s\r\n", start.Method, start.Target, start.Proto)
	for name, values := range headers {
		for _, v := range values {
			head += fmt.Sprintf("%s: %s\r\n", name, v)
		}
	}
	head += "\r\n"
	return []byte(head)
}
