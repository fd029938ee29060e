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

// Package proxy composes the Engine's dial/listen primitives with the HTTP/1
// parser into reverse (rewrite-and-forward) and forward (CONNECT-tunnel)
// routes, each served by its own accept loop under one Start/Stop lifecycle.
package proxy

import (
	"github.com/anyks/awh/engine"
)

// Mode selects how a Route handles an accepted connection.
type Mode uint8

const (
	// ModeReverse rewrites the Host header to Upstream and forwards the
	// request to it, relaying the response back unmodified.
	ModeReverse Mode = iota
	// ModeForward expects an HTTP CONNECT request and tunnels raw bytes to
	// whatever host:port the client named, ignoring Upstream.
	ModeForward
)

func (m Mode) String() string {
	switch m {
	case ModeReverse:
		return "reverse"
	case ModeForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Route binds one listener to one forwarding policy.
type Route struct {
	// Name identifies the route in logs; defaults to Listen if empty.
	Name string
	// Listen is the local bind address, e.g. "127.0.0.1:8080".
	Listen string
	// Sonet is the transport the listener accepts; defaults to SonetTCP.
	Sonet engine.Sonet
	// Upstream is the fixed backend address for ModeReverse. Unused for
	// ModeForward, which dials whatever the client's CONNECT target names.
	Upstream string
	Mode     Mode
}

func (r Route) Validate() error {
	if r.Listen == "" {
		return ErrorRouteInvalid.Error()
	}
	if r.Mode == ModeReverse && r.Upstream == "" {
		return ErrorRouteInvalid.Error()
	}
	return nil
}

func (r Route) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Listen
}
