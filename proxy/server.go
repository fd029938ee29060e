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
	"net"
	"sync"

	"github.com/anyks/awh/engine"
	"github.com/anyks/awh/logger"
)

// Server runs a pool of Route listeners under one Start/Stop lifecycle,
// mirroring the teacher's httpserver: each route gets its own accept loop,
// Stop closes every listener and waits for in-flight connections' goroutines
// to return.
type Server struct {
	log func() logger.Logger

	mu        sync.Mutex
	running   bool
	routes    []Route
	listeners []net.Listener
	wg        sync.WaitGroup
}

// NewServer builds an idle Server. logFunc may be nil.
func NewServer(logFunc func() logger.Logger) *Server {
	return &Server{log: logFunc}
}

func (s *Server) logger() logger.Logger {
	if s.log == nil {
		return nil
	}
	return s.log()
}

// AddRoute registers a Route. It may only be called while the server is
// stopped.
func (s *Server) AddRoute(r Route) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrorAlreadyRunning.Error()
	}
	s.routes = append(s.routes, r)
	return nil
}

// Start opens a listener per registered route and begins accepting on each.
// On any listener failure, every listener opened so far is closed and the
// error is returned.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrorAlreadyRunning.Error()
	}

	listeners := make([]net.Listener, 0, len(s.routes))

	for _, r := range s.routes {
		ln, err := engine.Listen(r.Sonet, r.Listen)
		if err != nil {
			for _, opened := range listeners {
				_ = opened.Close()
			}
			return ErrorListenFailed.Error(err)
		}
		listeners = append(listeners, ln)
	}

	s.listeners = listeners
	s.running = true

	for i, r := range s.routes {
		route := r
		ln := listeners[i]
		s.wg.Add(1)
		go s.accept(ln, route)
	}

	return nil
}

// Stop closes every route's listener and waits for all accept loops and
// in-flight connection handlers to return.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrorNotRunning.Error()
	}
	listeners := s.listeners
	s.listeners = nil
	s.running = false
	s.mu.Unlock()

	for _, ln := range listeners {
		_ = ln.Close()
	}
	s.wg.Wait()
	return nil
}

// Addrs reports the bound address of each running route's listener, in
// registration order. Useful when a route's Listen address uses port 0 and
// the caller needs the OS-assigned port (tests, ephemeral deployments).
func (s *Server) Addrs() []net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := make([]net.Addr, len(s.listeners))
	for i, ln := range s.listeners {
		addrs[i] = ln.Addr()
	}
	return addrs
}

func (s *Server) accept(ln net.Listener, route Route) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()

			var herr error
			switch route.Mode {
			case ModeReverse:
				herr = serveReverse(conn, route)
			case ModeForward:
				herr = serveForward(conn, route)
			default:
				herr = ErrorUnsupportedMode.Error()
			}

			if herr != nil {
				if log := s.logger(); log != nil {
					log.Warning("proxy route "+route.name()+" connection ended", herr)
				}
			}
		}()
	}
}
