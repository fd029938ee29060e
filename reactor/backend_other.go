//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

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

package reactor

import (
	"sync"
	"time"
)

// selectBackend is the IOCP-equivalent fallback for platforms without a
// native epoll/kqueue binding in golang.org/x/sys/unix (notably Windows):
// it polls each registered fd with a zero-timeout, non-blocking probe once
// per wait() call. Throughput is bounded by Frequency(), same as the spec's
// documented "select" fallback model.
type selectBackend struct {
	mu    sync.Mutex
	watch map[int]struct{ read, write bool }
}

func newBackend() (backend, error) {
	return &selectBackend{watch: map[int]struct{ read, write bool }{}}, nil
}

func (b *selectBackend) register(fd int, read, write bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watch[fd] = struct{ read, write bool }{read, write}
	return nil
}

func (b *selectBackend) modify(fd int, read, write bool) error {
	return b.register(fd, read, write)
}

func (b *selectBackend) unregister(fd int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.watch, fd)
	return nil
}

func (b *selectBackend) wait(timeout time.Duration) ([]readiness, error) {
	if timeout > 0 {
		time.Sleep(timeout)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]readiness, 0, len(b.watch))
	for fd, w := range b.watch {
		readable, writable, errored := probe(fd, w.read, w.write)
		if readable || writable || errored {
			out = append(out, readiness{fd: fd, readable: readable, writable: writable, errored: errored})
		}
	}

	return out, nil
}

func (b *selectBackend) close() error { return nil }
