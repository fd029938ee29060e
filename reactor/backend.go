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

import "time"

// readiness describes one fd's state after a poll.
type readiness struct {
	fd       int
	readable bool
	writable bool
	errored  bool
}

// backend is the pluggable multiplexer: epoll on Linux, kqueue on
// darwin/BSD, select elsewhere. One instance backs exactly one Reactor.
type backend interface {
	// register starts watching fd for the given read/write interest.
	register(fd int, read, write bool) error
	// modify updates interest for an already-registered fd.
	modify(fd int, read, write bool) error
	// unregister stops watching fd.
	unregister(fd int) error
	// wait blocks up to timeout for readiness, returning whichever fds fired.
	wait(timeout time.Duration) ([]readiness, error)
	// close releases the backend's own resources (epoll fd, kqueue fd, ...).
	close() error
}
