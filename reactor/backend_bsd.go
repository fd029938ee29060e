//go:build darwin || freebsd || netbsd || openbsd || dragonfly

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
	"time"

	"golang.org/x/sys/unix"
)

type kqueueBackend struct {
	fd int
}

func newBackend() (backend, error) {
	fd, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	return &kqueueBackend{fd: fd}, nil
}

func (b *kqueueBackend) apply(changes []unix.Kevent_t) error {
	if len(changes) == 0 {
		return nil
	}
	_, err := unix.Kevent(b.fd, changes, nil, nil)
	return err
}

func (b *kqueueBackend) register(fd int, read, write bool) error {
	return b.modify(fd, read, write)
}

func (b *kqueueBackend) modify(fd int, read, write bool) error {
	var changes []unix.Kevent_t

	readFlags := uint16(unix.EV_DELETE)
	if read {
		readFlags = unix.EV_ADD | unix.EV_ENABLE
	}
	changes = append(changes, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: readFlags})

	writeFlags := uint16(unix.EV_DELETE)
	if write {
		writeFlags = unix.EV_ADD | unix.EV_ENABLE
	}
	changes = append(changes, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: writeFlags})

	// EV_DELETE on a filter that was never added returns ENOENT; harmless.
	for _, c := range changes {
		_, _ = unix.Kevent(b.fd, []unix.Kevent_t{c}, nil, nil)
	}

	return nil
}

func (b *kqueueBackend) unregister(fd int) error {
	changes := []unix.Kevent_t{
		{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: unix.EV_DELETE},
		{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: unix.EV_DELETE},
	}
	for _, c := range changes {
		_, _ = unix.Kevent(b.fd, []unix.Kevent_t{c}, nil, nil)
	}
	return nil
}

func (b *kqueueBackend) wait(timeout time.Duration) ([]readiness, error) {
	events := make([]unix.Kevent_t, 128)
	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	n, err := unix.Kevent(b.fd, nil, events, ts)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}

	byFD := map[int]*readiness{}
	for i := 0; i < n; i++ {
		e := events[i]
		fd := int(e.Ident)
		r, ok := byFD[fd]
		if !ok {
			r = &readiness{fd: fd}
			byFD[fd] = r
		}
		switch e.Filter {
		case unix.EVFILT_READ:
			r.readable = true
		case unix.EVFILT_WRITE:
			r.writable = true
		}
		if e.Flags&unix.EV_ERROR != 0 {
			r.errored = true
		}
	}

	out := make([]readiness, 0, len(byFD))
	for _, r := range byFD {
		out = append(out, *r)
	}

	return out, nil
}

func (b *kqueueBackend) close() error {
	return unix.Close(b.fd)
}
