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

// Package reactor implements a single-threaded cooperative I/O event loop
// with a pluggable readiness backend (epoll on Linux, kqueue on
// darwin/BSD, a select-based fallback elsewhere), relative and interval
// timers, cross-thread wakeups and signal interception.
package reactor

import "time"

// Kind identifies one of the readiness/timer/close facets an event_id can
// subscribe to, per spec.md §4.1.
type Kind uint8

const (
	KindRead Kind = iota
	KindWrite
	KindConnect
	KindTimer
	KindClose
)

// Callback runs on the reactor's single OS thread; it must return promptly.
type Callback func(eventID uint64, fd int)

// CloseCallback is invoked when a backend error removes an fd, carrying the
// OS error that caused the removal.
type CloseCallback func(eventID uint64, fd int, err error)

// TimerCallback runs when a timer's deadline is reached.
type TimerCallback func(eventID uint64)

// DefaultFrequency is the maximum wait interval between polls absent an
// explicit Frequency() call, per spec.md §4.1.
const DefaultFrequency = 10 * time.Millisecond
