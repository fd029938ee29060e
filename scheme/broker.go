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

// Package scheme holds the per-connection Broker state the reactor polls:
// watchers, timeouts, rate marks and the outbound byte queue. A Scheme
// groups the Brokers belonging to one logical listener or client session
// and supplies their defaults.
package scheme

import (
	"sync"
	"sync/atomic"

	"github.com/anyks/awh/engine"
)

// Marks are the readiness-coalescing thresholds from spec.md §4.3: a READ
// callback is suppressed while buffered bytes sit below Min and forced once
// they reach Max; the same shape governs WRITE.
type Marks struct {
	Min int
	Max int
}

// KeepAlive mirrors the OS-level keep-alive knobs applied at connect time.
type KeepAlive struct {
	Probes   int
	IdleS    int
	IntervalS int
}

// Default timeouts in seconds, per spec.md §4.3.
const (
	DefaultReadTimeout    = 30
	DefaultWriteTimeout   = 30
	DefaultConnectTimeout = 10
)

// Scheme is the group/listener/session holding defaults shared by every
// Broker it spawns.
type Scheme struct {
	ID uint16

	ReadMarks  Marks
	WriteMarks Marks

	ReadTimeout    int
	WriteTimeout   int
	ConnectTimeout int

	KeepAlive KeepAlive

	nextBrokerID atomic.Uint64
}

// New builds a Scheme with spec.md's documented defaults.
func New(id uint16) *Scheme {
	return &Scheme{
		ID:             id,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		ConnectTimeout: DefaultConnectTimeout,
	}
}

// Broker is per-connection state attached to a Scheme and the reactor.
// Reactor event ids for read/write/connect readiness and their timers are
// plain uint64 handles; the reactor package interprets them.
type Broker struct {
	mu sync.Mutex

	ID       uint64
	SchemeID uint16

	Endpoint *engine.Endpoint

	ReadEvent    uint64
	WriteEvent   uint64
	ConnectEvent uint64

	ReadTimer    uint64
	WriteTimer   uint64
	ConnectTimer uint64

	readMarks  Marks
	writeMarks Marks
	keepAlive  KeepAlive

	txBuffer []byte

	lockedRead  atomic.Bool
	lockedWrite atomic.Bool

	closed atomic.Bool
}

// NewBroker creates a Broker for the given Scheme, following spec.md §3's
// "created on accept (server) or on successful connect (client)" lifecycle.
func (s *Scheme) NewBroker(ep *engine.Endpoint) *Broker {
	return &Broker{
		ID:         s.nextBrokerID.Add(1),
		SchemeID:   s.ID,
		Endpoint:   ep,
		readMarks:  s.ReadMarks,
		writeMarks: s.WriteMarks,
		keepAlive:  s.KeepAlive,
	}
}

// Socket returns the underlying fd-owning endpoint.
func (b *Broker) Socket() *engine.Endpoint { return b.Endpoint }

// IP returns the peer's address without its port.
func (b *Broker) IP() string {
	if b.Endpoint == nil || b.Endpoint.PeerAddr() == nil {
		return ""
	}
	host, _, err := splitHostPort(b.Endpoint.PeerAddr().String())
	if err != nil {
		return b.Endpoint.PeerAddr().String()
	}
	return host
}

// MAC returns the peer's best-effort hardware address.
func (b *Broker) MAC() string {
	if b.Endpoint == nil {
		return ""
	}
	return b.Endpoint.PeerMAC()
}

// Port returns the peer's port, or 0 if unavailable.
func (b *Broker) Port() int {
	if b.Endpoint == nil || b.Endpoint.PeerAddr() == nil {
		return 0
	}
	_, port, err := splitHostPort(b.Endpoint.PeerAddr().String())
	if err != nil {
		return 0
	}
	return port
}

// Bandwidth sets the Broker's rate-mark thresholds in one call, matching
// spec.md's `bandwidth(read_bps, write_bps)` — here expressed as byte
// thresholds rather than a derived bitrate since the reactor only ever
// observes buffered byte counts, not time-windowed throughput.
func (b *Broker) Bandwidth(readMax, writeMax int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readMarks.Max = readMax
	b.writeMarks.Max = writeMax
}

// ShouldDispatchRead reports whether a READ callback should fire for the
// given number of buffered bytes, applying the min/max coalescing rule.
func (b *Broker) ShouldDispatchRead(buffered int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if buffered < b.readMarks.Min {
		return false
	}
	return true
}

// LockRead/UnlockRead and LockWrite/UnlockWrite implement the reentrancy
// guard from spec.md §3: a callback cannot recurse into the same direction.
func (b *Broker) LockRead() bool  { return b.lockedRead.CompareAndSwap(false, true) }
func (b *Broker) UnlockRead()     { b.lockedRead.Store(false) }
func (b *Broker) LockWrite() bool { return b.lockedWrite.CompareAndSwap(false, true) }
func (b *Broker) UnlockWrite()    { b.lockedWrite.Store(false) }

// Enqueue appends to the bounded tx_buffer draining under write readiness.
func (b *Broker) Enqueue(p []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txBuffer = append(b.txBuffer, p...)
}

// Drain removes and returns up to n queued bytes.
func (b *Broker) Drain(n int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n > len(b.txBuffer) {
		n = len(b.txBuffer)
	}
	out := append([]byte(nil), b.txBuffer[:n]...)
	b.txBuffer = b.txBuffer[n:]
	return out
}

// Pending reports how many bytes sit unsent in the tx_buffer.
func (b *Broker) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.txBuffer)
}

// Close tears the Broker down; once closed no further dispatch for its ID
// may occur (invariant 4 in spec.md §8).
func (b *Broker) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	if b.Endpoint != nil {
		return b.Endpoint.Shutdown()
	}
	return nil
}

// Closed reports whether Close has already run.
func (b *Broker) Closed() bool { return b.closed.Load() }
