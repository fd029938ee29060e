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
	"container/heap"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type event struct {
	id      uint64
	fd      int
	read    bool
	write   bool
	connect bool
	cb      Callback
	onClose CloseCallback
}

// Reactor is a single-threaded cooperative I/O event loop, one per OS
// thread, matching spec.md §4.1/§5.
type Reactor struct {
	mu     sync.Mutex
	be     backend
	events map[uint64]*event
	timers *timerHeap
	timerSeq uint64

	wakeupR *os.File
	wakeupW *os.File

	frequency time.Duration
	frozen    atomic.Bool
	easyMode  atomic.Bool
	running   atomic.Bool

	pendingMu sync.Mutex
	pending   []func()

	signals *signalTable

	stopCh chan struct{}
	doneCh chan struct{}
}

const wakeupEventID = ^uint64(0)

// New creates a Reactor with its wakeup pipe and backend already open, but
// not yet started.
func New() (*Reactor, error) {
	be, err := newBackend()
	if err != nil {
		return nil, err
	}

	r, w, err := os.Pipe()
	if err != nil {
		_ = be.close()
		return nil, err
	}

	rec := &Reactor{
		be:        be,
		events:    map[uint64]*event{},
		timers:    newTimerHeap(),
		wakeupR:   r,
		wakeupW:   w,
		frequency: DefaultFrequency,
		signals:   newSignalTable(),
	}

	if err = be.register(int(r.Fd()), true, false); err != nil {
		_ = be.close()
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}

	return rec, nil
}

// Add registers an fd event. Returns ErrorEventInUse if event_id is taken.
func (r *Reactor) Add(eventID uint64, fd int, cb Callback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[eventID]; exists {
		return ErrorEventInUse.Error()
	}

	ev := &event{id: eventID, fd: fd, cb: cb}
	r.events[eventID] = ev

	if fd < 0 {
		return nil
	}
	return r.be.register(fd, false, false)
}

// AddTimer registers a relative or recurrent timer. fd is informational
// only; reactor timers do not require a real OS descriptor.
func (r *Reactor) AddTimer(eventID uint64, delay time.Duration, recurrent bool, cb TimerCallback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[eventID]; exists {
		return ErrorEventInUse.Error()
	}

	r.events[eventID] = &event{id: eventID, fd: -1}
	r.timerSeq++

	entry := &timerEntry{
		eventID:   eventID,
		deadline:  time.Now().Add(delay).UnixNano(),
		interval:  delay.Nanoseconds(),
		recurrent: recurrent,
		seq:       r.timerSeq,
		cb:        cb,
	}
	heap.Push(r.timers, entry)

	return nil
}

// Mode enables or disables one kind of readiness for an event.
func (r *Reactor) Mode(eventID uint64, kind Kind, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[eventID]
	if !ok {
		return ErrorUnknownEvent.Error()
	}

	switch kind {
	case KindRead:
		ev.read = enabled
	case KindWrite:
		ev.write = enabled
	case KindConnect:
		ev.connect = enabled
	default:
		return ErrorUnknownEvent.Error()
	}

	return r.be.modify(ev.fd, ev.read, ev.write || ev.connect)
}

// OnClose installs the CLOSE callback for an fd event.
func (r *Reactor) OnClose(eventID uint64, cb CloseCallback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[eventID]
	if !ok {
		return ErrorUnknownEvent.Error()
	}
	ev.onClose = cb
	return nil
}

// Del removes an event (or just one timer entry) entirely. Safe to call
// from within the event's own callback: the mutation is queued and applied
// once the current dispatch returns.
func (r *Reactor) Del(eventID uint64) error {
	r.deferMutation(func() {
		r.mu.Lock()
		ev, ok := r.events[eventID]
		if ok {
			delete(r.events, eventID)
			if ev.fd >= 0 {
				_ = r.be.unregister(ev.fd)
			}
		}
		r.removeTimersFor(eventID)
		r.mu.Unlock()
	})
	return nil
}

func (r *Reactor) removeTimersFor(eventID uint64) {
	kept := (*r.timers)[:0]
	for _, e := range *r.timers {
		if e.eventID == eventID {
			e.cancelled = true
			continue
		}
		kept = append(kept, e)
	}
	*r.timers = kept
	heap.Init(r.timers)
}

func (r *Reactor) deferMutation(f func()) {
	r.pendingMu.Lock()
	r.pending = append(r.pending, f)
	r.pendingMu.Unlock()
}

func (r *Reactor) applyPending() {
	r.pendingMu.Lock()
	batch := r.pending
	r.pending = nil
	r.pendingMu.Unlock()

	for _, f := range batch {
		f()
	}
}

// Kick wakes the loop from any thread by writing one byte to the wakeup
// pipe. Safe to call from a goroutine other than the reactor's own.
func (r *Reactor) Kick() {
	if r.wakeupW != nil {
		_, _ = r.wakeupW.Write([]byte{0})
	}
}

// Post queues f to run on the reactor's own goroutine and kicks the loop so
// it runs promptly. Safe to call from any goroutine; used by asynchronous
// facilities (DNS, ICMP) to hand a completed result back to the loop thread
// without touching reactor-owned state directly.
func (r *Reactor) Post(f func()) {
	r.deferMutation(f)
	r.Kick()
}

// Freeze blocks dispatch of READ/WRITE while keeping TIMER/CONNECT live.
func (r *Reactor) Freeze(on bool) { r.frozen.Store(on) }

// Easy permits a simplified single-shot poll mode used by synchronous
// callers that just want one iteration of readiness resolved.
func (r *Reactor) Easy(on bool) { r.easyMode.Store(on) }

// Frequency caps the maximum wait between polls.
func (r *Reactor) Frequency(d time.Duration) { r.frequency = d }

// InstallSignal registers a handler dispatched on the reactor's own thread
// the tick after the signal is observed.
func (r *Reactor) InstallSignal(sig os.Signal, h SignalHandler) {
	r.signals.install(sig, h)
}

// Start runs the event loop until Stop is called. Blocks the calling
// goroutine; typically invoked via `go reactor.Start()`.
func (r *Reactor) Start() error {
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}

	r.signals.start()
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})

	go r.loop()
	return nil
}

// Stop is idempotent; it drains outstanding callbacks already scheduled,
// refuses new dispatches, and closes the wakeup pipe.
func (r *Reactor) Stop() error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	close(r.stopCh)
	r.Kick()
	<-r.doneCh

	r.signals.stop()
	_ = r.be.close()
	_ = r.wakeupR.Close()
	_ = r.wakeupW.Close()

	return nil
}

func (r *Reactor) loop() {
	defer close(r.doneCh)

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		timeout := r.nextTimeout()
		ready, err := r.be.wait(timeout)
		if err != nil {
			continue
		}

		for _, rd := range ready {
			if rd.fd == int(r.wakeupR.Fd()) {
				drainWakeup(r.wakeupR)
				continue
			}
			r.dispatch(rd)
		}

		r.fireTimers()
		r.signals.drain()
		r.applyPending()

		if r.easyMode.Load() {
			return
		}
	}
}

func (r *Reactor) nextTimeout() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timers.Len() == 0 {
		return r.frequency
	}

	next := (*r.timers)[0]
	d := time.Duration(next.deadline - time.Now().UnixNano())
	if d < 0 {
		d = 0
	}
	if d > r.frequency {
		d = r.frequency
	}
	return d
}

func (r *Reactor) dispatch(rd readiness) {
	r.mu.Lock()
	var ev *event
	for _, e := range r.events {
		if e.fd == rd.fd {
			ev = e
			break
		}
	}
	r.mu.Unlock()

	if ev == nil {
		return
	}

	if rd.errored {
		if ev.onClose != nil {
			ev.onClose(ev.id, ev.fd, ErrorBackendFault.Error())
		}
		_ = r.Del(ev.id)
		return
	}

	if r.frozen.Load() {
		return
	}

	if (rd.readable && ev.read) || (rd.writable && (ev.write || ev.connect)) {
		if ev.cb != nil {
			ev.cb(ev.id, ev.fd)
		}
	}
}

func (r *Reactor) fireTimers() {
	now := time.Now().UnixNano()

	for {
		r.mu.Lock()
		if r.timers.Len() == 0 {
			r.mu.Unlock()
			break
		}
		top := (*r.timers)[0]
		if top.deadline > now {
			r.mu.Unlock()
			break
		}

		heap.Pop(r.timers)

		if top.recurrent && !top.cancelled {
			top.deadline = now + top.interval
			r.timerSeq++
			top.seq = r.timerSeq
			heap.Push(r.timers, top)
		}
		cancelled := top.cancelled
		r.mu.Unlock()

		if !cancelled && top.cb != nil {
			top.cb(top.eventID)
		}
	}
}

func drainWakeup(f *os.File) {
	buf := make([]byte, 64)
	for {
		n, err := f.Read(buf)
		if err != nil || n < len(buf) {
			return
		}
	}
}

// Rebase tears down the multiplexer handle and rebuilds it, preserving all
// registered fd events. Used after fork() in a child process where the
// inherited epoll/kqueue fd is not usable across the fork boundary.
func (r *Reactor) Rebase() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.be.close()

	be, err := newBackend()
	if err != nil {
		return err
	}
	r.be = be

	if err = be.register(int(r.wakeupR.Fd()), true, false); err != nil {
		return err
	}

	for _, ev := range r.events {
		if ev.fd < 0 {
			continue
		}
		if err = be.register(ev.fd, ev.read, ev.write || ev.connect); err != nil {
			return err
		}
	}

	return nil
}
