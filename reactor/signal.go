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
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// SignalHandler is invoked on the reactor's own thread, on the tick after
// the signal actually arrived — spec.md §5: "Signal handlers set atomic
// flags only; actual dispatch happens on the next reactor tick."
type SignalHandler func(sig os.Signal)

var watchedSignals = []os.Signal{
	syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT,
	syscall.SIGFPE, syscall.SIGILL, syscall.SIGBUS, syscall.SIGABRT, syscall.SIGSEGV,
}

type signalTable struct {
	mu       sync.Mutex
	handlers map[os.Signal]SignalHandler
	pending  []os.Signal
	flagged  atomic.Bool
	ch       chan os.Signal
}

func newSignalTable() *signalTable {
	return &signalTable{handlers: map[os.Signal]SignalHandler{}}
}

func (t *signalTable) start() {
	signal.Ignore(syscall.SIGPIPE)

	t.ch = make(chan os.Signal, 16)
	signal.Notify(t.ch, watchedSignals...)

	go func() {
		for sig := range t.ch {
			t.mu.Lock()
			t.pending = append(t.pending, sig)
			t.mu.Unlock()
			t.flagged.Store(true)
		}
	}()
}

func (t *signalTable) stop() {
	if t.ch != nil {
		signal.Stop(t.ch)
		close(t.ch)
	}
}

func (t *signalTable) install(sig os.Signal, h SignalHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[sig] = h
}

// drain runs any handlers for signals observed since the last tick. Must be
// called from the reactor's own thread.
func (t *signalTable) drain() {
	if !t.flagged.Load() {
		return
	}

	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.flagged.Store(false)
	handlers := make(map[os.Signal]SignalHandler, len(t.handlers))
	for k, v := range t.handlers {
		handlers[k] = v
	}
	t.mu.Unlock()

	for _, sig := range pending {
		if h, ok := handlers[sig]; ok && h != nil {
			h(sig)
		}
	}
}
