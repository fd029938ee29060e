/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package semaphore bounds the number of concurrent workers a caller may run
// at once, built on golang.org/x/sync/semaphore. The progress-bar rendering
// the teacher wired in here (mpb) is not carried: GetMPB/BarNumber are kept
// as no-ops so callers written against the wider interface still link.
package semaphore

import (
	"context"
	"sync"

	xsem "golang.org/x/sync/semaphore"
)

// Bar is a numeric progress counter. Progress is tracked but never rendered:
// this module carries no terminal-UI dependency.
type Bar interface {
	Inc(n int64)
	Total() int64
	Completed() bool
	Complete()
}

type bar struct {
	mu    sync.Mutex
	total int64
	done  bool
}

func (b *bar) Inc(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total += n
}

func (b *bar) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

func (b *bar) Completed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

func (b *bar) Complete() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = true
}

// Semaphore bounds concurrent worker registration.
type Semaphore interface {
	Weighted() int64
	NewWorker() error
	NewWorkerTry() bool
	DeferWorker()
	DeferMain()
	WaitAll() error
	GetMPB() interface{}
	BarNumber(name, state string, total int64, withDelta bool, decorators interface{}) Bar
}

type sem struct {
	ctx context.Context
	w   *xsem.Weighted
	n   int64
	wg  sync.WaitGroup
}

// New creates a Semaphore allowing up to n concurrent workers. withProgress
// is accepted for interface compatibility but has no effect.
func New(ctx context.Context, n int64, _ bool) Semaphore {
	if ctx == nil {
		ctx = context.Background()
	}
	if n < 1 {
		n = 1
	}
	return &sem{
		ctx: ctx,
		w:   xsem.NewWeighted(n),
		n:   n,
	}
}

func (s *sem) Weighted() int64 {
	return s.n
}

func (s *sem) NewWorker() error {
	if err := s.w.Acquire(s.ctx, 1); err != nil {
		return err
	}
	s.wg.Add(1)
	return nil
}

func (s *sem) NewWorkerTry() bool {
	if !s.w.TryAcquire(1) {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *sem) DeferWorker() {
	s.w.Release(1)
	s.wg.Done()
}

func (s *sem) DeferMain() {
	s.wg.Wait()
}

func (s *sem) WaitAll() error {
	s.wg.Wait()
	return nil
}

func (s *sem) GetMPB() interface{} {
	return nil
}

func (s *sem) BarNumber(_, _ string, _ int64, _ bool, _ interface{}) Bar {
	return &bar{}
}
