/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package cluster

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	liblog "github.com/anyks/awh/logger"
)

// EnvVarName is set to "1" in every forked worker's environment. A process's
// own main() checks this to decide whether to run as a worker instead of as
// the master.
const EnvVarName = "AWH_CLUSTER_WORKER"

// CrashInfo records one worker's unexpected exit, kept only when the
// cluster's TrackCrash option is enabled.
type CrashInfo struct {
	Index int
	PID   int
	Err   error
}

// Cluster manages one scheme's pool of forked worker processes. Per
// spec.md §5, it must only be driven from the master goroutine, and only
// before any worker has entered its own event loop.
type Cluster struct {
	mu      sync.Mutex
	cfg     Config
	log     liblog.Logger
	workers map[int]*worker // pid -> worker
	started atomic.Bool
	stopped atomic.Bool

	lastCrash atomic.Value // CrashInfo
}

// New validates cfg and prepares a Cluster. It does not fork anything yet.
// On Windows this returns ErrorPlatformUnsupported: process-level fork and
// Unix socketpairs have no equivalent there.
func New(cfg Config, log liblog.Logger) (*Cluster, error) {
	if runtime.GOOS == "windows" {
		return nil, ErrorPlatformUnsupported.Error()
	}

	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	return &Cluster{cfg: cfg, log: log, workers: map[int]*worker{}}, nil
}

// Init forks Count workers and wires each one's IPC connection, but does
// not yet arm crash supervision; call Start for that.
func (c *Cluster) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started.Load() {
		return ErrorAlreadyStarted.Error()
	}

	for i := 0; i < c.cfg.Count; i++ {
		w, err := spawnWorker(i, EnvVarName, c.cfg.chunkSize(), nil)
		if err != nil {
			c.killAllLocked()
			return err
		}
		c.workers[w.pid] = w
	}

	return nil
}

// Start arms crash supervision: each worker is waited on in its own
// goroutine, and a crashed worker is respawned automatically when Restart
// is enabled.
func (c *Cluster) Start() error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrorAlreadyStarted.Error()
	}

	c.mu.Lock()
	workers := make([]*worker, 0, len(c.workers))
	for _, w := range c.workers {
		workers = append(workers, w)
	}
	c.mu.Unlock()

	for _, w := range workers {
		go c.supervise(w)
	}

	return nil
}

func (c *Cluster) supervise(w *worker) {
	err := w.wait()
	if c.stopped.Load() {
		return
	}

	w.crashes.Add(1)

	if c.cfg.TrackCrash {
		c.lastCrash.Store(CrashInfo{Index: w.index, PID: w.pid, Err: err})
	}

	if c.log != nil {
		c.log.Warning("worker exited", nil, "pid", w.pid, "err", err)
	}

	c.mu.Lock()
	delete(c.workers, w.pid)
	c.mu.Unlock()

	if !c.cfg.Restart || c.stopped.Load() {
		return
	}

	nw, rerr := spawnWorker(w.index, EnvVarName, c.cfg.chunkSize(), nil)
	if rerr != nil {
		if c.log != nil {
			c.log.Error("failed to respawn worker", nil, "err", ErrorRespawnFailed.Error(rerr))
		}
		return
	}

	c.mu.Lock()
	c.workers[nw.pid] = nw
	c.mu.Unlock()

	go c.supervise(nw)
}

// TrackCrash enables or disables CrashInfo bookkeeping at runtime.
func (c *Cluster) TrackCrash(flag bool) {
	c.mu.Lock()
	c.cfg.TrackCrash = flag
	c.mu.Unlock()
}

// LastCrash returns the most recently recorded crash, if TrackCrash has
// ever been enabled and a worker has exited unexpectedly.
func (c *Cluster) LastCrash() (CrashInfo, bool) {
	v := c.lastCrash.Load()
	if v == nil {
		return CrashInfo{}, false
	}
	return v.(CrashInfo), true
}

// Restart kills and respawns one worker by pid. When flag is false the
// worker is killed but not replaced.
func (c *Cluster) Restart(pid int, flag bool) error {
	c.mu.Lock()
	w, ok := c.workers[pid]
	if !ok {
		c.mu.Unlock()
		return ErrorWorkerNotFound.Error()
	}
	delete(c.workers, pid)
	index := w.index
	c.mu.Unlock()

	w.kill()

	if !flag {
		return nil
	}

	nw, err := spawnWorker(index, EnvVarName, c.cfg.chunkSize(), nil)
	if err != nil {
		return ErrorRespawnFailed.Error(err)
	}

	c.mu.Lock()
	c.workers[nw.pid] = nw
	c.mu.Unlock()

	if c.started.Load() {
		go c.supervise(nw)
	}

	return nil
}

// Send writes payload to exactly one worker, chosen by pid.
func (c *Cluster) Send(pid int, payload []byte, async bool) error {
	c.mu.Lock()
	w, ok := c.workers[pid]
	c.mu.Unlock()

	if !ok {
		return ErrorWorkerNotFound.Error()
	}
	return w.send(payload, async)
}

// Broadcast writes payload to every live worker, returning
// ErrorBroadcastPartial if at least one send failed.
func (c *Cluster) Broadcast(payload []byte, async bool) error {
	c.mu.Lock()
	workers := make([]*worker, 0, len(c.workers))
	for _, w := range c.workers {
		workers = append(workers, w)
	}
	c.mu.Unlock()

	var failed int
	for _, w := range workers {
		if err := w.send(payload, async); err != nil {
			failed++
			if c.log != nil {
				c.log.Warning("broadcast send failed", nil, "pid", w.pid, "err", err)
			}
		}
	}

	if failed > 0 {
		return ErrorBroadcastPartial.Error(fmt.Errorf("%d/%d sends failed", failed, len(workers)))
	}
	return nil
}

// Stop kills every worker and stops crash supervision from respawning them.
func (c *Cluster) Stop() error {
	if !c.stopped.CompareAndSwap(false, true) {
		return nil
	}

	c.mu.Lock()
	c.killAllLocked()
	c.mu.Unlock()

	return nil
}

func (c *Cluster) killAllLocked() {
	for pid, w := range c.workers {
		w.kill()
		delete(c.workers, pid)
	}
}

// Workers returns the pid of every currently live worker.
func (c *Cluster) Workers() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int, 0, len(c.workers))
	for pid := range c.workers {
		out = append(out, pid)
	}
	return out
}
