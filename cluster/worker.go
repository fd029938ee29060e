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
	"net"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/anyks/awh/cluster/cmp"
)

func deadlineSoon() time.Time {
	return time.Now().Add(2 * time.Second)
}

// worker is one forked child and its IPC half of the socketpair.
type worker struct {
	mu        sync.Mutex
	index     int
	cmd       *exec.Cmd
	conn      net.Conn
	pid       int
	chunkSize int
	recordSeq atomic.Uint64
	exited    atomic.Bool
	crashes   atomic.Uint32
}

// spawnWorker forks argv0 (re-exec of the running binary) as a child,
// connecting it to the master over a stream socketpair. The child side of
// the pair is passed as fd 3 and the environment variable named by envVar is
// set to "1" so the child's own main() can detect it is running as a
// cluster worker and switch into its worker entrypoint.
func spawnWorker(index int, envVar string, chunkSize int, extraFiles []*os.File) (*worker, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, ErrorSocketpairFailed.Error(err)
	}

	parentFile := os.NewFile(uintptr(fds[0]), "cluster-master")
	childFile := os.NewFile(uintptr(fds[1]), "cluster-child")

	conn, err := net.FileConn(parentFile)
	if err != nil {
		_ = parentFile.Close()
		_ = childFile.Close()
		return nil, ErrorSocketpairFailed.Error(err)
	}
	_ = parentFile.Close()

	self, err := os.Executable()
	if err != nil {
		_ = conn.Close()
		_ = childFile.Close()
		return nil, ErrorSpawnFailed.Error(err)
	}

	cmd := exec.Command(self, os.Args[1:]...)
	cmd.Env = append(os.Environ(), envVar+"=1")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = append([]*os.File{childFile}, extraFiles...)

	if err = cmd.Start(); err != nil {
		_ = conn.Close()
		_ = childFile.Close()
		return nil, ErrorSpawnFailed.Error(err)
	}
	_ = childFile.Close()

	return &worker{index: index, cmd: cmd, conn: conn, pid: cmd.Process.Pid, chunkSize: chunkSize}, nil
}

// send frames and writes payload to the worker. async only controls whether
// the write deadline is tight; framing and delivery semantics are identical
// either way.
func (w *worker) send(payload []byte, async bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.exited.Load() {
		return ErrorWorkerGone.Error()
	}

	if async {
		_ = w.conn.SetWriteDeadline(deadlineSoon())
	} else {
		_ = w.conn.SetWriteDeadline(time.Time{})
	}

	frame := cmp.Encode(uint32(w.pid), w.recordSeq.Add(1), payload, w.chunkSize)
	if _, err := w.conn.Write(frame); err != nil {
		return ErrorSendFailed.Error(err)
	}
	return nil
}

func (w *worker) wait() error {
	err := w.cmd.Wait()
	w.exited.Store(true)
	_ = w.conn.Close()
	return err
}

func (w *worker) kill() {
	if w.cmd.Process != nil {
		_ = w.cmd.Process.Kill()
	}
}
