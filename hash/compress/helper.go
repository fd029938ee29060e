/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package compress

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
)

type operation uint8

const (
	Compress operation = iota
	Decompress
)

const chunkSize = 856

// Helper drives compression or decompression through the io.ReadWriter
// surface, with optional context takeover across successive SetReader /
// SetWriter calls (client_takeover / server_takeover in spec terms).
type Helper interface {
	SetReader(io.Reader) error
	SetWriter(io.Writer) error
	io.ReadWriter
	io.Closer
}

// NewHelper builds a Helper for the given algorithm/operation at the
// default level with context takeover disabled (each SetReader/SetWriter
// starts a fresh codec instance).
func NewHelper(algo Algorithm, op operation) (Helper, error) {
	return NewHelperLevel(algo, op, NORMAL, false)
}

// NewHelperLevel is the fully parameterized constructor: lvl picks the
// codec's effort tradeoff, takeover keeps the compression context alive
// across calls instead of resetting it on every message boundary.
func NewHelperLevel(algo Algorithm, op operation, lvl Level, takeover bool) (Helper, error) {
	if op != Compress && op != Decompress {
		return nil, errors.New("invalid operation: choose 'compress' or 'decompress'")
	}

	return &engine{
		state:     new(atomic.Bool),
		algo:      algo,
		level:     lvl,
		buffer:    bytes.NewBuffer(make([]byte, 0)),
		operation: op,
		closed:    new(atomic.Bool),
		takeover:  takeover,
	}, nil
}

// fill advances the compress-via-Read path: it drains e.reader in chunks,
// pushes bytes through the codec writer into e.buffer, and closes the
// codec writer (flushing any trailer) once the source is exhausted.
func (e *engine) fill() (int, error) {
	buf := make([]byte, chunkSize)

	n, err := e.reader.Read(buf)
	if n > 0 {
		if _, werr := e.writer.Write(buf[:n]); werr != nil {
			return 0, werr
		}
	}

	if err == io.EOF {
		if cerr := e.writer.Close(); cerr != nil {
			return 0, cerr
		}
		e.closed.Store(true)
		return n, nil
	}

	return n, err
}
