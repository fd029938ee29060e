/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package http2 binds a golang.org/x/net/http2 Framer session to the raw
// byte streams a reactor-managed Broker hands it: Feed pushes bytes read
// off the wire, the Callbacks.OnSend hook pushes bytes destined for it.
package http2

import (
	"bytes"
	"io"
	"sync"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/hpack"
)

// StreamState is the per-stream bookkeeping the adapter keeps, the HTTP/2
// analogue of the Broker state described in spec.md §3.
type StreamState struct {
	ID      uint32
	Open    bool
	EndSent bool
	EndRecv bool
}

// Callbacks mirrors spec.md §4.6's session callback set.
type Callbacks struct {
	OnBeginHeaders func(streamID uint32)
	OnHeader       func(streamID uint32, name, value string)
	OnDataChunk    func(streamID uint32, data []byte)
	OnFrameRecv    func(frame http2.Frame)
	OnFrameSend    func(frameType string, streamID uint32)
	OnStreamClose  func(streamID uint32, code http2.ErrCode)
	// OnSend is how the session hands outgoing bytes to its Broker; it is
	// the write half of the binding described in spec.md §4.6.
	OnSend func(data []byte) error
}

// Session owns one HTTP/2 connection's frame traffic in one direction at a
// time, matching "a single connection is owned by exactly one reactor
// thread" (spec.md §4.6).
type Session struct {
	mu sync.Mutex

	cb Callbacks

	framer *http2.Framer
	hpDec  *hpack.Decoder

	pw *io.PipeWriter

	streams map[uint32]*StreamState
	closed  bool

	recvDone chan struct{}
	recvErr  error
}

type sendWriter struct {
	cb Callbacks
}

func (s *sendWriter) Write(p []byte) (int, error) {
	if s.cb.OnSend == nil {
		return len(p), nil
	}
	if err := s.cb.OnSend(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewSession builds a Session bound to cb. Writes made through the returned
// Framer immediately invoke cb.OnSend; inbound bytes must be pushed via
// Feed.
func NewSession(cb Callbacks) *Session {
	pr, pw := io.Pipe()

	s := &Session{
		cb:       cb,
		pw:       pw,
		streams:  make(map[uint32]*StreamState),
		recvDone: make(chan struct{}),
	}

	s.framer = http2.NewFramer(&sendWriter{cb: cb}, pr)
	s.framer.MaxHeaderListSize = 16 << 20

	s.hpDec = hpack.NewDecoder(4096, nil)

	go s.readLoop(pr)

	return s
}

func (s *Session) streamState(id uint32) *StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams[id]
	if !ok {
		st = &StreamState{ID: id, Open: true}
		s.streams[id] = st
	}
	return st
}

func (s *Session) readLoop(pr *io.PipeReader) {
	defer close(s.recvDone)

	for {
		frame, err := s.framer.ReadFrame()
		if err != nil {
			s.recvErr = err
			_ = pr.Close()
			return
		}

		if s.cb.OnFrameRecv != nil {
			s.cb.OnFrameRecv(frame)
		}

		switch f := frame.(type) {
		case *http2.HeadersFrame:
			st := s.streamState(f.StreamID)
			if s.cb.OnBeginHeaders != nil {
				s.cb.OnBeginHeaders(f.StreamID)
			}
			s.hpDec.SetEmitFunc(func(hf hpack.HeaderField) {
				if s.cb.OnHeader != nil {
					s.cb.OnHeader(f.StreamID, hf.Name, hf.Value)
				}
			})
			if _, derr := s.hpDec.Write(f.HeaderBlockFragment()); derr != nil {
				s.recvErr = ErrorHeaderDecode.Error(derr)
			}
			if f.StreamEnded() {
				st.EndRecv = true
				s.closeIfDone(st)
			}

		case *http2.DataFrame:
			st := s.streamState(f.StreamID)
			if s.cb.OnDataChunk != nil && len(f.Data()) > 0 {
				chunk := make([]byte, len(f.Data()))
				copy(chunk, f.Data())
				s.cb.OnDataChunk(f.StreamID, chunk)
			}
			if f.StreamEnded() {
				st.EndRecv = true
				s.closeIfDone(st)
			}

		case *http2.RSTStreamFrame:
			st := s.streamState(f.StreamID)
			st.EndRecv = true
			s.closeStream(st, f.ErrCode)

		case *http2.PingFrame:
			if !f.IsAck() {
				_ = s.framer.WritePing(true, f.Data)
			}

		case *http2.GoAwayFrame:
			s.recvErr = ErrorSessionClosed.Error()

		case *http2.SettingsFrame:
			if !f.IsAck() {
				_ = s.framer.WriteSettingsAck()
			}
		}
	}
}

func (s *Session) closeIfDone(st *StreamState) {
	if st.EndSent && st.EndRecv {
		s.closeStream(st, http2.ErrCodeNo)
	}
}

func (s *Session) closeStream(st *StreamState, code http2.ErrCode) {
	s.mu.Lock()
	st.Open = false
	delete(s.streams, st.ID)
	s.mu.Unlock()

	if s.cb.OnStreamClose != nil {
		s.cb.OnStreamClose(st.ID, code)
	}
}

// Feed pushes bytes read off the wire into the session's frame reader.
func (s *Session) Feed(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	_, err := s.pw.Write(data)
	return err
}

// SendHeaders encodes headers via HPACK and emits a HEADERS frame for sid,
// marking the stream half-closed (local) when end is true.
func (s *Session) SendHeaders(sid uint32, headers map[string]string, end bool) error {
	var buf bytes.Buffer
	enc := hpack.NewEncoder(&buf)
	for k, v := range headers {
		if err := enc.WriteField(hpack.HeaderField{Name: k, Value: v}); err != nil {
			return err
		}
	}

	st := s.streamState(sid)

	err := s.framer.WriteHeaders(http2.HeadersFrameParam{
		StreamID:      sid,
		BlockFragment: buf.Bytes(),
		EndHeaders:    true,
		EndStream:     end,
	})
	if err != nil {
		return err
	}

	if s.cb.OnFrameSend != nil {
		s.cb.OnFrameSend("HEADERS", sid)
	}
	if end {
		st.EndSent = true
		s.closeIfDone(st)
	}
	return nil
}

// SendData emits a DATA frame carrying buf for sid.
func (s *Session) SendData(sid uint32, buf []byte, end bool) error {
	st := s.streamState(sid)

	if err := s.framer.WriteData(sid, end, buf); err != nil {
		return err
	}

	if s.cb.OnFrameSend != nil {
		s.cb.OnFrameSend("DATA", sid)
	}
	if end {
		st.EndSent = true
		s.closeIfDone(st)
	}
	return nil
}

// Ping sends an unsolicited PING per spec.md §4.6.
func (s *Session) Ping(payload [8]byte) error {
	if err := s.framer.WritePing(false, payload); err != nil {
		return err
	}
	if s.cb.OnFrameSend != nil {
		s.cb.OnFrameSend("PING", 0)
	}
	return nil
}

// Close tears the session down; pending reads unblock with io.ErrClosedPipe.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.pw.Close()
}
