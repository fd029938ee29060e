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

// Package cmp frames messages exchanged between a cluster master and its
// worker processes over a byte stream socketpair. A message larger than one
// chunk is split across a BEGIN frame, zero or more CONTINUE frames and a
// closing END frame; a message that fits in a single chunk is sent as one
// self-contained END frame. Frames are reassembled per (pid, record_index).
package cmp

import (
	"encoding/binary"
	"io"
)

// Mode identifies a frame's role in message reassembly.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeEnd
	ModeBegin
	ModeContinue
)

// HeaderSize is the packed, little-endian header length in bytes:
// pid(4) + mode(1) + total_size(8) + chunk_bytes(8) + record_index(8).
const HeaderSize = 4 + 1 + 8 + 8 + 8

// DefaultChunkSize matches the cluster package's default.
const DefaultChunkSize = 4096

// Header is the decoded fixed-size frame prefix.
type Header struct {
	PID         uint32
	Mode        Mode
	TotalSize   uint64
	ChunkBytes  uint64
	RecordIndex uint64
}

func (h Header) marshal() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.PID)
	buf[4] = byte(h.Mode)
	binary.LittleEndian.PutUint64(buf[5:13], h.TotalSize)
	binary.LittleEndian.PutUint64(buf[13:21], h.ChunkBytes)
	binary.LittleEndian.PutUint64(buf[21:29], h.RecordIndex)
	return buf
}

func unmarshalHeader(buf []byte) Header {
	return Header{
		PID:         binary.LittleEndian.Uint32(buf[0:4]),
		Mode:        Mode(buf[4]),
		TotalSize:   binary.LittleEndian.Uint64(buf[5:13]),
		ChunkBytes:  binary.LittleEndian.Uint64(buf[13:21]),
		RecordIndex: binary.LittleEndian.Uint64(buf[21:29]),
	}
}

// Encode frames payload as one or more chunks, keyed by recordIndex. A
// payload that fits in a single chunkSize-sized chunk is a lone ModeEnd
// frame; a larger payload opens with ModeBegin, continues with zero or more
// ModeContinue frames and closes with ModeEnd.
func Encode(pid uint32, recordIndex uint64, payload []byte, chunkSize int) []byte {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	total := uint64(len(payload))

	if len(payload) <= chunkSize {
		h := Header{PID: pid, Mode: ModeEnd, TotalSize: total, ChunkBytes: total, RecordIndex: recordIndex}
		return append(h.marshal(), payload...)
	}

	out := make([]byte, 0, len(payload)+HeaderSize*(len(payload)/chunkSize+2))
	off := 0
	for off < len(payload) {
		end := off + chunkSize
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[off:end]

		mode := ModeContinue
		if off == 0 {
			mode = ModeBegin
		} else if end == len(payload) {
			mode = ModeEnd
		}

		h := Header{PID: pid, Mode: mode, TotalSize: total, ChunkBytes: uint64(len(chunk)), RecordIndex: recordIndex}
		out = append(out, h.marshal()...)
		out = append(out, chunk...)

		off = end
	}

	return out
}

// session holds the in-progress reassembly buffer for one record_index.
type session struct {
	buf []byte
}

// Reassembler reconstructs complete payloads from a stream of frames,
// tracked per (pid, record_index). It is not safe for concurrent use.
type Reassembler struct {
	sessions map[uint64]map[uint64]*session // pid -> record_index -> session
}

func NewReassembler() *Reassembler {
	return &Reassembler{sessions: map[uint64]map[uint64]*session{}}
}

func (r *Reassembler) sessionFor(pid uint32) map[uint64]*session {
	key := uint64(pid)
	m, ok := r.sessions[key]
	if !ok {
		m = map[uint64]*session{}
		r.sessions[key] = m
	}
	return m
}

// Feed decodes one length-delimited frame from r and, if it completes a
// message, returns the reassembled payload and true. CONTINUE frames
// arriving without an open BEGIN session are dropped. A duplicate BEGIN for
// an already-open session discards the partial buffer and starts over.
func (r *Reassembler) Feed(rd io.Reader) (pid uint32, payload []byte, complete bool, err error) {
	hbuf := make([]byte, HeaderSize)
	if _, err = io.ReadFull(rd, hbuf); err != nil {
		return 0, nil, false, err
	}
	h := unmarshalHeader(hbuf)

	chunk := make([]byte, h.ChunkBytes)
	if h.ChunkBytes > 0 {
		if _, err = io.ReadFull(rd, chunk); err != nil {
			return 0, nil, false, err
		}
	}

	sessions := r.sessionFor(h.PID)

	switch h.Mode {
	case ModeEnd:
		if s, ok := sessions[h.RecordIndex]; ok {
			full := append(s.buf, chunk...)
			delete(sessions, h.RecordIndex)
			return h.PID, full, true, nil
		}
		return h.PID, chunk, true, nil

	case ModeBegin:
		sessions[h.RecordIndex] = &session{buf: append([]byte(nil), chunk...)}
		return h.PID, nil, false, nil

	case ModeContinue:
		s, ok := sessions[h.RecordIndex]
		if !ok {
			return h.PID, nil, false, nil
		}
		s.buf = append(s.buf, chunk...)
		return h.PID, nil, false, nil

	default:
		return h.PID, nil, false, nil
	}
}
