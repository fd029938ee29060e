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

// Package websocket hand-rolls the RFC 6455 frame codec plus the
// permessage-deflate/gzip/br and permessage-encrypt extensions, since no
// library in the pack exposes this framing independent of owning the whole
// connection lifecycle the way gorilla/websocket does.
package websocket

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// Opcode identifies a frame's payload interpretation.
type Opcode uint8

const (
	OpContinuation Opcode = 0x0
	OpText         Opcode = 0x1
	OpBinary       Opcode = 0x2
	OpClose        Opcode = 0x8
	OpPing         Opcode = 0x9
	OpPong         Opcode = 0xA
)

func (o Opcode) IsControl() bool { return o >= OpClose }

// Frame is one RFC 6455 frame, already unmasked on Parse and pre-mask on
// Build.
type Frame struct {
	Fin     bool
	RSV1    bool
	RSV2    bool
	RSV3    bool
	Opcode  Opcode
	Masked  bool
	Payload []byte
}

// Build serializes f per RFC 6455 section 5.2: fin/rsv/opcode byte,
// masked-length byte, extended length in network byte order, optional
// 4-byte mask key, payload. When f.Masked is set, the mask key is 4 random
// bytes and the payload is XORed with it before being written.
func Build(f Frame) ([]byte, error) {
	if f.Opcode.IsControl() {
		if len(f.Payload) > 125 {
			return nil, ErrorControlFrameTooLarge.Error()
		}
		if !f.Fin {
			return nil, ErrorControlFrameFragmented.Error()
		}
	}

	var head [2]byte
	if f.Fin {
		head[0] |= 0x80
	}
	if f.RSV1 {
		head[0] |= 0x40
	}
	if f.RSV2 {
		head[0] |= 0x20
	}
	if f.RSV3 {
		head[0] |= 0x10
	}
	head[0] |= byte(f.Opcode) & 0x0F

	n := len(f.Payload)

	var ext []byte
	switch {
	case n <= 125:
		head[1] = byte(n)
	case n <= 0xFFFF:
		head[1] = 126
		ext = make([]byte, 2)
		binary.BigEndian.PutUint16(ext, uint16(n))
	default:
		head[1] = 127
		ext = make([]byte, 8)
		binary.BigEndian.PutUint64(ext, uint64(n))
	}

	var mask []byte
	if f.Masked {
		head[1] |= 0x80
		mask = make([]byte, 4)
		if _, err := io.ReadFull(rand.Reader, mask); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, 2+len(ext)+len(mask)+n)
	out = append(out, head[0], head[1])
	out = append(out, ext...)
	out = append(out, mask...)

	if f.Masked {
		payload := make([]byte, n)
		for i := 0; i < n; i++ {
			payload[i] = f.Payload[i] ^ mask[i%4]
		}
		out = append(out, payload...)
	} else {
		out = append(out, f.Payload...)
	}

	return out, nil
}

// Parse decodes one frame from the front of buf. ok is false when buf does
// not yet hold a complete frame; the caller should retry once more bytes
// arrive. consumed is only meaningful when ok is true.
func Parse(buf []byte) (frame Frame, consumed int, ok bool, err error) {
	if len(buf) < 2 {
		return Frame{}, 0, false, nil
	}

	fin := buf[0]&0x80 != 0
	rsv1 := buf[0]&0x40 != 0
	rsv2 := buf[0]&0x20 != 0
	rsv3 := buf[0]&0x10 != 0
	opcode := Opcode(buf[0] & 0x0F)

	masked := buf[1]&0x80 != 0
	length7 := int(buf[1] & 0x7F)

	pos := 2
	var length uint64

	switch length7 {
	case 126:
		if len(buf) < pos+2 {
			return Frame{}, 0, false, nil
		}
		length = uint64(binary.BigEndian.Uint16(buf[pos : pos+2]))
		pos += 2
	case 127:
		if len(buf) < pos+8 {
			return Frame{}, 0, false, nil
		}
		length = binary.BigEndian.Uint64(buf[pos : pos+8])
		pos += 8
	default:
		length = uint64(length7)
	}

	var maskKey []byte
	if masked {
		if len(buf) < pos+4 {
			return Frame{}, 0, false, nil
		}
		maskKey = buf[pos : pos+4]
		pos += 4
	}

	if opcode.IsControl() {
		if length > 125 {
			return Frame{}, 0, false, ErrorControlFrameTooLarge.Error()
		}
		if !fin {
			return Frame{}, 0, false, ErrorControlFrameFragmented.Error()
		}
	}

	if uint64(len(buf)-pos) < length {
		return Frame{}, 0, false, nil
	}

	payload := make([]byte, length)
	copy(payload, buf[pos:pos+int(length)])
	pos += int(length)

	if masked {
		for i := range payload {
			payload[i] ^= maskKey[i%4]
		}
	}

	return Frame{
		Fin:     fin,
		RSV1:    rsv1,
		RSV2:    rsv2,
		RSV3:    rsv3,
		Opcode:  opcode,
		Masked:  masked,
		Payload: payload,
	}, pos, true, nil
}
