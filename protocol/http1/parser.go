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

package http1

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/anyks/awh/hash/compress"
)

// OnHeaders fires once the start-line and the full header block have been
// parsed, before any body byte is delivered.
type OnHeaders func(StartLine, Headers)

// OnBody fires for every decoded body fragment. When the message carries a
// recognized Content-Encoding, fragments are already decompressed.
type OnBody func([]byte)

// OnComplete fires once the message reaches the END state.
type OnComplete func()

// Parser is an incremental HTTP/1.x message parser fed by Feed. It never
// blocks on I/O itself; the caller owns the connection and pushes whatever
// bytes the reactor delivered.
type Parser struct {
	isResponse bool

	onHeaders  OnHeaders
	onBody     OnBody
	onComplete OnComplete

	state      State
	pending    []byte
	headerSize int

	start   StartLine
	headers Headers

	bodyMode  BodyMode
	remaining int64

	chunkState     ChunkState
	chunkRemaining int64

	decompress   bool
	pipeW        *io.PipeWriter
	decompDoneCh chan struct{}
}

// NewParser builds a Parser for request messages when isResponse is false,
// or status-line responses when true.
func NewParser(isResponse bool, onHeaders OnHeaders, onBody OnBody, onComplete OnComplete) *Parser {
	return &Parser{
		isResponse: isResponse,
		onHeaders:  onHeaders,
		onBody:     onBody,
		onComplete: onComplete,
		state:      StateQuery,
	}
}

// Reset returns the parser to its initial state, ready to decode the next
// message on a keep-alive connection.
func (p *Parser) Reset() {
	p.state = StateQuery
	p.pending = nil
	p.headerSize = 0
	p.start = StartLine{}
	p.headers = nil
	p.bodyMode = BodyNone
	p.remaining = 0
	p.chunkState = ChunkSize
	p.chunkRemaining = 0
	p.decompress = false
	p.pipeW = nil
	p.decompDoneCh = nil
}

// State reports the parser's current stage.
func (p *Parser) State() State { return p.state }

// Feed pushes the next chunk of bytes, however large or small, into the
// parser. It returns once data is exhausted or the message reaches END or
// BROKEN.
func (p *Parser) Feed(data []byte) error {
	if len(p.pending) > 0 {
		data = append(p.pending, data...)
		p.pending = nil
	}

	for len(data) > 0 && p.state != StateEnd && p.state != StateBroken {
		var (
			consumed int
			err      error
		)

		switch p.state {
		case StateQuery:
			consumed, err = p.feedStartLine(data)
		case StateHeaders:
			consumed, err = p.feedHeaderLine(data)
		case StateBody:
			consumed, err = p.feedBody(data)
		default:
			return ErrorUnexpectedState.Error()
		}

		if err != nil {
			p.state = StateBroken
			return err
		}

		if consumed == 0 {
			// nothing more can be consumed until more bytes arrive
			p.pending = append(p.pending, data...)
			return nil
		}

		data = data[consumed:]
	}

	if len(data) > 0 {
		p.pending = append(p.pending, data...)
	}

	return nil
}

func normalizeHeaderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// takeLine extracts one CRLF (or bare LF)-terminated line from buf, if a
// full line is present. ok is false when buf doesn't yet contain a newline.
func takeLine(buf []byte) (line []byte, rest []byte, ok bool) {
	idx := bytes.IndexByte(buf, '\n')
	if idx < 0 {
		return nil, buf, false
	}
	line = buf[:idx]
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return line, buf[idx+1:], true
}

func (p *Parser) feedStartLine(data []byte) (int, error) {
	line, rest, ok := takeLine(data)
	if !ok {
		if len(data) > maxHeaderBytes {
			return 0, ErrorHeaderTooLarge.Error()
		}
		return 0, nil
	}

	consumed := len(data) - len(rest)

	fields := strings.SplitN(string(line), " ", 3)
	if p.isResponse {
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
			return 0, ErrorMalformedStartLine.Error()
		}
		code, cerr := strconv.Atoi(fields[1])
		if cerr != nil {
			return 0, ErrorMalformedStartLine.Error()
		}
		p.start.Proto = fields[0]
		p.start.Status = code
		if len(fields) == 3 {
			p.start.Reason = fields[2]
		}
	} else {
		if len(fields) != 3 || !strings.HasPrefix(fields[2], "HTTP/") {
			return 0, ErrorMalformedStartLine.Error()
		}
		p.start.Method = fields[0]
		p.start.Target = fields[1]
		p.start.Proto = fields[2]
	}

	p.headers = make(Headers)
	p.state = StateHeaders
	return consumed, nil
}

func (p *Parser) feedHeaderLine(data []byte) (int, error) {
	line, rest, ok := takeLine(data)
	if !ok {
		if len(data) > maxHeaderBytes {
			return 0, ErrorHeaderTooLarge.Error()
		}
		return 0, nil
	}

	consumed := len(data) - len(rest)
	p.headerSize += consumed
	if p.headerSize > maxHeaderBytes {
		return 0, ErrorHeaderTooLarge.Error()
	}

	if len(line) == 0 {
		return consumed, p.beginBody()
	}

	idx := bytes.IndexByte(line, ':')
	if idx <= 0 {
		return 0, ErrorMalformedHeader.Error()
	}

	name := string(line[:idx])
	value := strings.TrimSpace(string(line[idx+1:]))
	p.headers.Add(name, value)

	return consumed, nil
}

func (p *Parser) beginBody() error {
	if p.onHeaders != nil {
		p.onHeaders(p.start, p.headers)
	}

	te := strings.ToLower(p.headers.Get("Transfer-Encoding"))
	cl := p.headers.Get("Content-Length")

	switch {
	case strings.Contains(te, "chunked"):
		p.bodyMode = BodyChunked
		p.chunkState = ChunkSize
	case cl != "":
		n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64)
		if err != nil || n < 0 {
			return ErrorMalformedHeader.Error()
		}
		p.bodyMode = BodyContentLength
		p.remaining = n
	default:
		p.bodyMode = BodyNone
	}

	if alg := compress.Parse(p.headers.Get("Content-Encoding")); !alg.IsNone() {
		p.startDecompression(alg)
	}

	p.state = StateBody

	if p.bodyMode == BodyNone {
		return p.finish()
	}
	if p.bodyMode == BodyContentLength && p.remaining == 0 {
		return p.finish()
	}
	return nil
}

func (p *Parser) startDecompression(alg compress.Algorithm) {
	pr, pw := io.Pipe()
	p.pipeW = pw
	p.decompress = true
	p.decompDoneCh = make(chan struct{})

	go func() {
		defer close(p.decompDoneCh)
		rc, err := alg.Reader(pr)
		if err != nil {
			_ = pr.CloseWithError(err)
			return
		}
		buf := make([]byte, 32*1024)
		for {
			n, rerr := rc.Read(buf)
			if n > 0 && p.onBody != nil {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				p.onBody(chunk)
			}
			if rerr != nil {
				return
			}
		}
	}()
}

func (p *Parser) deliverBody(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	if p.decompress {
		_, _ = p.pipeW.Write(chunk)
		return
	}
	if p.onBody != nil {
		p.onBody(chunk)
	}
}

func (p *Parser) feedBody(data []byte) (int, error) {
	switch p.bodyMode {
	case BodyContentLength:
		n := int64(len(data))
		if n > p.remaining {
			n = p.remaining
		}
		p.deliverBody(data[:n])
		p.remaining -= n
		if p.remaining == 0 {
			return int(n), p.finish()
		}
		return int(n), nil

	case BodyChunked:
		return p.feedChunked(data)

	default:
		return 0, ErrorUnexpectedState.Error()
	}
}

func (p *Parser) feedChunked(data []byte) (int, error) {
	total := 0

	for total < len(data) {
		rest := data[total:]

		switch p.chunkState {
		case ChunkSize:
			line, tail, ok := takeLine(rest)
			if !ok {
				if len(rest) > maxHeaderBytes {
					return 0, ErrorInvalidChunkSize.Error()
				}
				return total, nil
			}
			consumed := len(rest) - len(tail)
			sizeField := line
			if idx := bytes.IndexByte(sizeField, ';'); idx >= 0 {
				sizeField = sizeField[:idx]
			}
			sizeField = bytes.TrimSpace(sizeField)
			n, err := strconv.ParseInt(string(sizeField), 16, 64)
			if err != nil || n < 0 {
				return 0, ErrorInvalidChunkSize.Error()
			}
			total += consumed
			p.chunkRemaining = n
			if n == 0 {
				p.chunkState = ChunkStopBody
			} else {
				p.chunkState = ChunkBody
			}

		case ChunkBody:
			avail := int64(len(rest))
			take := p.chunkRemaining
			if take > avail {
				take = avail
			}
			p.deliverBody(rest[:take])
			p.chunkRemaining -= take
			total += int(take)
			if p.chunkRemaining == 0 {
				p.chunkState = ChunkEndBody
			} else {
				return total, nil
			}

		case ChunkEndBody:
			line, tail, ok := takeLine(rest)
			if !ok {
				return total, nil
			}
			if len(line) != 0 {
				return 0, ErrorInvalidChunkSize.Error()
			}
			total += len(rest) - len(tail)
			p.chunkState = ChunkSize

		case ChunkStopBody:
			line, tail, ok := takeLine(rest)
			if !ok {
				return total, nil
			}
			consumed := len(rest) - len(tail)
			total += consumed
			if len(line) == 0 {
				return total, p.finish()
			}
			// trailer header line: ignored beyond accounting for the limit
			p.headerSize += consumed
			if p.headerSize > maxHeaderBytes {
				return 0, ErrorHeaderTooLarge.Error()
			}

		default:
			return 0, ErrorUnexpectedState.Error()
		}
	}

	return total, nil
}

func (p *Parser) finish() error {
	if p.decompress {
		_ = p.pipeW.Close()
		<-p.decompDoneCh
	}
	p.state = StateEnd
	if p.onComplete != nil {
		p.onComplete()
	}
	return nil
}
