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

// Package http1 implements an incremental HTTP/1.x message parser driven by
// arbitrarily-sized byte chunks, the way a reactor-fed connection delivers
// them, rather than a blocking bufio.Reader.
package http1

// State is the parser's current stage in the QUERY -> HEADERS -> BODY -> END
// state machine.
type State uint8

const (
	StateQuery State = iota
	StateHeaders
	StateBody
	StateEnd
	StateBroken
)

func (s State) String() string {
	switch s {
	case StateQuery:
		return "QUERY"
	case StateHeaders:
		return "HEADERS"
	case StateBody:
		return "BODY"
	case StateEnd:
		return "END"
	case StateBroken:
		return "BROKEN"
	}
	return "UNKNOWN"
}

// BodyMode identifies how the message body is framed.
type BodyMode uint8

const (
	BodyNone BodyMode = iota
	BodyContentLength
	BodyChunked
)

// ChunkState tracks the sub-states of chunked body decoding:
// SIZE -> ENDSIZE -> BODY -> ENDBODY -> STOPBODY.
type ChunkState uint8

const (
	ChunkSize ChunkState = iota
	ChunkEndSize
	ChunkBody
	ChunkEndBody
	ChunkStopBody
)

const maxHeaderBytes = 8 * 1024

// StartLine holds the parsed request or status line.
type StartLine struct {
	Method   string // empty for a response
	Target   string // request-target, empty for a response
	Proto    string
	Status   int    // 0 for a request
	Reason   string // empty for a request
}

// Headers is an ordered, lower-cased-key header collection.
type Headers map[string][]string

func (h Headers) Get(key string) string {
	if v, ok := h[normalizeHeaderName(key)]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func (h Headers) Add(key, value string) {
	k := normalizeHeaderName(key)
	h[k] = append(h[k], value)
}
