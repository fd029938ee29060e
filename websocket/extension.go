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

package websocket

import (
	"strconv"
	"strings"
)

// Extension names recognized in a Sec-WebSocket-Extensions offer, per
// spec.md §4.7.
const (
	ExtPermessageDeflate = "permessage-deflate"
	ExtPermessageGzip    = "permessage-gzip"
	ExtPermessageBrotli  = "permessage-br"
	extEncryptPrefix     = "permessage-encrypt"
)

// Extension is one parsed offer/agreement from a Sec-WebSocket-Extensions
// header value.
type Extension struct {
	Name                    string
	ClientNoContextTakeover bool
	ServerNoContextTakeover bool
	ClientMaxWindowBits     int
	ServerMaxWindowBits     int
	// EncryptBits is set when Name has the non-standard
	// "permessage-encrypt=<128|192|256>" shape.
	EncryptBits int
}

// ParseExtensions parses a Sec-WebSocket-Extensions header value into its
// comma-separated offers.
func ParseExtensions(header string) ([]Extension, error) {
	var out []Extension

	for _, offer := range splitTop(header, ',') {
		offer = strings.TrimSpace(offer)
		if offer == "" {
			continue
		}

		parts := splitTop(offer, ';')
		name := strings.TrimSpace(parts[0])

		ext := Extension{Name: name}

		if strings.HasPrefix(name, extEncryptPrefix) {
			if idx := strings.IndexByte(name, '='); idx >= 0 {
				bits, err := strconv.Atoi(strings.TrimSpace(name[idx+1:]))
				if err != nil {
					return nil, ErrorUnknownExtension.Error(err)
				}
				ext.Name = extEncryptPrefix
				ext.EncryptBits = bits
			}
		}

		switch ext.Name {
		case ExtPermessageDeflate, ExtPermessageGzip, ExtPermessageBrotli, extEncryptPrefix:
		default:
			return nil, ErrorUnknownExtension.Error()
		}

		for _, p := range parts[1:] {
			p = strings.TrimSpace(p)
			switch {
			case p == "client_no_context_takeover":
				ext.ClientNoContextTakeover = true
			case p == "server_no_context_takeover":
				ext.ServerNoContextTakeover = true
			case strings.HasPrefix(p, "client_max_window_bits"):
				ext.ClientMaxWindowBits = parseWindowBits(p)
			case strings.HasPrefix(p, "server_max_window_bits"):
				ext.ServerMaxWindowBits = parseWindowBits(p)
			}
		}

		out = append(out, ext)
	}

	return out, nil
}

func parseWindowBits(p string) int {
	idx := strings.IndexByte(p, '=')
	if idx < 0 {
		return 0
	}
	n, _ := strconv.Atoi(strings.TrimSpace(strings.Trim(p[idx+1:], `"`)))
	return n
}

// splitTop splits s on sep, ignoring occurrences inside double quotes.
func splitTop(s string, sep byte) []string {
	var (
		out    []string
		quoted bool
		start  int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// String renders ext back into Sec-WebSocket-Extensions wire form.
func (ext Extension) String() string {
	name := ext.Name
	if ext.Name == extEncryptPrefix && ext.EncryptBits > 0 {
		name = extEncryptPrefix + "=" + strconv.Itoa(ext.EncryptBits)
	}

	parts := []string{name}
	if ext.ClientNoContextTakeover {
		parts = append(parts, "client_no_context_takeover")
	}
	if ext.ServerNoContextTakeover {
		parts = append(parts, "server_no_context_takeover")
	}
	if ext.ClientMaxWindowBits > 0 {
		parts = append(parts, "client_max_window_bits="+strconv.Itoa(ext.ClientMaxWindowBits))
	}
	if ext.ServerMaxWindowBits > 0 {
		parts = append(parts, "server_max_window_bits="+strconv.Itoa(ext.ServerMaxWindowBits))
	}
	return strings.Join(parts, "; ")
}
