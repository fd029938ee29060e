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

// Package compress implements the payload compression side of the Hash/Cipher
// component: an Algorithm enum plus streaming Reader/Writer adapters for each
// codec the WebSocket permessage extensions and the CMP payload layer share.
package compress

import "bytes"

// Algorithm identifies a supported payload compression codec.
type Algorithm uint8

const (
	None Algorithm = iota
	Bzip2
	Gzip
	LZ4
	XZ
	LZMA
	Deflate
	ZStd
	Brotli
)

// Level controls the compression effort/ratio tradeoff where the underlying
// codec exposes one; codecs without a notion of level ignore it.
type Level uint8

const (
	NORMAL Level = iota
	BEST
	SPEED
)

func List() []Algorithm {
	return []Algorithm{
		None,
		Bzip2,
		Gzip,
		LZ4,
		XZ,
		LZMA,
		Deflate,
		ZStd,
		Brotli,
	}
}

func ListString() []string {
	var (
		lst = List()
		res = make([]string, len(lst))
	)
	for i := range lst {
		res[i] = lst[i].String()
	}
	return res
}

func (a Algorithm) IsNone() bool {
	return a == None
}

func (a Algorithm) String() string {
	switch a {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case LZ4:
		return "lz4"
	case XZ:
		return "xz"
	case LZMA:
		return "lzma"
	case Deflate:
		return "deflate"
	case ZStd:
		return "zstd"
	case Brotli:
		return "br"
	default:
		return "none"
	}
}

func (a Algorithm) Extension() string {
	switch a {
	case Gzip:
		return ".gz"
	case Bzip2:
		return ".bz2"
	case LZ4:
		return ".lz4"
	case XZ:
		return ".xz"
	case LZMA:
		return ".lzma"
	case Deflate:
		return ".zz"
	case ZStd:
		return ".zst"
	case Brotli:
		return ".br"
	default:
		return ""
	}
}

// DetectHeader reports whether h looks like the magic header of this
// algorithm. Algorithms with no reliable magic (Deflate, LZMA raw streams)
// always report false; callers needing detection for those must rely on a
// framing hint (e.g. a Content-Encoding header) instead.
func (a Algorithm) DetectHeader(h []byte) bool {
	if len(h) < 4 {
		return false
	}

	switch a {
	case Gzip:
		exp := []byte{31, 139}
		return bytes.Equal(h[0:2], exp)
	case Bzip2:
		return len(h) >= 6 && bytes.Equal(h[0:3], []byte{'B', 'Z', 'h'}) && h[3] >= '0' && h[3] <= '9'
	case LZ4:
		exp := []byte{0x04, 0x22, 0x4D, 0x18}
		return bytes.Equal(h[0:4], exp)
	case XZ:
		if len(h) < 6 {
			return false
		}
		exp := []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
		return bytes.Equal(h[0:6], exp)
	case ZStd:
		exp := []byte{0x28, 0xB5, 0x2F, 0xFD}
		return bytes.Equal(h[0:4], exp)
	default:
		return false
	}
}
