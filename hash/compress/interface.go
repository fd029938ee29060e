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
	"bufio"
	"io"
)

// Parse is a convenience function to parse a string and return the
// corresponding Algorithm.
func Parse(s string) Algorithm {
	var alg = None
	if e := alg.UnmarshalText([]byte(s)); e != nil {
		return None
	} else {
		return alg
	}
}

// Detect sniffs the compression algorithm used on r and returns a reader
// already wrapping it for decompression.
func Detect(r io.Reader) (Algorithm, io.ReadCloser, error) {
	var (
		err error
		alg Algorithm
		rdr io.ReadCloser
	)

	if alg, rdr, err = DetectOnly(r); err != nil {
		return None, nil, err
	} else if rdr, err = alg.Reader(rdr); err != nil {
		return None, nil, err
	} else {
		return alg, rdr, nil
	}
}

// DetectOnly sniffs the compression algorithm used on r without wrapping it;
// the returned reader still holds the peeked bytes.
func DetectOnly(r io.Reader) (Algorithm, io.ReadCloser, error) {
	var (
		err error
		alg Algorithm
		bfr = bufio.NewReader(r)
		buf []byte
	)

	if buf, err = bfr.Peek(6); err != nil && len(buf) == 0 {
		return None, nil, err
	}

	switch {
	case Gzip.DetectHeader(buf):
		alg = Gzip
	case Bzip2.DetectHeader(buf):
		alg = Bzip2
	case LZ4.DetectHeader(buf):
		alg = LZ4
	case XZ.DetectHeader(buf):
		alg = XZ
	case ZStd.DetectHeader(buf):
		alg = ZStd
	default:
		alg = None
	}

	return alg, io.NopCloser(bfr), nil
}

// DetectHeaderByExtension maps a Content-Encoding-style token or a filename
// extension to an Algorithm, falling back to Parse for bare tokens.
func DetectHeaderByExtension(name string) Algorithm {
	for _, a := range List() {
		if a == None {
			continue
		}
		if ext := a.Extension(); ext != "" && len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return a
		}
	}
	return Parse(name)
}
