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
	"compress/bzip2"
	"compress/flate"
	"compress/gzip"
	"io"

	"github.com/andybalholm/brotli"
	bz2 "github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Reader wraps r with a decompressing io.ReadCloser for this algorithm.
func (a Algorithm) Reader(r io.Reader) (io.ReadCloser, error) {
	switch a {
	case Bzip2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case Gzip:
		return gzip.NewReader(r)
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case XZ:
		c, e := xz.NewReader(r)
		if e != nil {
			return nil, e
		}
		return io.NopCloser(c), nil
	case LZMA:
		c, e := lzma.NewReader(r)
		if e != nil {
			return nil, e
		}
		return io.NopCloser(c), nil
	case Deflate:
		return flate.NewReader(r), nil
	case ZStd:
		d, e := zstd.NewReader(r)
		if e != nil {
			return nil, e
		}
		return d.IOReadCloser(), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// Writer wraps w with a compressing io.WriteCloser for this algorithm at the
// given level. Algorithms with no level knob ignore lvl.
func (a Algorithm) Writer(w io.WriteCloser) (io.WriteCloser, error) {
	return a.WriterLevel(w, NORMAL)
}

// WriterLevel is the level-aware counterpart of Writer; Level maps onto each
// codec's own scale (best-effort: codecs without a SPEED/BEST distinction
// collapse to their single default).
func (a Algorithm) WriterLevel(w io.WriteCloser, lvl Level) (io.WriteCloser, error) {
	switch a {
	case Bzip2:
		return bz2.NewWriter(w, nil)
	case Gzip:
		return gzip.NewWriterLevel(w, gzipLevel(lvl))
	case LZ4:
		return lz4.NewWriter(w), nil
	case XZ:
		return xz.NewWriter(w)
	case LZMA:
		return lzma.NewWriter(w)
	case Deflate:
		fw, e := flate.NewWriter(w, gzipLevel(lvl))
		if e != nil {
			return nil, e
		}
		return fw, nil
	case ZStd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstdLevel(lvl)))
	case Brotli:
		return brotli.NewWriterLevel(w, brotliLevel(lvl)), nil
	default:
		return w, nil
	}
}

func gzipLevel(lvl Level) int {
	switch lvl {
	case BEST:
		return gzip.BestCompression
	case SPEED:
		return gzip.BestSpeed
	default:
		return gzip.DefaultCompression
	}
}

func zstdLevel(lvl Level) zstd.EncoderLevel {
	switch lvl {
	case BEST:
		return zstd.SpeedBestCompression
	case SPEED:
		return zstd.SpeedFastest
	default:
		return zstd.SpeedDefault
	}
}

func brotliLevel(lvl Level) int {
	switch lvl {
	case BEST:
		return brotli.BestCompression
	case SPEED:
		return brotli.BestSpeed
	default:
		return brotli.DefaultCompression
	}
}
