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
	"bytes"
	"io"

	libenc "github.com/anyks/awh/encoding"
	"github.com/anyks/awh/hash/cipher"
	"github.com/anyks/awh/hash/compress"
)

// encryptRounds is the PBKDF2 iteration count spec.md §4.9 fixes for the
// permessage-encrypt extension.
const encryptRounds = 5

var deflateTail = []byte{0x00, 0x00, 0xff, 0xff}

type nopWriteCloser struct{ w io.Writer }

func (n nopWriteCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopWriteCloser) Close() error                { return nil }

// compressAlgorithm maps an extension token onto the compress.Algorithm
// that implements it.
func compressAlgorithm(name string) compress.Algorithm {
	switch name {
	case ExtPermessageDeflate:
		return compress.Deflate
	case ExtPermessageGzip:
		return compress.Gzip
	case ExtPermessageBrotli:
		return compress.Brotli
	default:
		return compress.None
	}
}

// CompressMessage compresses payload whole, matching the per-message
// (rather than per-connection streaming) granularity the rsv1 bit marks.
// permessage-deflate output is sync-flushed and has its trailing
// "00 00 ff ff" stripped per spec.md §4.9; the symmetric DecompressMessage
// restores it before handing the stream to the decoder.
func CompressMessage(algo compress.Algorithm, level compress.Level, payload []byte) ([]byte, error) {
	var buf bytes.Buffer

	wc, err := algo.WriterLevel(nopWriteCloser{&buf}, level)
	if err != nil {
		return nil, ErrorCompressionFailed.Error(err)
	}
	if _, err := wc.Write(payload); err != nil {
		return nil, ErrorCompressionFailed.Error(err)
	}

	if algo == compress.Deflate {
		if f, ok := wc.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return nil, ErrorCompressionFailed.Error(err)
			}
			out := buf.Bytes()
			if bytes.HasSuffix(out, deflateTail) {
				out = out[:len(out)-len(deflateTail)]
			}
			return out, nil
		}
	}

	if err := wc.Close(); err != nil {
		return nil, ErrorCompressionFailed.Error(err)
	}
	return buf.Bytes(), nil
}

// DecompressMessage reverses CompressMessage.
func DecompressMessage(algo compress.Algorithm, payload []byte) ([]byte, error) {
	var r io.Reader = bytes.NewReader(payload)
	if algo == compress.Deflate {
		r = io.MultiReader(bytes.NewReader(payload), bytes.NewReader(deflateTail))
	}

	rc, err := algo.Reader(r)
	if err != nil {
		return nil, ErrorCompressionFailed.Error(err)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, ErrorCompressionFailed.Error(err)
	}
	return out, nil
}

// NewEncryptCoder derives a coder for the non-standard permessage-encrypt
// extension: PBKDF2-HMAC-SHA256(pass, salt, rounds=5) feeding AES-CBC with
// a zero-prefixed IV, per spec.md §4.9.
func NewEncryptCoder(password, salt []byte, bits int) (libenc.Coder, error) {
	var keyLen cipher.KeyLen
	switch bits {
	case 128:
		keyLen = cipher.KeyLen128
	case 192:
		keyLen = cipher.KeyLen192
	case 256:
		keyLen = cipher.KeyLen256
	default:
		return nil, ErrorEncryptionFailed.Error()
	}

	coder, err := cipher.NewFromPassword(password, salt, encryptRounds, keyLen)
	if err != nil {
		return nil, ErrorEncryptionFailed.Error(err)
	}
	return coder, nil
}

// EncryptMessage and DecryptMessage apply the permessage-encrypt coder to a
// whole message payload; rsv2 marks an encrypted frame per spec.md §4.7.
func EncryptMessage(coder libenc.Coder, payload []byte) []byte {
	return coder.Encode(payload)
}

func DecryptMessage(coder libenc.Coder, payload []byte) ([]byte, error) {
	out, err := coder.Decode(payload)
	if err != nil {
		return nil, ErrorEncryptionFailed.Error(err)
	}
	return out, nil
}
