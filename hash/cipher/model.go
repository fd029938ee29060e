/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidBufferSize = errors.New("invalid buffer size")
	ErrInvalidBlockAlign = errors.New("ciphertext is not a multiple of the block size")
)

// crt is a CBC-mode coder carrying the IV across successive chunks, as
// required for streamed WebSocket/CMP payloads where one key derivation
// covers an entire message rather than a single block.
type crt struct {
	block cipher.Block
	iv    []byte
}

func (o *crt) blockSize() int {
	return o.block.BlockSize()
}

func pad(p []byte, blockSize int) []byte {
	padLen := blockSize - (len(p) % blockSize)
	padded := make([]byte, len(p)+padLen)
	copy(padded, p)
	for i := len(p); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func unpad(p []byte) ([]byte, error) {
	if len(p) == 0 {
		return p, nil
	}
	padLen := int(p[len(p)-1])
	if padLen <= 0 || padLen > len(p) {
		return nil, errors.New("invalid padding")
	}
	return p[:len(p)-padLen], nil
}

// Encode pads p to the cipher's block size with PKCS#7 and encrypts it with
// CBC, advancing the coder's IV to the last ciphertext block so the next
// Encode call continues the same stream.
func (o *crt) Encode(p []byte) []byte {
	if len(p) < 1 {
		return make([]byte, 0)
	}

	padded := pad(p, o.blockSize())
	out := make([]byte, len(padded))

	mode := cipher.NewCBCEncrypter(o.block, o.iv)
	mode.CryptBlocks(out, padded)

	o.iv = out[len(out)-o.blockSize():]

	return out
}

// Decode reverses Encode, advancing the IV the same way so a sequence of
// Decode calls mirrors the matching sequence of Encode calls.
func (o *crt) Decode(p []byte) ([]byte, error) {
	if len(p) < 1 {
		return make([]byte, 0), nil
	}

	if len(p)%o.blockSize() != 0 {
		return nil, ErrInvalidBlockAlign
	}

	out := make([]byte, len(p))
	nextIV := make([]byte, o.blockSize())
	copy(nextIV, p[len(p)-o.blockSize():])

	mode := cipher.NewCBCDecrypter(o.block, o.iv)
	mode.CryptBlocks(out, p)

	o.iv = nextIV

	return unpad(out)
}

func (o *crt) EncodeReader(r io.Reader) io.Reader {
	fct := func(p []byte) (n int, err error) {
		var b []byte

		if cap(p) < o.blockSize()+1 {
			return 0, ErrInvalidBufferSize
		}
		b = make([]byte, cap(p)-o.blockSize())

		if n, err = r.Read(b); err != nil && n == 0 {
			return 0, err
		}

		enc := o.Encode(b[:n])
		n = len(enc)

		if n > cap(p) {
			return 0, ErrInvalidBufferSize
		}
		copy(p, enc)

		clear(b)
		return n, err
	}

	return &reader{f: fct}
}

func (o *crt) DecodeReader(r io.Reader) io.Reader {
	fct := func(p []byte) (n int, err error) {
		b := make([]byte, cap(p)+o.blockSize())

		if n, err = r.Read(b); err != nil && n == 0 {
			return 0, err
		}

		var dec []byte
		dec, derr := o.Decode(b[:n])
		if derr != nil {
			return 0, derr
		}
		n = len(dec)

		if n > cap(p) {
			return 0, ErrInvalidBufferSize
		}
		copy(p, dec)

		clear(b)
		return n, err
	}

	return &reader{f: fct}
}

func (o *crt) EncodeWriter(w io.Writer) io.Writer {
	fct := func(p []byte) (n int, err error) {
		n = len(p)
		if _, err = w.Write(o.Encode(p)); err != nil {
			return 0, err
		}
		return n, nil
	}

	return &writer{f: fct}
}

func (o *crt) DecodeWriter(w io.Writer) io.Writer {
	fct := func(p []byte) (n int, err error) {
		n = len(p)
		dec, derr := o.Decode(p)
		if derr != nil {
			return 0, derr
		}
		if _, err = w.Write(dec); err != nil {
			return 0, err
		}
		return n, nil
	}

	return &writer{f: fct}
}

type reader struct {
	f func(p []byte) (n int, err error)
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.f == nil {
		return 0, fmt.Errorf("invalid reader")
	}
	return r.f(p)
}

type writer struct {
	f func(p []byte) (n int, err error)
}

func (w *writer) Write(p []byte) (n int, err error) {
	if w.f == nil {
		return 0, fmt.Errorf("invalid writer")
	}
	return w.f(p)
}

// aesNewBlock is split out so interface.go's New can stay focused on key
// derivation.
func aesNewBlock(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key)
}
