// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package binreader reads big-endian integers out of an in-memory byte
// slice at a cursor that only ever moves forward.
package binreader

import (
	"encoding/binary"
	"fmt"
)

var ErrTruncated = fmt.Errorf("truncated: unexpected end of buffer")

// Reader is a forward-only cursor over a byte slice.
type Reader struct {
	buf []byte
	off int
}

func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the unread tail of the buffer.
func (r *Reader) Remaining() []byte {
	return r.buf[r.off:]
}

func (r *Reader) window(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, ErrTruncated
	}
	return r.buf[r.off : r.off+n], nil
}

func (r *Reader) Uint16() (uint16, error) {
	w, err := r.window(2)
	if err != nil {
		return 0, err
	}
	r.off += 2
	return binary.BigEndian.Uint16(w), nil
}

func (r *Reader) Uint32() (uint32, error) {
	w, err := r.window(4)
	if err != nil {
		return 0, err
	}
	r.off += 4
	return binary.BigEndian.Uint32(w), nil
}

func (r *Reader) Uint64() (uint64, error) {
	w, err := r.window(8)
	if err != nil {
		return 0, err
	}
	r.off += 8
	return binary.BigEndian.Uint64(w), nil
}

// Bytes reads and returns a copy-free view of the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	w, err := r.window(n)
	if err != nil {
		return nil, err
	}
	r.off += n
	return w, nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if _, err := r.window(n); err != nil {
		return err
	}
	r.off += n
	return nil
}
