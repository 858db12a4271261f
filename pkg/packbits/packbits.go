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

// Package packbits decodes the Apple PackBits run-length scheme used to
// compress individual LPF scanlines.
package packbits

// Decode decodes one scanline from src[srcStart:srcStart+srcLen] into
// dst[dstStart:dstStart+dstLen], and returns the number of destination
// bytes written. It stops as soon as either window is exhausted: a
// scanline that decodes to more bytes than dstLen is silently truncated,
// and a scanline that decodes to fewer leaves the remainder of dst
// untouched (callers that need determinism should zero dst up front).
func Decode(src []byte, srcStart, srcLen int, dst []byte, dstStart, dstLen int) int {
	si := srcStart
	srcEnd := srcStart + srcLen
	di := dstStart
	dstEnd := dstStart + dstLen

	for si < srcEnd && di < dstEnd {
		n := int8(src[si])
		si++

		switch {
		case n >= 0:
			count := int(n) + 1
			if si+count > srcEnd {
				count = srcEnd - si
			}
			if di+count > dstEnd {
				count = dstEnd - di
			}
			if count <= 0 {
				break
			}
			copy(dst[di:di+count], src[si:si+count])
			si += count
			di += count
		case n != -128:
			if si >= srcEnd {
				break
			}
			b := src[si]
			si++
			count := 1 - int(n)
			if di+count > dstEnd {
				count = dstEnd - di
			}
			for k := 0; k < count; k++ {
				dst[di+k] = b
			}
			di += count
		default:
			// n == -128: no-op.
		}
	}
	return di - dstStart
}
