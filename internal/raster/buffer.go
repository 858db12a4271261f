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

// Package raster is the shared 8-bit RGBA buffer type plus the generic
// decode/resize/crop helpers every pipeline normalizes inputs through.
package raster

import (
	"image"
	"image/color"

	"github.com/proofcheck/proofcheck/internal/xerrors"
)

// Buffer is a contiguous, top-left-origin, row-major 8-bit RGBA image
// with no row padding: len(Pix) must equal 4*Width*Height.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

// New allocates a zeroed buffer of the given dimensions.
func New(width, height int) *Buffer {
	return &Buffer{
		Pix:    make([]byte, 4*width*height),
		Width:  width,
		Height: height,
	}
}

// FromPix wraps an existing pixel slice, validating its length against
// the claimed dimensions.
func FromPix(pix []byte, width, height int) (*Buffer, error) {
	want := 4 * width * height
	if len(pix) != want {
		return nil, xerrors.Newf(xerrors.Buffer, "buffer size %d does not match %dx%d (want %d)", len(pix), width, height, want)
	}
	return &Buffer{Pix: pix, Width: width, Height: height}, nil
}

// At returns the RGBA quad at (x, y).
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := 4 * (y*b.Width + x)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the RGBA quad at (x, y).
func (b *Buffer) Set(x, y int, r, g, bl, a uint8) {
	i := 4 * (y*b.Width + x)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// ToImage adapts the buffer to the standard library's image.Image, for
// handoff to encoders and resize libraries.
func (b *Buffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: 4 * b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// FromImage copies an arbitrary image.Image into a fresh RGBA buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(w, h)
	dst := out.ToImage()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			dst.SetRGBA(x, y, c)
		}
	}
	return out
}
