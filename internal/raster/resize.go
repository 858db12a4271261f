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
package raster

import (
	"github.com/disintegration/imaging"
	"github.com/proofcheck/proofcheck/internal/xerrors"
)

// Filter selects the resampling kernel for ResizeExact.
type Filter int

const (
	Triangle Filter = iota
	Nearest
)

func (f Filter) toImaging() imaging.ResampleFilter {
	if f == Nearest {
		return imaging.NearestNeighbor
	}
	return imaging.Linear // the triangle filter
}

// ResizeToFit scales b down to fit within (maxW, maxH), preserving aspect
// ratio, never enlarging. Returns b unchanged (dimension-wise) if it
// already fits.
func ResizeToFit(b *Buffer, maxW, maxH int) (*Buffer, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, xerrors.Newf(xerrors.Buffer, "invalid resize bounds %dx%d", maxW, maxH)
	}
	if b.Width <= maxW && b.Height <= maxH {
		return b, nil
	}

	out := imaging.Fit(b.ToImage(), maxW, maxH, imaging.Linear)
	return FromImage(out), nil
}

// ResizeExact rescales b to exactly (w, h) using the given filter.
func ResizeExact(b *Buffer, w, h int, filter Filter) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, xerrors.Newf(xerrors.Buffer, "invalid resize target %dx%d", w, h)
	}
	out := imaging.Resize(b.ToImage(), w, h, filter.toImaging())
	return FromImage(out), nil
}

// Crop extracts an axis-aligned, bounds-checked rectangle from b.
func Crop(b *Buffer, left, top, right, bottom int) (*Buffer, error) {
	if left < 0 || top < 0 || left >= right || top >= bottom || right > b.Width || bottom > b.Height {
		return nil, xerrors.Newf(xerrors.Buffer, "invalid crop bounds (%d,%d)-(%d,%d) for %dx%d image", left, top, right, bottom, b.Width, b.Height)
	}

	out := New(right-left, bottom-top)
	for y := top; y < bottom; y++ {
		srcOff := 4 * (y*b.Width + left)
		dstOff := 4 * (y - top) * out.Width
		copy(out.Pix[dstOff:dstOff+4*out.Width], b.Pix[srcOff:srcOff+4*out.Width])
	}
	return out, nil
}
