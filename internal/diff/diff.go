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

// Package diff implements the two pixel-difference kernels: a sharp
// per-pixel diff for like-for-like inputs, and a density-weighted
// heatmap diff for cross-format comparisons where alignment noise and
// anti-aliasing would otherwise swamp a sharp diff.
package diff

import (
	"runtime"

	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/proofcheck/proofcheck/internal/xerrors"
)

// Point is a differing pixel in image coordinates.
type Point struct {
	X, Y int
}

func numWorkers(height int) int {
	n := runtime.GOMAXPROCS(0)
	if n > height {
		n = height
	}
	if n < 1 {
		n = 1
	}
	return n
}

// rowSpans splits [0, height) into up to n contiguous, roughly equal spans.
func rowSpans(height, n int) [][2]int {
	if n <= 0 {
		n = 1
	}
	spans := make([][2]int, 0, n)
	chunk := (height + n - 1) / n
	for start := 0; start < height; start += chunk {
		end := start + chunk
		if end > height {
			end = height
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

func requireSameDims(a, b *raster.Buffer) error {
	if a.Width != b.Width || a.Height != b.Height {
		return xerrors.Newf(xerrors.Buffer, "image dimensions differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func maxChannelDiff(ra, ga, ba, rb, gb, bb uint8) int {
	d := absDiff(ra, rb)
	if v := absDiff(ga, gb); v > d {
		d = v
	}
	if v := absDiff(ba, bb); v > d {
		d = v
	}
	return d
}
