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
package diff

import (
	"github.com/proofcheck/proofcheck/internal/raster"
	"golang.org/x/sync/errgroup"
)

// Sharp computes a per-pixel max-channel-delta diff. Pixels whose delta
// exceeds threshold are painted opaque red in the output and recorded in
// the returned point cloud; all others are painted opaque black. Rows are
// processed independently (and may run in parallel); output row order is
// always preserved.
func Sharp(a, b *raster.Buffer, threshold int) (*raster.Buffer, int, []Point, error) {
	if err := requireSameDims(a, b); err != nil {
		return nil, 0, nil, err
	}

	w, h := a.Width, a.Height
	out := raster.New(w, h)

	spans := rowSpans(h, numWorkers(h))
	rowPoints := make([][]Point, len(spans))

	var g errgroup.Group
	for i, span := range spans {
		i, span := i, span
		g.Go(func() error {
			rowPoints[i] = sharpRows(a, b, out, span[0], span[1], threshold)
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	var points []Point
	for _, rp := range rowPoints {
		count += len(rp)
		points = append(points, rp...)
	}
	return out, count, points, nil
}

func sharpRows(a, b, out *raster.Buffer, rowStart, rowEnd, threshold int) []Point {
	w := a.Width
	var pts []Point
	for y := rowStart; y < rowEnd; y++ {
		for x := 0; x < w; x++ {
			ra, ga, ba, _ := a.At(x, y)
			rb, gb, bb, _ := b.At(x, y)
			if maxChannelDiff(ra, ga, ba, rb, gb, bb) > threshold {
				out.Set(x, y, 255, 0, 0, 255)
				pts = append(pts, Point{X: x, Y: y})
			} else {
				out.Set(x, y, 0, 0, 0, 255)
			}
		}
	}
	return pts
}
