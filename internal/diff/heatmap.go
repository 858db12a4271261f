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

// densityRadius is the half-width of the local-density window (31x31).
const densityRadius = 15

const densityGateMin = 0.05
const hotGate = 0.6

// Heatmap computes a density-weighted diff in four phases: binary mask,
// integral image (sequential, both axes depend on each other), local
// density from four integral-image samples per pixel, and finally a
// color ramp + point-cloud/high-density selection.
func Heatmap(a, b *raster.Buffer, threshold int) (*raster.Buffer, int, []Point, error) {
	if err := requireSameDims(a, b); err != nil {
		return nil, 0, nil, err
	}
	w, h := a.Width, a.Height

	mask := buildMask(a, b, threshold)
	integral := buildIntegral(mask, w, h)

	density := make([]float32, w*h)
	var maxDensity float32

	spans := rowSpans(h, numWorkers(h))
	maxPerSpan := make([]float32, len(spans))

	var gDensity errgroup.Group
	for i, span := range spans {
		i, span := i, span
		gDensity.Go(func() error {
			maxPerSpan[i] = computeDensityRows(integral, density, w, h, span[0], span[1])
			return nil
		})
	}
	_ = gDensity.Wait()
	for _, m := range maxPerSpan {
		if m > maxDensity {
			maxDensity = m
		}
	}

	out := raster.New(w, h)
	if maxDensity == 0 {
		// No hits at all; buffer stays opaque black (raster.New zeroes Pix),
		// but alpha must still be opaque.
		fillOpaqueBlack(out)
		return out, 0, nil, nil
	}

	rowHigh := make([][]Point, len(spans))
	rowCount := make([]int, len(spans))

	var gColor errgroup.Group
	for i, span := range spans {
		i, span := i, span
		gColor.Go(func() error {
			pts, n := colorRows(mask, density, out, w, maxDensity, span[0], span[1])
			rowHigh[i] = pts
			rowCount[i] = n
			return nil
		})
	}
	_ = gColor.Wait()

	var points []Point
	highCount := 0
	for i := range spans {
		points = append(points, rowHigh[i]...)
		highCount += rowCount[i]
	}
	return out, highCount, points, nil
}

func fillOpaqueBlack(b *raster.Buffer) {
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255
	}
}

// buildMask runs the same threshold test as Sharp, producing a
// width*height binary mask (1 = differs, 0 = same).
func buildMask(a, b *raster.Buffer, threshold int) []byte {
	w, h := a.Width, a.Height
	mask := make([]byte, w*h)

	spans := rowSpans(h, numWorkers(h))
	var g errgroup.Group
	for _, span := range spans {
		span := span
		g.Go(func() error {
			for y := span[0]; y < span[1]; y++ {
				base := y * w
				for x := 0; x < w; x++ {
					ra, ga, ba, _ := a.At(x, y)
					rb, gb, bb, _ := b.At(x, y)
					if maxChannelDiff(ra, ga, ba, rb, gb, bb) > threshold {
						mask[base+x] = 1
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return mask
}

// buildIntegral builds a (w+1)x(h+1) summed-area table over mask. This
// is inherently sequential: each cell depends on the cell above and the
// cell to the left.
func buildIntegral(mask []byte, w, h int) []float32 {
	stride := w + 1
	integral := make([]float32, stride*(h+1))

	for y := 1; y <= h; y++ {
		var rowSum float32
		for x := 1; x <= w; x++ {
			rowSum += float32(mask[(y-1)*w+(x-1)])
			integral[y*stride+x] = integral[(y-1)*stride+x] + rowSum
		}
	}
	return integral
}

// windowSum returns the sum of mask values in [x0,x1) x [y0,y1) using
// exactly four integral-image samples.
func windowSum(integral []float32, stride, x0, y0, x1, y1 int) float32 {
	return integral[y1*stride+x1] - integral[y0*stride+x1] - integral[y1*stride+x0] + integral[y0*stride+x0]
}

func computeDensityRows(integral []float32, density []float32, w, h, rowStart, rowEnd int) float32 {
	stride := w + 1
	var localMax float32

	for y := rowStart; y < rowEnd; y++ {
		y0 := y - densityRadius
		if y0 < 0 {
			y0 = 0
		}
		y1 := y + densityRadius + 1
		if y1 > h {
			y1 = h
		}

		for x := 0; x < w; x++ {
			x0 := x - densityRadius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + densityRadius + 1
			if x1 > w {
				x1 = w
			}

			area := float32((x1 - x0) * (y1 - y0))
			sum := windowSum(integral, stride, x0, y0, x1, y1)
			d := sum / area
			density[y*w+x] = d
			if d > localMax {
				localMax = d
			}
		}
	}
	return localMax
}

func colorRows(mask []byte, density []float32, out *raster.Buffer, w int, maxDensity float32, rowStart, rowEnd int) ([]Point, int) {
	var pts []Point
	high := 0

	for y := rowStart; y < rowEnd; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			raw := density[idx]
			n := raw / maxDensity

			if mask[idx] == 1 && raw > densityGateMin {
				r, g, b := heatColor(n)
				out.Set(x, y, r, g, b, 255)
				if n >= hotGate {
					high++
					pts = append(pts, Point{X: x, Y: y})
				}
			} else {
				out.Set(x, y, 0, 0, 0, 255)
			}
		}
	}
	return pts, high
}

// heatColor maps a normalized density in [0,1] to the cool->warm->hot ramp.
func heatColor(n float32) (r, g, b uint8) {
	switch {
	case n < 0.3:
		return 0, clamp255(n / 0.3 * 200), 200
	case n < 0.6:
		t := (n - 0.3) / 0.3
		return clamp255(t * 255), clamp255(200 + t*55), clamp255((1 - t) * 200)
	default:
		t := (n - 0.6) / 0.4
		return 255, clamp255((1 - t) * 255), 0
	}
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
