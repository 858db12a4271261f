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
package pipeline

import (
	"context"

	"github.com/proofcheck/proofcheck/internal/cluster"
	"github.com/proofcheck/proofcheck/internal/dataurl"
	"github.com/proofcheck/proofcheck/internal/diff"
	"github.com/proofcheck/proofcheck/internal/lpf"
	"github.com/proofcheck/proofcheck/internal/raster"
	"golang.org/x/sync/errgroup"
)

// ComputeDiffSimple runs the full sharp-diff pipeline: decode both
// inputs concurrently, normalize dimensions, diff, cluster, and encode
// every image field.
func ComputeDiffSimple(ctx context.Context, pathA, pathB string, threshold int) (SimpleDiffResult, error) {
	return simpleDiff(ctx, pathA, pathB, threshold, true)
}

// CheckDiffSimple runs the same pipeline but skips all encoding.
func CheckDiffSimple(ctx context.Context, pathA, pathB string, threshold int) (SimpleDiffResult, error) {
	return simpleDiff(ctx, pathA, pathB, threshold, false)
}

func simpleDiff(ctx context.Context, pathA, pathB string, threshold int, full bool) (SimpleDiffResult, error) {
	bufA, bufB, err := decodePair(ctx, pathA, pathB)
	if err != nil {
		return SimpleDiffResult{}, err
	}

	w := bufA.Width
	if bufB.Width > w {
		w = bufB.Width
	}
	h := bufA.Height
	if bufB.Height > h {
		h = bufB.Height
	}

	if bufA.Width != w || bufA.Height != h {
		bufA, err = raster.ResizeExact(bufA, w, h, raster.Triangle)
		if err != nil {
			return SimpleDiffResult{}, err
		}
	}
	if bufB.Width != w || bufB.Height != h {
		bufB, err = raster.ResizeExact(bufB, w, h, raster.Triangle)
		if err != nil {
			return SimpleDiffResult{}, err
		}
	}

	diffBuf, count, points, err := diff.Sharp(bufA, bufB, threshold)
	if err != nil {
		return SimpleDiffResult{}, err
	}
	markers := cluster.Reduce(toClusterPoints(points), cluster.SharpPreset)

	result := SimpleDiffResult{
		HasDiff:     count > 0,
		DiffCount:   count,
		Markers:     markers,
		ImageWidth:  w,
		ImageHeight: h,
	}
	if !full {
		return result, nil
	}

	srcA, srcB, diffImg, err := encodeTriple(ctx, bufA, bufB, diffBuf)
	if err != nil {
		return SimpleDiffResult{}, err
	}
	result.SrcA = srcA
	result.SrcB = srcB
	result.DiffImage = diffImg
	return result, nil
}

// decodePair opens two paths concurrently, both through the generic
// decoder with LPF dispatch wired in (either input may itself be an
// LPF file).
func decodePair(ctx context.Context, pathA, pathB string) (*raster.Buffer, *raster.Buffer, error) {
	g, _ := errgroup.WithContext(ctx)

	var bufA, bufB *raster.Buffer
	g.Go(func() error {
		var err error
		bufA, err = raster.Open(pathA, lpf.Decode)
		return err
	})
	g.Go(func() error {
		var err error
		bufB, err = raster.Open(pathB, lpf.Decode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return bufA, bufB, nil
}

// encodeTriple PNG-encodes three buffers concurrently.
func encodeTriple(ctx context.Context, a, b, c *raster.Buffer) (string, string, string, error) {
	g, _ := errgroup.WithContext(ctx)

	var urlA, urlB, urlC string
	g.Go(func() error {
		var err error
		urlA, err = dataurl.EncodePNG(a)
		return err
	})
	g.Go(func() error {
		var err error
		urlB, err = dataurl.EncodePNG(b)
		return err
	})
	g.Go(func() error {
		var err error
		urlC, err = dataurl.EncodePNG(c)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", "", err
	}
	return urlA, urlB, urlC, nil
}

func toClusterPoints(points []diff.Point) []cluster.Point {
	out := make([]cluster.Point, len(points))
	for i, p := range points {
		out[i] = cluster.Point{X: p.X, Y: p.Y}
	}
	return out
}
