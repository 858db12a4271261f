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
	"math"

	"github.com/proofcheck/proofcheck/internal/cluster"
	"github.com/proofcheck/proofcheck/internal/dataurl"
	"github.com/proofcheck/proofcheck/internal/diff"
	"github.com/proofcheck/proofcheck/internal/lpf"
	"github.com/proofcheck/proofcheck/internal/raster"
	"golang.org/x/sync/errgroup"
)

// ComputeDiffHeatmap runs the full density-weighted pipeline: decode
// the LPF source and the flattened raster concurrently, crop and
// realign the LPF side onto the raster's geometry, diff, cluster, and
// encode every image field.
func ComputeDiffHeatmap(ctx context.Context, lpfPath, rasterPath string, crop CropBounds, threshold int) (HeatmapDiffResult, error) {
	return heatmapDiff(ctx, lpfPath, rasterPath, crop, threshold, true)
}

// CheckDiffHeatmap runs the same pipeline but skips all encoding.
func CheckDiffHeatmap(ctx context.Context, lpfPath, rasterPath string, crop CropBounds, threshold int) (HeatmapDiffResult, error) {
	return heatmapDiff(ctx, lpfPath, rasterPath, crop, threshold, false)
}

func heatmapDiff(ctx context.Context, lpfPath, rasterPath string, crop CropBounds, threshold int, full bool) (HeatmapDiffResult, error) {
	lpfBuf, rasterBuf, err := decodeHeatmapPair(ctx, lpfPath, rasterPath)
	if err != nil {
		return HeatmapDiffResult{}, err
	}

	cropped, err := raster.Crop(lpfBuf, crop.Left, crop.Top, crop.Right, crop.Bottom)
	if err != nil {
		return HeatmapDiffResult{}, err
	}

	processed, err := raster.ResizeExact(cropped, rasterBuf.Width, rasterBuf.Height, raster.Nearest)
	if err != nil {
		return HeatmapDiffResult{}, err
	}

	heatBuf, highCount, points, err := diff.Heatmap(processed, rasterBuf, threshold)
	if err != nil {
		return HeatmapDiffResult{}, err
	}
	markers := cluster.Reduce(toClusterPoints(points), cluster.HeatmapPreset)

	w, h := rasterBuf.Width, rasterBuf.Height
	result := HeatmapDiffResult{
		HasDiff:          highCount > 0,
		DiffProbability:  diffProbability(highCount, w, h),
		HighDensityCount: highCount,
		Markers:          markers,
		ImageWidth:       w,
		ImageHeight:      h,
	}
	if !full {
		return result, nil
	}

	urls, err := encodeHeatmapSet(ctx, lpfBuf, rasterBuf, processed, heatBuf)
	if err != nil {
		return HeatmapDiffResult{}, err
	}
	result.SrcA = urls[0]
	result.SrcB = urls[1]
	result.ProcessedA = urls[2]
	result.DiffImage = urls[3]
	return result, nil
}

// diffProbability implements §4.H's formula: 0.0 exactly when there are
// no high-density hits, otherwise 70 plus up to 30 more scaled by hit
// density, rounded to one decimal.
func diffProbability(highCount, w, h int) float64 {
	if highCount == 0 {
		return 0.0
	}
	scaled := float64(highCount) / float64(w*h) * 50000
	if scaled > 30 {
		scaled = 30
	}
	return math.Round((70+scaled)*10) / 10
}

func decodeHeatmapPair(ctx context.Context, lpfPath, rasterPath string) (*raster.Buffer, *raster.Buffer, error) {
	g, _ := errgroup.WithContext(ctx)

	var lpfBuf, rasterBuf *raster.Buffer
	g.Go(func() error {
		var err error
		lpfBuf, err = openLPF(lpfPath)
		return err
	})
	g.Go(func() error {
		var err error
		rasterBuf, err = raster.Open(rasterPath, lpf.Decode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return lpfBuf, rasterBuf, nil
}

func encodeHeatmapSet(ctx context.Context, lpfBuf, rasterBuf, processed, heatBuf *raster.Buffer) ([4]string, error) {
	g, _ := errgroup.WithContext(ctx)
	var urls [4]string

	bufs := [4]*raster.Buffer{lpfBuf, rasterBuf, processed, heatBuf}
	for i := range bufs {
		i := i
		g.Go(func() error {
			url, err := dataurl.EncodePNG(bufs[i])
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return [4]string{}, err
	}
	return urls, nil
}
