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

// Package pipeline wires the decoder, diff kernels, cluster reducer,
// cache, and encoding boundary into the handful of operations the host
// shell actually calls: parse a layered document, diff a pair of
// images two different ways, and manage the resize cache.
package pipeline

import "github.com/proofcheck/proofcheck/internal/cluster"

// CropBounds is an axis-aligned, inclusive-left/top, exclusive-right/bottom
// rectangle used to align an LPF crop against a flattened raster for the
// heatmap pipeline.
type CropBounds struct {
	Left, Top, Right, Bottom int
}

// Marker mirrors cluster.Marker; it is re-exported here so pipeline
// callers never need to import internal/cluster directly.
type Marker = cluster.Marker

// SimpleDiffResult is the sharp-diff pipeline's output. The image
// fields are populated only by the "full" variant.
type SimpleDiffResult struct {
	HasDiff      bool
	DiffCount    int
	Markers      []Marker
	ImageWidth   int
	ImageHeight  int
	SrcA         string
	SrcB         string
	DiffImage    string
}

// HeatmapDiffResult is the density-weighted pipeline's output. The
// image fields are populated only by the "full" variant.
type HeatmapDiffResult struct {
	HasDiff          bool
	DiffProbability  float64
	HighDensityCount int
	Markers          []Marker
	ImageWidth       int
	ImageHeight      int
	SrcA             string
	SrcB             string
	ProcessedA       string
	DiffImage        string
}

// ParseLPFResult is parse_lpf's output: the flattened composite as a
// full-fidelity PNG data URL plus its native dimensions.
type ParseLPFResult struct {
	DataURL string
	Width   int
	Height  int
}

// ResizeResult is decode_and_resize_image's output. OrigWidth/OrigHeight
// are the source's native dimensions, reported correctly on both a
// cache hit and a cache miss (see the cache-entry extension in the
// package's accompanying design notes).
type ResizeResult struct {
	DataURL     string
	Width       int
	Height      int
	OrigWidth   int
	OrigHeight  int
}
