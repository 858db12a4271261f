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
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"sync"

	"github.com/proofcheck/proofcheck/internal/dataurl"
	"github.com/proofcheck/proofcheck/internal/lpf"
	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/proofcheck/proofcheck/internal/xerrors"
	"github.com/proofcheck/proofcheck/pkg/imagecache"
	"golang.org/x/sync/errgroup"
)

// ParseLPF decodes path as an LPF document and returns its flattened
// composite as a full-fidelity PNG data URL.
func ParseLPF(path string) (ParseLPFResult, error) {
	buf, err := openLPF(path)
	if err != nil {
		return ParseLPFResult{}, err
	}
	url, err := dataurl.EncodePNG(buf)
	if err != nil {
		return ParseLPFResult{}, err
	}
	return ParseLPFResult{DataURL: url, Width: buf.Width, Height: buf.Height}, nil
}

// ParseLPFPreview decodes path as an LPF document and returns a
// JPEG-preview data URL scaled down to maxWidth, preserving aspect
// ratio and never enlarging.
func ParseLPFPreview(path string, maxWidth int) (ParseLPFResult, error) {
	buf, err := openLPF(path)
	if err != nil {
		return ParseLPFResult{}, err
	}
	fit, err := raster.ResizeToFit(buf, maxWidth, buf.Height)
	if err != nil {
		return ParseLPFResult{}, err
	}
	url, err := dataurl.EncodeJPEGPreview(fit)
	if err != nil {
		return ParseLPFResult{}, err
	}
	return ParseLPFResult{DataURL: url, Width: fit.Width, Height: fit.Height}, nil
}

func openLPF(path string) (*raster.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Wrapf(xerrors.IO, err, "read %s", path)
	}
	return lpf.Decode(data)
}

// DecodeAndResizeImage is the interactive resize operation backing
// the cache (§4.I). On a cache hit it re-encodes the cached bytes into
// a data URL and reports the source's true original dimensions,
// extended into the cache entry rather than repeating the resized
// ones. On a miss it decodes, resize-to-fits, PNG-encodes, inserts,
// and returns.
func DecodeAndResizeImage(cache *imagecache.Cache, path string, maxW, maxH int) (ResizeResult, error) {
	return decodeAndResizeImage(cache, path, maxW, maxH, raster.Open)
}

// DecodeAndResizeImageMmap is the same operation, but reads the
// source file through a memory mapping rather than copying it onto
// the heap first — worthwhile for the hundred-megabyte-class TIFFs
// this engine's print-production inputs can reach.
func DecodeAndResizeImageMmap(cache *imagecache.Cache, path string, maxW, maxH int) (ResizeResult, error) {
	return decodeAndResizeImage(cache, path, maxW, maxH, raster.OpenMapped)
}

func decodeAndResizeImage(cache *imagecache.Cache, path string, maxW, maxH int, open func(string, raster.LPFDecoder) (*raster.Buffer, error)) (ResizeResult, error) {
	key := imagecache.Key(path, maxW, maxH)

	if entry, ok := cache.Lookup(key); ok {
		return ResizeResult{
			DataURL:    pngDataURL(entry.EncodedBytes),
			Width:      entry.Width,
			Height:     entry.Height,
			OrigWidth:  entry.OrigWidth,
			OrigHeight: entry.OrigHeight,
		}, nil
	}

	buf, err := open(path, lpf.Decode)
	if err != nil {
		return ResizeResult{}, err
	}
	origW, origH := buf.Width, buf.Height

	resized, err := raster.ResizeToFit(buf, maxW, maxH)
	if err != nil {
		return ResizeResult{}, err
	}

	var out bytes.Buffer
	if err := png.Encode(&out, resized.ToImage()); err != nil {
		return ResizeResult{}, xerrors.Wrap(xerrors.Encode, err, "encode resized PNG")
	}
	encoded := out.Bytes()

	cache.Insert(key, imagecache.Entry{
		EncodedBytes: encoded,
		Width:        resized.Width,
		Height:       resized.Height,
		OrigWidth:    origW,
		OrigHeight:   origH,
	})

	return ResizeResult{
		DataURL:    pngDataURL(encoded),
		Width:      resized.Width,
		Height:     resized.Height,
		OrigWidth:  origW,
		OrigHeight: origH,
	}, nil
}

// PreloadImages decodes and resizes every path not already cached
// under (maxW, maxH), concurrently and without holding the cache lock,
// then batch-inserts the results under a single lock acquisition. It
// returns one status string per path that was not already cached (paths
// already cached get no status), or a single "all cached" status if
// every key was already present.
func PreloadImages(ctx context.Context, cache *imagecache.Cache, paths []string, maxW, maxH int) ([]string, error) {
	type job struct {
		path string
		key  string
	}

	var pending []job
	for _, p := range paths {
		key := imagecache.Key(p, maxW, maxH)
		if _, ok := cache.Lookup(key); !ok {
			pending = append(pending, job{path: p, key: key})
		}
	}
	if len(pending) == 0 {
		return []string{"all cached"}, nil
	}

	statuses := make([]string, len(pending))
	entries := make(map[string]imagecache.Entry, len(pending))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for i, j := range pending {
		i, j := i, j
		g.Go(func() error {
			buf, err := raster.Open(j.path, lpf.Decode)
			if err != nil {
				statuses[i] = fmt.Sprintf("error:%s:%s", j.path, err.Error())
				return nil
			}
			origW, origH := buf.Width, buf.Height

			resized, err := raster.ResizeToFit(buf, maxW, maxH)
			if err != nil {
				statuses[i] = fmt.Sprintf("error:%s:%s", j.path, err.Error())
				return nil
			}

			var out bytes.Buffer
			if err := png.Encode(&out, resized.ToImage()); err != nil {
				statuses[i] = fmt.Sprintf("error:%s:%s", j.path, err.Error())
				return nil
			}

			mu.Lock()
			entries[j.key] = imagecache.Entry{
				EncodedBytes: out.Bytes(),
				Width:        resized.Width,
				Height:       resized.Height,
				OrigWidth:    origW,
				OrigHeight:   origH,
			}
			mu.Unlock()

			statuses[i] = fmt.Sprintf("loaded:%s", j.path)
			return nil
		})
	}
	_ = g.Wait()

	cache.InsertBatch(entries)
	return statuses, nil
}

// ClearImageCache empties cache.
func ClearImageCache(cache *imagecache.Cache) {
	cache.Clear()
}

func pngDataURL(encoded []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded)
}
