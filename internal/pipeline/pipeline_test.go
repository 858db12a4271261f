package pipeline

import (
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/proofcheck/proofcheck/pkg/imagecache"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int, fill func(x, y int) color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func solidColor(r, g, b, a uint8) func(x, y int) color.RGBA {
	return func(x, y int) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: a} }
}

// writeRawLPF builds a raw-compression (uncompressed), depth-8 RGB LPF
// file of the given size, with per-pixel color chosen by fill.
func writeRawLPF(t *testing.T, dir, name string, w, h int, fill func(x, y int) (r, g, b byte)) string {
	t.Helper()

	appendU16 := func(buf []byte, v uint16) []byte {
		tmp := make([]byte, 2)
		binary.BigEndian.PutUint16(tmp, v)
		return append(buf, tmp...)
	}
	appendU32 := func(buf []byte, v uint32) []byte {
		tmp := make([]byte, 4)
		binary.BigEndian.PutUint32(tmp, v)
		return append(buf, tmp...)
	}

	buf := make([]byte, 0, 64+3*w*h)
	buf = append(buf, []byte("8BPS")...)
	buf = appendU16(buf, 1)                // version: standard
	buf = append(buf, make([]byte, 6)...)  // reserved
	buf = appendU16(buf, 3)                // channels
	buf = appendU32(buf, uint32(h))        // height
	buf = appendU32(buf, uint32(w))        // width
	buf = appendU16(buf, 8)                // depth
	buf = appendU16(buf, 3)                // color mode: RGB
	buf = appendU32(buf, 0)                // color-mode data length
	buf = appendU32(buf, 0)                // image resources length
	buf = appendU32(buf, 0)                // layer/mask section length
	buf = appendU16(buf, 0)                // compression: raw

	plane := func(idx int) []byte {
		p := make([]byte, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b := fill(x, y)
				var v byte
				switch idx {
				case 0:
					v = r
				case 1:
					v = g
				case 2:
					v = b
				}
				p[y*w+x] = v
			}
		}
		return p
	}
	buf = append(buf, plane(0)...)
	buf = append(buf, plane(1)...)
	buf = append(buf, plane(2)...)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestComputeDiffSimpleIdentical(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 2, 2, solidColor(255, 0, 0, 255))
	b := writePNG(t, dir, "b.png", 2, 2, solidColor(255, 0, 0, 255))

	result, err := ComputeDiffSimple(context.Background(), a, b, 10)
	require.NoError(t, err)
	require.False(t, result.HasDiff)
	require.Equal(t, 0, result.DiffCount)
	require.Empty(t, result.Markers)
	require.NotEmpty(t, result.SrcA)
	require.NotEmpty(t, result.DiffImage)
}

func TestComputeDiffSimpleSinglePixelChange(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 2, 2, solidColor(255, 255, 255, 255))
	b := writePNG(t, dir, "b.png", 2, 2, func(x, y int) color.RGBA {
		if x == 1 && y == 0 {
			return color.RGBA{0, 0, 0, 255}
		}
		return color.RGBA{255, 255, 255, 255}
	})

	result, err := CheckDiffSimple(context.Background(), a, b, 10)
	require.NoError(t, err)
	require.True(t, result.HasDiff)
	require.Equal(t, 1, result.DiffCount)
	require.Len(t, result.Markers, 1)
	require.Equal(t, 1, result.Markers[0].Count)
	require.Empty(t, result.SrcA, "check variant must not encode images")
}

func TestComputeDiffSimpleSubThresholdNoise(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 10, 10, solidColor(128, 128, 128, 255))
	b := writePNG(t, dir, "b.png", 10, 10, solidColor(133, 128, 128, 255))

	result, err := CheckDiffSimple(context.Background(), a, b, 10)
	require.NoError(t, err)
	require.Equal(t, 0, result.DiffCount)
}

func TestComputeDiffSimpleMismatchedSizeNormalizes(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 2, 2, solidColor(10, 10, 10, 255))
	b := writePNG(t, dir, "b.png", 4, 4, solidColor(10, 10, 10, 255))

	result, err := CheckDiffSimple(context.Background(), a, b, 10)
	require.NoError(t, err)
	require.Equal(t, 4, result.ImageWidth)
	require.Equal(t, 4, result.ImageHeight)
}

func TestComputeDiffHeatmapBrightSquare(t *testing.T) {
	dir := t.TempDir()
	w, h := 200, 200

	rasterPath := writePNG(t, dir, "flat.png", w, h, solidColor(0, 0, 0, 255))
	lpfPath := writeRawLPF(t, dir, "src.lpf", w, h, func(x, y int) (byte, byte, byte) {
		if x >= 75 && x < 125 && y >= 75 && y < 125 {
			return 255, 255, 255
		}
		return 0, 0, 0
	})

	result, err := ComputeDiffHeatmap(context.Background(), lpfPath, rasterPath, CropBounds{0, 0, w, h}, 10)
	require.NoError(t, err)
	require.True(t, result.HasDiff)
	require.Greater(t, result.HighDensityCount, 0)
	require.GreaterOrEqual(t, result.DiffProbability, 70.0)
	require.LessOrEqual(t, result.DiffProbability, 100.0)
	require.Len(t, result.Markers, 1)
	require.NotEmpty(t, result.SrcA)
	require.NotEmpty(t, result.ProcessedA)
}

func TestComputeDiffHeatmapNoChange(t *testing.T) {
	dir := t.TempDir()
	w, h := 64, 64

	rasterPath := writePNG(t, dir, "flat.png", w, h, solidColor(20, 20, 20, 255))
	lpfPath := writeRawLPF(t, dir, "src.lpf", w, h, func(x, y int) (byte, byte, byte) {
		return 20, 20, 20
	})

	result, err := CheckDiffHeatmap(context.Background(), lpfPath, rasterPath, CropBounds{0, 0, w, h}, 10)
	require.NoError(t, err)
	require.False(t, result.HasDiff)
	require.Equal(t, 0.0, result.DiffProbability)
	require.Equal(t, 0, result.HighDensityCount)
}

func TestParseLPF(t *testing.T) {
	dir := t.TempDir()
	path := writeRawLPF(t, dir, "doc.lpf", 1, 1, func(x, y int) (byte, byte, byte) {
		return 0x11, 0x22, 0x33
	})

	result, err := ParseLPF(path)
	require.NoError(t, err)
	require.Equal(t, 1, result.Width)
	require.Equal(t, 1, result.Height)
	require.Contains(t, result.DataURL, "data:image/png;base64,")
}

func TestParseLPFPreview(t *testing.T) {
	dir := t.TempDir()
	path := writeRawLPF(t, dir, "doc.lpf", 100, 50, func(x, y int) (byte, byte, byte) {
		return 10, 20, 30
	})

	result, err := ParseLPFPreview(path, 50)
	require.NoError(t, err)
	require.LessOrEqual(t, result.Width, 50)
	require.Contains(t, result.DataURL, "data:image/jpeg;base64,")
}

func TestDecodeAndResizeImageCacheHitReturnsOriginalDims(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "a.png", 400, 200, solidColor(1, 2, 3, 255))

	cache := imagecache.New(4)

	first, err := DecodeAndResizeImage(cache, path, 100, 100)
	require.NoError(t, err)
	require.Equal(t, 400, first.OrigWidth)
	require.Equal(t, 200, first.OrigHeight)
	require.LessOrEqual(t, first.Width, 100)

	second, err := DecodeAndResizeImage(cache, path, 100, 100)
	require.NoError(t, err)
	require.Equal(t, first.Width, second.Width)
	require.Equal(t, 400, second.OrigWidth, "cache hit must report true original dimensions")
	require.Equal(t, 200, second.OrigHeight)
}

func TestPreloadImagesThenAllCached(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 10, 10, solidColor(1, 1, 1, 255))
	b := writePNG(t, dir, "b.png", 10, 10, solidColor(2, 2, 2, 255))

	cache := imagecache.New(4)

	statuses, err := PreloadImages(context.Background(), cache, []string{a, b}, 5, 5)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	require.Contains(t, statuses[0], "loaded:")

	statuses, err = PreloadImages(context.Background(), cache, []string{a, b}, 5, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"all cached"}, statuses)
}

func TestClearImageCache(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 10, 10, solidColor(1, 1, 1, 255))

	cache := imagecache.New(4)
	_, err := DecodeAndResizeImage(cache, a, 5, 5)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	ClearImageCache(cache)
	require.Equal(t, 0, cache.Len())
}
