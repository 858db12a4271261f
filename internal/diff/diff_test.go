package diff

import (
	"testing"

	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, r, g, b, a uint8) *raster.Buffer {
	buf := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, r, g, b, a)
		}
	}
	return buf
}

func TestSharpIdenticalImages(t *testing.T) {
	a := solid(2, 2, 255, 0, 0, 255)
	b := solid(2, 2, 255, 0, 0, 255)

	out, count, pts, err := Sharp(a, b, 10)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Empty(t, pts)
	for i := 0; i < len(out.Pix); i += 4 {
		require.Equal(t, []byte{0, 0, 0, 255}, out.Pix[i:i+4])
	}
}

func TestSharpSinglePixelChange(t *testing.T) {
	a := solid(2, 2, 255, 255, 255, 255)
	b := solid(2, 2, 255, 255, 255, 255)
	b.Set(1, 0, 0, 0, 0, 255)

	out, count, pts, err := Sharp(a, b, 10)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Len(t, pts, 1)
	require.Equal(t, Point{X: 1, Y: 0}, pts[0])

	r, g, bl, al := out.At(1, 0)
	require.Equal(t, [4]uint8{255, 0, 0, 255}, [4]uint8{r, g, bl, al})
	r, g, bl, al = out.At(0, 0)
	require.Equal(t, [4]uint8{0, 0, 0, 255}, [4]uint8{r, g, bl, al})
}

func TestSharpSubThresholdNoise(t *testing.T) {
	a := solid(10, 10, 128, 128, 128, 255)
	b := raster.New(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			b.Set(x, y, 133, 128, 128, 255)
		}
	}

	_, count, _, err := Sharp(a, b, 10)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestSharpCommutative(t *testing.T) {
	a := solid(3, 3, 10, 20, 30, 255)
	b := solid(3, 3, 200, 20, 30, 255)

	_, countAB, _, err := Sharp(a, b, 5)
	require.NoError(t, err)
	_, countBA, _, err := Sharp(b, a, 5)
	require.NoError(t, err)
	require.Equal(t, countAB, countBA)
}

func TestSharpThresholdMonotonic(t *testing.T) {
	a := solid(20, 20, 0, 0, 0, 255)
	b := solid(20, 20, 100, 0, 0, 255)

	_, lowCount, _, err := Sharp(a, b, 10)
	require.NoError(t, err)
	_, highCount, _, err := Sharp(a, b, 200)
	require.NoError(t, err)
	require.GreaterOrEqual(t, lowCount, highCount)
}

func TestSharpDimensionMismatch(t *testing.T) {
	a := raster.New(2, 2)
	b := raster.New(3, 3)
	_, _, _, err := Sharp(a, b, 10)
	require.Error(t, err)
}

func TestHeatmapAllSameNoDiff(t *testing.T) {
	a := solid(40, 40, 10, 10, 10, 255)
	b := solid(40, 40, 10, 10, 10, 255)

	_, highCount, pts, err := Heatmap(a, b, 10)
	require.NoError(t, err)
	require.Equal(t, 0, highCount)
	require.Empty(t, pts)
}

func TestHeatmapBrightSquareProducesHighDensity(t *testing.T) {
	w, h := 200, 200
	a := solid(w, h, 0, 0, 0, 255)
	b := solid(w, h, 0, 0, 0, 255)
	for y := 75; y < 125; y++ {
		for x := 75; x < 125; x++ {
			b.Set(x, y, 255, 255, 255, 255)
		}
	}

	_, highCount, pts, err := Heatmap(a, b, 10)
	require.NoError(t, err)
	require.Greater(t, highCount, 0)
	require.Len(t, pts, highCount)
}
