package raster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func solid(w, h int, r, g, b, a uint8) *Buffer {
	buf := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, r, g, b, a)
		}
	}
	return buf
}

func TestBufferAtSet(t *testing.T) {
	buf := New(2, 2)
	buf.Set(1, 0, 10, 20, 30, 40)
	r, g, b, a := buf.At(1, 0)
	require.Equal(t, uint8(10), r)
	require.Equal(t, uint8(20), g)
	require.Equal(t, uint8(30), b)
	require.Equal(t, uint8(40), a)
}

func TestFromPixLengthMismatch(t *testing.T) {
	_, err := FromPix(make([]byte, 10), 2, 2)
	require.Error(t, err)
}

func TestResizeToFitNeverEnlarges(t *testing.T) {
	buf := solid(10, 10, 255, 0, 0, 255)
	out, err := ResizeToFit(buf, 100, 100)
	require.NoError(t, err)
	require.Equal(t, 10, out.Width)
	require.Equal(t, 10, out.Height)
}

func TestResizeToFitPreservesAspect(t *testing.T) {
	buf := solid(200, 100, 255, 0, 0, 255)
	out, err := ResizeToFit(buf, 50, 50)
	require.NoError(t, err)
	require.LessOrEqual(t, out.Width, 50)
	require.LessOrEqual(t, out.Height, 50)
	require.Equal(t, 50, out.Width)
	require.Equal(t, 25, out.Height)
}

func TestResizeExact(t *testing.T) {
	buf := solid(10, 10, 1, 2, 3, 255)
	out, err := ResizeExact(buf, 4, 6, Nearest)
	require.NoError(t, err)
	require.Equal(t, 4, out.Width)
	require.Equal(t, 6, out.Height)
}

func TestCrop(t *testing.T) {
	buf := New(4, 4)
	buf.Set(2, 1, 9, 9, 9, 255)

	out, err := Crop(buf, 1, 1, 3, 3)
	require.NoError(t, err)
	require.Equal(t, 2, out.Width)
	require.Equal(t, 2, out.Height)
	r, _, _, _ := out.At(1, 0)
	require.Equal(t, uint8(9), r)
}

func TestCropInvalidBounds(t *testing.T) {
	buf := New(4, 4)
	_, err := Crop(buf, 2, 0, 1, 4)
	require.Error(t, err)

	_, err = Crop(buf, 0, 0, 5, 4)
	require.Error(t, err)
}
