package dataurl

import (
	"strings"
	"testing"

	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	buf := raster.New(2, 2)
	buf.Set(0, 0, 255, 0, 0, 255)

	url, err := EncodePNG(buf)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, pngPrefix))

	raw, err := Decode(url)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	// PNG signature
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])
}

func TestEncodeJPEGPreview(t *testing.T) {
	buf := raster.New(4, 4)
	url, err := EncodeJPEGPreview(buf)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, jpegPrefix))
}

func TestDecodeWithoutPrefix(t *testing.T) {
	raw, err := Decode("aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "hello", string(raw))
}

func TestDecodeInvalidBase64(t *testing.T) {
	_, err := Decode("data:image/png;base64,not-valid-base64!!")
	require.Error(t, err)
}
