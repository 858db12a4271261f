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
package lpf

import (
	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/proofcheck/proofcheck/internal/xerrors"
	"github.com/proofcheck/proofcheck/pkg/binreader"
	"github.com/proofcheck/proofcheck/pkg/packbits"
)

const (
	compressionRaw = 0
	compressionRLE = 1
)

// DecodeFallback parses an LPF file from scratch: header, color-mode
// data, image resources, layer-and-mask section (all skipped), then the
// flattened composite in the image-data section. It never panics; every
// truncation or unsupported field surfaces as an error.
func DecodeFallback(data []byte) (*raster.Buffer, error) {
	r := binreader.New(data)

	hdr, err := parseHeader(r)
	if err != nil {
		return nil, err
	}
	if err := requireUsableChannels(hdr); err != nil {
		return nil, err
	}

	if err := skipLengthPrefixedSection(r); err != nil { // color-mode data
		return nil, err
	}
	if err := skipLengthPrefixedSection(r); err != nil { // image resources
		return nil, err
	}
	if err := skipLayerAndMaskSection(r, hdr.Version == versionLarge); err != nil {
		return nil, err
	}

	compression, err := r.Uint16()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read image-data compression")
	}

	width := int(hdr.Width)
	height := int(hdr.Height)
	numWanted := 3
	if hdr.ColorMode == colorModeCMYK {
		numWanted = 4
	}
	if int(hdr.Channels) < numWanted {
		numWanted = int(hdr.Channels)
	}

	planes := make([][]byte, numWanted)
	planeLen := width * height

	switch compression {
	case compressionRaw:
		planes, err = decodeRawPlanes(r, int(hdr.Channels), numWanted, planeLen)
	case compressionRLE:
		planes, err = decodeRLEPlanes(r, int(hdr.Channels), numWanted, width, height)
	default:
		return nil, xerrors.Newf(xerrors.Format, "unsupported LPF compression %d", compression)
	}
	if err != nil {
		return nil, err
	}

	return compose(hdr, width, height, planes)
}

// requireUsableChannels rejects header-valid but semantically broken
// channel counts before any plane is read, so a malformed file surfaces
// as a Format error instead of an out-of-range index later in compose.
func requireUsableChannels(hdr *header) error {
	if hdr.Channels < 1 {
		return xerrors.Newf(xerrors.Format, "LPF header declares %d channels, need at least 1", hdr.Channels)
	}
	if hdr.ColorMode == colorModeCMYK && hdr.Channels < 3 {
		return xerrors.Newf(xerrors.Format, "CMYK LPF header declares %d channels, need at least 3", hdr.Channels)
	}
	return nil
}

func decodeRawPlanes(r *binreader.Reader, totalChannels, numWanted, planeLen int) ([][]byte, error) {
	planes := make([][]byte, numWanted)
	for ch := 0; ch < totalChannels; ch++ {
		if ch < numWanted {
			b, err := r.Bytes(planeLen)
			if err != nil {
				return nil, xerrors.Wrapf(xerrors.Format, err, "read raw channel %d", ch)
			}
			plane := make([]byte, planeLen)
			copy(plane, b)
			planes[ch] = plane
		} else {
			if err := r.Skip(planeLen); err != nil {
				return nil, xerrors.Wrapf(xerrors.Format, err, "skip raw channel %d", ch)
			}
		}
	}
	return planes, nil
}

func decodeRLEPlanes(r *binreader.Reader, totalChannels, numWanted, width, height int) ([][]byte, error) {
	scanlineCounts := make([][]uint16, totalChannels)
	for ch := 0; ch < totalChannels; ch++ {
		counts := make([]uint16, height)
		for row := 0; row < height; row++ {
			c, err := r.Uint16()
			if err != nil {
				return nil, xerrors.Wrapf(xerrors.Format, err, "read RLE scanline length (channel %d, row %d)", ch, row)
			}
			counts[row] = c
		}
		scanlineCounts[ch] = counts
	}

	planes := make([][]byte, numWanted)
	for ch := 0; ch < totalChannels; ch++ {
		want := ch < numWanted
		var plane []byte
		if want {
			plane = make([]byte, width*height)
		}

		for row := 0; row < height; row++ {
			n := int(scanlineCounts[ch][row])
			src, err := r.Bytes(n)
			if err != nil {
				return nil, xerrors.Wrapf(xerrors.Format, err, "read RLE scanline bytes (channel %d, row %d)", ch, row)
			}
			if want {
				packbits.Decode(src, 0, n, plane, row*width, width)
			}
		}

		if want {
			planes[ch] = plane
		}
	}
	return planes, nil
}

func compose(hdr *header, width, height int, planes [][]byte) (*raster.Buffer, error) {
	out := raster.New(width, height)

	if hdr.ColorMode == colorModeCMYK {
		c, m, y := planes[0], planes[1], planes[2]
		var k []byte
		if len(planes) > 3 && planes[3] != nil {
			k = planes[3]
		}
		for i := 0; i < width*height; i++ {
			var kv byte
			if k != nil {
				kv = k[i]
			}
			r, g, b := cmykToRGB(c[i], m[i], y[i], kv)
			out.Pix[4*i], out.Pix[4*i+1], out.Pix[4*i+2], out.Pix[4*i+3] = r, g, b, 255
		}
		return out, nil
	}

	p0 := planes[0]
	p1 := p0
	p2 := p0
	if len(planes) > 1 && planes[1] != nil {
		p1 = planes[1]
	}
	if len(planes) > 2 && planes[2] != nil {
		p2 = planes[2]
	}
	for i := 0; i < width*height; i++ {
		out.Pix[4*i], out.Pix[4*i+1], out.Pix[4*i+2], out.Pix[4*i+3] = p0[i], p1[i], p2[i], 255
	}
	return out, nil
}
