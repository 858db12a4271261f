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

// Package lpf decodes the layered picture format (LPF): a big-endian,
// signature "8BPS" layered image document. It never models the layer
// tree — only the flattened composite is decoded.
package lpf

import (
	"github.com/proofcheck/proofcheck/internal/xerrors"
	"github.com/proofcheck/proofcheck/pkg/binreader"
)

const signature = "8BPS"

const (
	versionStandard = 1
	versionLarge    = 2
)

const colorModeCMYK = 4

// header holds the fixed-size LPF file header (signature checked
// separately; version carried alongside since it changes the width of
// the later section-length prefixes).
type header struct {
	Version    uint16
	Channels   uint16
	Height     uint32
	Width      uint32
	Depth      uint16
	ColorMode  uint16
}

func parseHeader(r *binreader.Reader) (*header, error) {
	sig, err := r.Bytes(4)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF signature")
	}
	if string(sig) != signature {
		return nil, xerrors.New(xerrors.Format, "Not an LPF file")
	}

	version, err := r.Uint16()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF version")
	}
	if version != versionStandard && version != versionLarge {
		return nil, xerrors.Newf(xerrors.Format, "unsupported LPF version %d", version)
	}

	if err := r.Skip(6); err != nil { // reserved
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF reserved header bytes")
	}

	channels, err := r.Uint16()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF channel count")
	}
	height, err := r.Uint32()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF height")
	}
	width, err := r.Uint32()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF width")
	}
	depth, err := r.Uint16()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF depth")
	}
	if depth != 8 {
		return nil, xerrors.Newf(xerrors.Format, "unsupported LPF bit depth %d", depth)
	}
	colorMode, err := r.Uint16()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Format, err, "read LPF color mode")
	}

	return &header{
		Version:   version,
		Channels:  channels,
		Height:    height,
		Width:     width,
		Depth:     depth,
		ColorMode: colorMode,
	}, nil
}

// skipLengthPrefixedSection skips a section prefixed by a u32 length.
func skipLengthPrefixedSection(r *binreader.Reader) error {
	n, err := r.Uint32()
	if err != nil {
		return xerrors.Wrap(xerrors.Format, err, "read section length")
	}
	if err := r.Skip(int(n)); err != nil {
		return xerrors.Wrap(xerrors.Format, err, "skip section body")
	}
	return nil
}

// skipLayerAndMaskSection skips the layer-and-mask-information section,
// whose length prefix is u64 in the large-file variant and u32 otherwise.
func skipLayerAndMaskSection(r *binreader.Reader, large bool) error {
	var n uint64
	if large {
		v, err := r.Uint64()
		if err != nil {
			return xerrors.Wrap(xerrors.Format, err, "read large layer/mask section length")
		}
		n = v
	} else {
		v, err := r.Uint32()
		if err != nil {
			return xerrors.Wrap(xerrors.Format, err, "read layer/mask section length")
		}
		n = uint64(v)
	}
	if err := r.Skip(int(n)); err != nil {
		return xerrors.Wrap(xerrors.Format, err, "skip layer/mask section body")
	}
	return nil
}
