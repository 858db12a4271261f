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
package raster

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/tiff"
	"github.com/pkg/errors"
	"github.com/proofcheck/proofcheck/internal/xerrors"
)

// LPFDecoder decodes LPF (layered picture format) bytes into a flattened
// buffer. internal/lpf implements this; raster only depends on the
// interface to avoid an import cycle (lpf needs Buffer, not the other
// way around).
type LPFDecoder func(data []byte) (*Buffer, error)

// Open decodes a file path into a flattened RGBA buffer. A case-insensitive
// ".lpf" extension is routed through decodeLPF; everything else goes
// through the general decoder (PNG, JPEG, TIFF).
func Open(path string, decodeLPF LPFDecoder) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Wrapf(xerrors.IO, err, "read %s", path)
	}

	if isLPFPath(path) {
		return decodeLPF(data)
	}
	return Decode(data)
}

func isLPFPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lpf")
}

// Decode decodes PNG, JPEG, or TIFF bytes into a flattened RGBA buffer.
// PNG/JPEG go through the standard library (registered via blank import);
// anything else is tried against the richer TIFF reader, which carries
// tag support the stdlib's own tiff package lacks.
func Decode(data []byte) (*Buffer, error) {
	img, _, stdErr := image.Decode(bytes.NewReader(data))
	if stdErr == nil {
		return FromImage(img), nil
	}

	if tiffImg, tiffErr := tiff.Decode(bytes.NewReader(data)); tiffErr == nil {
		return FromImage(tiffImg), nil
	}

	return nil, xerrors.Wrap(xerrors.Decode, errors.WithStack(stdErr), "decode raster image")
}
