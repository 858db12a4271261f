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

// Package dataurl is the encoding boundary (§4.J): it turns flattened
// RGBA buffers into self-contained "data:image/..." URLs, and parses
// them back into raw bytes. The pipeline's resize cache also prefixes
// its already-encoded PNG bytes directly (internal/pipeline/cache.go).
package dataurl

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/proofcheck/proofcheck/internal/xerrors"
)

const (
	pngPrefix  = "data:image/png;base64,"
	jpegPrefix = "data:image/jpeg;base64,"
)

// EncodePNG produces a full-fidelity "data:image/png;base64,..." URL.
func EncodePNG(buf *raster.Buffer) (string, error) {
	var out bytes.Buffer
	if err := png.Encode(&out, buf.ToImage()); err != nil {
		return "", xerrors.Wrap(xerrors.Encode, err, "encode PNG")
	}
	return pngPrefix + base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// EncodeJPEGPreview produces a "data:image/jpeg;base64,..." URL at
// quality 85, dropping alpha as JPEG has no alpha channel.
func EncodeJPEGPreview(buf *raster.Buffer) (string, error) {
	var out bytes.Buffer
	if err := jpeg.Encode(&out, buf.ToImage(), &jpeg.Options{Quality: 85}); err != nil {
		return "", xerrors.Wrap(xerrors.Encode, err, "encode JPEG preview")
	}
	return jpegPrefix + base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// Decode strips a leading data-URL header if present (for a string that
// starts with "data:", everything up to and including the first comma,
// e.g. "data:image/png;base64,") and base64-decodes the remainder.
func Decode(dataURL string) ([]byte, error) {
	payload := dataURL
	if idx := strings.Index(dataURL, ","); idx >= 0 && strings.HasPrefix(dataURL, "data:") {
		payload = dataURL[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Base64, err, "decode data URL")
	}
	return raw, nil
}
