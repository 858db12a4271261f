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
	"bytes"
	"fmt"

	"github.com/oov/psd"
	"github.com/proofcheck/proofcheck/internal/raster"
	"github.com/proofcheck/proofcheck/internal/xerrors"
)

// Decode is the facade (§4.D): it tries the rich oov/psd decoder first,
// since it understands layer blending and modern compression variants
// raw/RLE parsing here does not. That decoder is known to panic on
// certain malformed or exotically compressed inputs, so its abort is
// recovered here and the same bytes are retried against DecodeFallback.
// Any error out of the fallback itself propagates; this is the only
// recover() site in the module.
func Decode(data []byte) (buf *raster.Buffer, err error) {
	buf, richErr := decodeRich(data)
	if richErr == nil {
		return buf, nil
	}
	return DecodeFallback(data)
}

func decodeRich(data []byte) (buf *raster.Buffer, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			buf = nil
			err = xerrors.Newf(xerrors.Decode, "rich LPF decoder aborted: %v", rec)
		}
	}()

	doc, decErr := psd.Decode(bytes.NewReader(data), nil)
	if decErr != nil {
		return nil, xerrors.Wrap(xerrors.Decode, decErr, "rich LPF decode")
	}
	if doc == nil || doc.Picker == nil {
		return nil, fmt.Errorf("rich LPF decoder returned no composite")
	}
	return raster.FromImage(doc.Picker), nil
}
