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
	"fmt"
	"os"
	"syscall"

	"github.com/proofcheck/proofcheck/internal/xerrors"
)

// mappedFile is a read-only memory mapping of an entire source file.
// Print-production TIFFs can run into the hundreds of megabytes;
// mapping avoids a separate heap copy of the raw bytes before decode.
type mappedFile struct {
	data []byte
	file *os.File
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	size := int(fi.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("file %q is empty, cannot map", path)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %q: %w", path, err)
	}

	return &mappedFile{data: data, file: f}, nil
}

func (m *mappedFile) Close() error {
	var err error
	if m.data != nil {
		err = syscall.Munmap(m.data)
		m.data = nil
	}
	if m.file != nil {
		if cerr := m.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		m.file = nil
	}
	return err
}

// OpenMapped decodes path the same way Open does, but reads the file
// through a memory mapping instead of copying it onto the heap first.
// Decoders that retain slices of the input after returning must copy
// them, since the mapping is unmapped before OpenMapped returns.
func OpenMapped(path string, decodeLPF LPFDecoder) (*Buffer, error) {
	m, err := openMapped(path)
	if err != nil {
		return nil, xerrors.Wrapf(xerrors.IO, err, "mmap %s", path)
	}
	defer m.Close()

	if isLPFPath(path) {
		return decodeLPF(m.data)
	}
	return Decode(m.data)
}
