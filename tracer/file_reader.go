// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package tracer

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// NewFileReader opens a trace file for reading. The content may be raw,
// gzip- or zstd-compressed; the compression is detected from the stream magic.
func NewFileReader(filename string) (FileReader, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat file: %s, does it exist?", filename)
	}
	if stat.IsDir() {
		return nil, errors.New("given path to trace file is a directory")
	}
	if stat.Size() == 0 {
		return nil, errors.New("given trace file is empty")
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open trace file: %s", filename)
	}
	stream, closer, err := openStream(bufio.NewReader(file))
	if err != nil {
		return nil, errors.Join(errors.Wrapf(err, "could not create decompressor for trace file: %s", filename), file.Close())
	}
	return &fileReader{
		reader:  bufio.NewReader(stream),
		closers: []io.Closer{closer, file},
	}, nil
}

// openStream wraps r into the decompressor matching its magic.
func openStream(r *bufio.Reader) (io.Reader, io.Closer, error) {
	// a short file yields fewer bytes together with io.EOF, which is fine here
	magic, _ := r.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, gz, nil
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		rc := zr.IOReadCloser()
		return rc, rc, nil
	default:
		return r, io.NopCloser(nil), nil
	}
}

//go:generate mockgen -source file_reader.go -destination file_reader_mock.go -package tracer

// FileReader reads the primitive fields of a trace and keeps track of the
// number of decompressed bytes consumed so far.
type FileReader interface {
	// ReadData reads a byte slice of given size from the file.
	ReadData(size int) ([]byte, error)
	// ReadUint8 reads a single byte (uint8) from the file.
	ReadUint8() (uint8, error)
	// ReadUint16 reads a big-endian encoded uint16 value from the file.
	ReadUint16() (uint16, error)
	// ReadUint64 reads a big-endian encoded uint64 value from the file.
	ReadUint64() (uint64, error)
	// ReadUvarint reads an unsigned LEB128 varint. It returns io.EOF only
	// if no byte could be read at all.
	ReadUvarint() (uint64, error)
	// Offset returns the number of decompressed bytes consumed so far.
	Offset() uint64
	Close() error
}

// ReadBuffer is a wrapper around necessary interfaces for reading data from a file for mocking purposes.
type ReadBuffer interface {
	io.Reader
	io.ByteReader
}

type fileReader struct {
	reader  ReadBuffer
	closers []io.Closer
	offset  uint64
}

func (f *fileReader) ReadData(size int) ([]byte, error) {
	data := make([]byte, size)
	n, err := io.ReadFull(f.reader, data)
	f.offset += uint64(n)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fileReader) ReadUint8() (uint8, error) {
	b, err := f.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	f.offset++
	return b, nil
}

// ReadByte makes fileReader an io.ByteReader for varint decoding.
func (f *fileReader) ReadByte() (byte, error) {
	return f.ReadUint8()
}

func (f *fileReader) ReadUint16() (uint16, error) {
	data, err := f.ReadData(2)
	if err != nil {
		return 0, err
	}
	return bigendian.BytesToUint16(data), nil
}

func (f *fileReader) ReadUint64() (uint64, error) {
	data, err := f.ReadData(8)
	if err != nil {
		return 0, err
	}
	return bigendian.BytesToUint64(data), nil
}

func (f *fileReader) ReadUvarint() (uint64, error) {
	return binary.ReadUvarint(f)
}

func (f *fileReader) Offset() uint64 {
	return f.offset
}

func (f *fileReader) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
