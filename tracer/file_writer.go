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
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// NewFileWriter creates a new FileWriter that writes to a compressed file using a buffer.
// Files ending in .zst are zstd-compressed, everything else is gzip-compressed.
func NewFileWriter(filename string) (FileWriter, error) {
	_, err := os.Stat(filename)
	if err == nil {
		return nil, errors.Newf("file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	var compressor io.WriteCloser
	if strings.HasSuffix(filename, ".zst") {
		compressor, err = zstd.NewWriter(file)
		if err != nil {
			return nil, errors.Join(errors.Wrap(err, "cannot create zstd writer"), file.Close())
		}
	} else {
		compressor = gzip.NewWriter(file)
	}
	return &fileWriter{
		buffer:  bufio.NewWriter(compressor),
		closers: []io.Closer{compressor, file},
	}, nil
}

//go:generate mockgen -source file_writer.go -destination file_writer_mock.go -package tracer

type FileWriter interface {
	// WriteData writes a byte slice of any size to the file.
	WriteData(data []byte) error
	// WriteUint8 writes a single byte (uint8) to the file.
	WriteUint8(idx uint8) error
	// WriteUint16 writes a big-endian encoded uint16 value to the file.
	WriteUint16(data uint16) error
	// WriteUint64 writes a big-endian encoded uint64 value to the file.
	WriteUint64(data uint64) error
	// WriteUvarint writes an unsigned LEB128 varint to the file.
	WriteUvarint(data uint64) error
	Close() error
}

// Flusher is implemented by buffers which need to be flushed before closing.
type Flusher interface {
	Flush() error
}

// WriteBuffer is a wrapper around necessary interfaces for writing data to a file for mocking purposes.
type WriteBuffer interface {
	io.Writer
	io.ByteWriter
	Flusher
}

type fileWriter struct {
	buffer  WriteBuffer
	closers []io.Closer
}

func (f *fileWriter) WriteData(data []byte) error {
	_, err := f.buffer.Write(data)
	if err != nil {
		return errors.Wrap(err, "error writing []byte to buffer")
	}
	return nil
}

func (f *fileWriter) WriteUint8(idx uint8) error {
	err := f.buffer.WriteByte(idx)
	if err != nil {
		return errors.Wrap(err, "error writing uint8 to buffer")
	}
	return nil
}

func (f *fileWriter) WriteUint16(data uint16) error {
	_, err := f.buffer.Write(bigendian.Uint16ToBytes(data))
	if err != nil {
		return errors.Wrap(err, "error writing uint16 to buffer")
	}
	return nil
}

func (f *fileWriter) WriteUint64(data uint64) error {
	_, err := f.buffer.Write(bigendian.Uint64ToBytes(data))
	if err != nil {
		return errors.Wrap(err, "error writing uint64 to buffer")
	}
	return nil
}

func (f *fileWriter) WriteUvarint(data uint64) error {
	_, err := f.buffer.Write(binary.AppendUvarint(nil, data))
	if err != nil {
		return errors.Wrap(err, "error writing uvarint to buffer")
	}
	return nil
}

func (f *fileWriter) Close() error {
	// Flush the buffer to ensure all data reaches the compressor,
	// then close the compressor and the file
	errs := []error{f.buffer.Flush()}
	for _, c := range f.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
