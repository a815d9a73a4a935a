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
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

// Header identifies a trace. It is written once at the beginning of the file.
type Header struct {
	Version uint8
	Name    string
}

func readHeader(file FileReader) (Header, error) {
	magic, err := file.ReadData(magicSize)
	if err != nil {
		return Header{}, headerReadError(err)
	}
	if string(magic) != TraceMagic {
		return Header{}, errors.Wrapf(ErrBadMagic, "got %q", magic)
	}
	version, err := file.ReadUint8()
	if err != nil {
		return Header{}, headerReadError(err)
	}
	if version != TraceVersion {
		return Header{}, errors.Wrapf(ErrUnsupportedVersion, "got %d, want %d", version, TraceVersion)
	}
	size, err := file.ReadUint16()
	if err != nil {
		return Header{}, headerReadError(err)
	}
	name, err := file.ReadData(int(size))
	if err != nil {
		return Header{}, headerReadError(err)
	}
	return Header{Version: version, Name: string(name)}, nil
}

func headerReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncatedHeader
	}
	return errors.Wrap(err, "cannot read trace header")
}

func writeHeader(file FileWriter, header Header) error {
	if len(header.Name) > math.MaxUint16 {
		return errors.Newf("trace name is too long: %d bytes", len(header.Name))
	}
	if err := file.WriteData([]byte(TraceMagic)); err != nil {
		return err
	}
	if err := file.WriteUint8(TraceVersion); err != nil {
		return err
	}
	if err := file.WriteUint16(uint16(len(header.Name))); err != nil {
		return err
	}
	return file.WriteData([]byte(header.Name))
}
