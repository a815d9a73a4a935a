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

import "github.com/cockroachdb/errors"

// Entry is a branch together with the data the decoder derives from the
// encoding: its recorded outcome and the number of preceding non-branch
// instructions.
type Entry struct {
	Record BranchRecord
	Taken  bool
	Gap    uint64
}

// Encoder writes branch records in the trace format read by Decoder.
type Encoder struct {
	file    FileWriter
	written uint64
}

// NewEncoder writes the header to file and returns an encoder appending records to it.
func NewEncoder(file FileWriter, header Header) (*Encoder, error) {
	if err := writeHeader(file, header); err != nil {
		return nil, errors.Wrap(err, "cannot write trace header")
	}
	return &Encoder{file: file}, nil
}

// Write appends one record. Index and Instructions of rec are ignored, they
// are derived by the decoder.
func (e *Encoder) Write(rec BranchRecord, taken bool, gap uint64) error {
	flags := rec.Flags()
	if taken {
		flags |= TakenFlag
	}
	if err := e.file.WriteUvarint(gap); err != nil {
		return errors.Wrapf(err, "cannot write record %d", e.written)
	}
	if err := e.file.WriteUint8(flags); err != nil {
		return errors.Wrapf(err, "cannot write record %d", e.written)
	}
	if err := e.file.WriteUint64(rec.InstructionAddress); err != nil {
		return errors.Wrapf(err, "cannot write record %d", e.written)
	}
	if rec.HasTarget {
		if err := e.file.WriteUint64(rec.Target); err != nil {
			return errors.Wrapf(err, "cannot write record %d", e.written)
		}
	}
	e.written++
	return nil
}

// Written returns the number of records written so far.
func (e *Encoder) Written() uint64 {
	return e.written
}

func (e *Encoder) Close() error {
	return e.file.Close()
}

// WriteTrace creates a new trace file holding the given entries.
func WriteTrace(filename string, header Header, entries []Entry) (err error) {
	file, err := NewFileWriter(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	encoder, err := NewEncoder(file, header)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err = encoder.Write(entry.Record, entry.Taken, entry.Gap); err != nil {
			return err
		}
	}
	return nil
}
