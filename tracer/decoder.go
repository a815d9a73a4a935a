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

// ProtocolState is the state of the record/commit protocol of a Decoder.
type ProtocolState uint8

const (
	AwaitingRecord ProtocolState = iota // no record is open
	AwaitingCommit                      // a record was delivered, its prediction is pending
)

func (s ProtocolState) String() string {
	switch s {
	case AwaitingRecord:
		return "awaiting record"
	case AwaitingCommit:
		return "awaiting commit"
	default:
		return "unknown state"
	}
}

// Stats counts how the committed predictions matched the recorded outcomes.
type Stats struct {
	Branches                uint64
	Conditional             uint64
	Correct                 uint64
	Mispredicted            uint64
	ConditionalMispredicted uint64
}

// Decoder replays a branch trace as a one-pass sequence of records. The
// recorded outcome of each record is only revealed once a prediction for it
// has been committed. A Decoder is not safe for concurrent use.
type Decoder struct {
	file   FileReader
	header Header

	state        ProtocolState
	instructions uint64
	records      uint64
	current      BranchRecord
	taken        bool
	stats        Stats

	done bool
	err  error // sticky decoding error
}

// Open opens the trace at path and reads its header. The returned decoder
// owns the file until Close is called.
func Open(path string) (*Decoder, error) {
	file, err := NewFileReader(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	d, err := newDecoder(file, path)
	if err != nil {
		return nil, errors.Join(err, file.Close())
	}
	return d, nil
}

// NewDecoder creates a decoder reading from an already opened file.
func NewDecoder(file FileReader) (*Decoder, error) {
	return newDecoder(file, "")
}

func newDecoder(file FileReader, path string) (*Decoder, error) {
	header, err := readHeader(file)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return &Decoder{
		file:   file,
		header: header,
		state:  AwaitingRecord,
	}, nil
}

// Advance decodes the next record. At the end of the trace it returns io.EOF,
// and keeps doing so on every further call.
func (d *Decoder) Advance() (BranchRecord, error) {
	if d.state == AwaitingCommit {
		return BranchRecord{}, &ProtocolError{Call: "Advance", State: d.state}
	}
	if d.err != nil {
		return BranchRecord{}, d.err
	}
	if d.done {
		return BranchRecord{}, io.EOF
	}

	start := d.file.Offset()
	record, taken, err := d.decode()
	if err == io.EOF {
		d.done = true
		return BranchRecord{}, io.EOF
	}
	if err != nil {
		d.err = &FormatError{Offset: start, Record: d.records, Err: err}
		return BranchRecord{}, d.err
	}

	d.current, d.taken = record, taken
	d.records++
	d.state = AwaitingCommit
	return record, nil
}

// decode reads one record. It returns io.EOF unwrapped only if the stream
// ended exactly on a record boundary.
func (d *Decoder) decode() (BranchRecord, bool, error) {
	gap, err := d.file.ReadUvarint()
	if err != nil {
		if err == io.EOF {
			return BranchRecord{}, false, io.EOF
		}
		return BranchRecord{}, false, recordReadError(err, "instruction gap")
	}
	flags, err := d.file.ReadUint8()
	if err != nil {
		return BranchRecord{}, false, recordReadError(err, "descriptor")
	}
	if flags&reservedFlags != 0 {
		return BranchRecord{}, false, errors.Wrapf(ErrReservedFlags, "descriptor %#02x", flags)
	}

	var record BranchRecord
	record.setFlags(flags)
	if record.InstructionAddress, err = d.file.ReadUint64(); err != nil {
		return BranchRecord{}, false, recordReadError(err, "instruction address")
	}
	if record.HasTarget {
		if record.Target, err = d.file.ReadUint64(); err != nil {
			return BranchRecord{}, false, recordReadError(err, "branch target")
		}
	}

	if gap >= math.MaxUint64-d.instructions {
		return BranchRecord{}, false, errors.Wrapf(ErrCounterOverflow, "adding %d to %d", gap+1, d.instructions)
	}
	d.instructions += gap + 1
	record.Index = d.records
	record.Instructions = d.instructions
	return record, flags&TakenFlag != 0, nil
}

func recordReadError(err error, field string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrTruncated, "cannot read %s", field)
	}
	return errors.Wrapf(err, "cannot read %s", field)
}

// CommitPrediction registers the prediction for the current record and
// returns the recorded outcome of the branch.
func (d *Decoder) CommitPrediction(predicted bool) (bool, error) {
	if d.state != AwaitingCommit {
		return false, &ProtocolError{Call: "CommitPrediction", State: d.state}
	}
	actual := d.taken

	d.stats.Branches++
	if d.current.IsConditional {
		d.stats.Conditional++
	}
	if predicted == actual {
		d.stats.Correct++
	} else {
		d.stats.Mispredicted++
		if d.current.IsConditional {
			d.stats.ConditionalMispredicted++
		}
	}

	d.state = AwaitingRecord
	return actual, nil
}

// InstructionsRetired returns the number of instructions consumed up to and
// including the most recently decoded record.
func (d *Decoder) InstructionsRetired() uint64 {
	return d.instructions
}

func (d *Decoder) Header() Header {
	return d.header
}

// Offset returns the current position in the decompressed trace stream.
func (d *Decoder) Offset() uint64 {
	return d.file.Offset()
}

func (d *Decoder) State() ProtocolState {
	return d.state
}

func (d *Decoder) Stats() Stats {
	return d.stats
}

func (d *Decoder) Close() error {
	return d.file.Close()
}
