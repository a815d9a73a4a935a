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
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrTruncated          = errors.New("trace truncated mid-record")
	ErrReservedFlags      = errors.New("reserved descriptor bits are set")
	ErrCounterOverflow    = errors.New("instruction counter overflows 64 bits")
	ErrBadMagic           = errors.New("trace header has an unknown magic")
	ErrUnsupportedVersion = errors.New("trace header has an unsupported version")
	ErrTruncatedHeader    = errors.New("trace header is truncated")
)

// ResourceError is returned when a trace cannot be located or opened, or its
// header is malformed.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot open trace: %v", e.Err)
	}
	return fmt.Sprintf("cannot open trace %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the bytes of the record stream do not form a
// valid record. Offset is the position of the first byte of the offending
// record in the decompressed stream.
type FormatError struct {
	Offset uint64
	Record uint64
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed record %d at byte offset %d: %v", e.Record, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ProtocolError signals that Advance and CommitPrediction were called out of
// order. It always indicates a bug in the caller.
type ProtocolError struct {
	Call  string
	State ProtocolState
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol violation: %s called while %v", e.Call, e.State)
}
