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

package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

//go:generate mockgen -source sink.go -destination sink_mock.go -package replay

// Sink receives one verdict per conditional branch.
type Sink interface {
	Emit(address uint64, actual bool, instructions uint64) error
}

// NewLineSink returns a Sink writing "<address> <0|1> <instructions>" lines to w.
func NewLineSink(w io.Writer) Sink {
	return &lineSink{out: w}
}

type lineSink struct {
	out io.Writer
}

func (s *lineSink) Emit(address uint64, actual bool, instructions uint64) error {
	outcome := 0
	if actual {
		outcome = 1
	}
	if _, err := fmt.Fprintf(s.out, "%d %d %d\n", address, outcome, instructions); err != nil {
		return errors.Wrap(err, "cannot write verdict")
	}
	return nil
}

// FileSink is a buffered line sink bound to a file or, for "-", to stdout.
type FileSink struct {
	Sink
	buffer *bufio.Writer
	file   *os.File
}

// OpenFileSink creates the output file at path. The path "-" selects stdout,
// which is flushed but never closed.
func OpenFileSink(path string) (*FileSink, error) {
	var file *os.File
	if path == "-" {
		file = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot create output %s", path)
		}
		file = f
	}
	buffer := bufio.NewWriter(file)
	return &FileSink{
		Sink:   NewLineSink(buffer),
		buffer: buffer,
		file:   file,
	}, nil
}

func (s *FileSink) Close() error {
	err := s.buffer.Flush()
	if s.file == os.Stdout {
		return err
	}
	return errors.Join(err, s.file.Close())
}
