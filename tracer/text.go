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
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ReadTextTrace parses a human-readable trace and calls consume for every
// branch. Each line has the form
//
//	<gap> <class> <address> <taken> [<target>]
//
// where class is a combination of c (conditional), i (indirect), l (call)
// and r (return), or "-" for a plain unconditional branch. Numbers accept
// the 0x prefix. Empty lines and text after '#' are ignored.
func ReadTextTrace(r io.Reader, consume func(Entry) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		entry, err := parseTextEntry(fields)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if err = consume(entry); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseTextEntry(fields []string) (Entry, error) {
	if len(fields) < 4 || len(fields) > 5 {
		return Entry{}, errors.Newf("expected 4 or 5 fields, got %d", len(fields))
	}
	var (
		entry Entry
		err   error
	)
	if entry.Gap, err = strconv.ParseUint(fields[0], 0, 64); err != nil {
		return Entry{}, errors.Wrap(err, "invalid instruction gap")
	}
	if err = entry.Record.SetClass(fields[1]); err != nil {
		return Entry{}, err
	}
	if entry.Record.InstructionAddress, err = strconv.ParseUint(fields[2], 0, 64); err != nil {
		return Entry{}, errors.Wrap(err, "invalid instruction address")
	}
	switch fields[3] {
	case "1":
		entry.Taken = true
	case "0":
		entry.Taken = false
	default:
		return Entry{}, errors.Newf("invalid outcome %q, expected 0 or 1", fields[3])
	}
	if len(fields) == 5 {
		if entry.Record.Target, err = strconv.ParseUint(fields[4], 0, 64); err != nil {
			return Entry{}, errors.Wrap(err, "invalid branch target")
		}
		entry.Record.HasTarget = true
	}
	return entry, nil
}
