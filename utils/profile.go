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

package utils

import (
	"os"
	"runtime/pprof"

	"github.com/cockroachdb/errors"
)

// StartCPUProfile starts writing a CPU profile to filename; an empty name
// disables profiling.
func StartCPUProfile(filename string) error {
	if filename == "" {
		return nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create CPU profile")
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		return errors.Join(errors.Wrap(err, "could not start CPU profile"), f.Close())
	}
	return nil
}

func StopCPUProfile(filename string) {
	if filename != "" {
		pprof.StopCPUProfile()
	}
}
