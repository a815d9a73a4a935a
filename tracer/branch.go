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
	"strings"

	"github.com/cockroachdb/errors"
)

// BranchRecord is one decoded trace entry. It never carries the outcome of
// the branch; the outcome is only revealed by Decoder.CommitPrediction.
type BranchRecord struct {
	InstructionAddress uint64
	Target             uint64 // valid only if HasTarget is set
	HasTarget          bool

	IsConditional bool
	IsIndirect    bool
	IsCall        bool
	IsReturn      bool

	Index        uint64 // position of the record in the trace, starting at 0
	Instructions uint64 // instructions retired including this branch
}

// Flags returns the descriptor byte of the record without the taken bit.
func (r BranchRecord) Flags() uint8 {
	var flags uint8
	if r.IsConditional {
		flags |= ConditionalFlag
	}
	if r.IsIndirect {
		flags |= IndirectFlag
	}
	if r.IsCall {
		flags |= CallFlag
	}
	if r.IsReturn {
		flags |= ReturnFlag
	}
	if r.HasTarget {
		flags |= TargetFlag
	}
	return flags
}

func (r *BranchRecord) setFlags(flags uint8) {
	r.IsConditional = flags&ConditionalFlag != 0
	r.IsIndirect = flags&IndirectFlag != 0
	r.IsCall = flags&CallFlag != 0
	r.IsReturn = flags&ReturnFlag != 0
	r.HasTarget = flags&TargetFlag != 0
}

// Class returns the branch class in the short notation used by text traces,
// e.g. "c" for a plain conditional branch or "il" for an indirect call.
func (r BranchRecord) Class() string {
	var b strings.Builder
	if r.IsConditional {
		b.WriteByte('c')
	}
	if r.IsIndirect {
		b.WriteByte('i')
	}
	if r.IsCall {
		b.WriteByte('l')
	}
	if r.IsReturn {
		b.WriteByte('r')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// SetClass parses the short class notation produced by Class.
func (r *BranchRecord) SetClass(class string) error {
	r.IsConditional, r.IsIndirect, r.IsCall, r.IsReturn = false, false, false, false
	if class == "-" {
		return nil
	}
	for _, c := range class {
		switch c {
		case 'c':
			r.IsConditional = true
		case 'i':
			r.IsIndirect = true
		case 'l':
			r.IsCall = true
		case 'r':
			r.IsReturn = true
		default:
			return errors.Newf("unknown branch class %q in %q", c, class)
		}
	}
	return nil
}

func (r BranchRecord) String() string {
	if r.HasTarget {
		return fmt.Sprintf("#%d %#x [%s] -> %#x", r.Index, r.InstructionAddress, r.Class(), r.Target)
	}
	return fmt.Sprintf("#%d %#x [%s]", r.Index, r.InstructionAddress, r.Class())
}
