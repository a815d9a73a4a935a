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

package predictor

import "github.com/0xsoniclabs/bpred/tracer"

// Bimodal predicts with a table of 2-bit saturating counters indexed by the
// instruction address. Counters start weakly taken.
type Bimodal struct {
	table []counter
	mask  uint64
}

func NewBimodal(cfg Config) *Bimodal {
	return &Bimodal{
		table: newCounterTable(cfg.TableBits),
		mask:  1<<cfg.TableBits - 1,
	}
}

func (b *Bimodal) GetPrediction(rec tracer.BranchRecord) bool {
	if !rec.IsConditional {
		return true
	}
	return b.table[pcIndex(rec.InstructionAddress, b.mask)].taken()
}

func (b *Bimodal) Update(rec tracer.BranchRecord, taken bool) {
	if !rec.IsConditional {
		return
	}
	idx := pcIndex(rec.InstructionAddress, b.mask)
	b.table[idx] = b.table[idx].update(taken)
}
