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

// Gshare indexes its counter table with the instruction address XORed with
// the global history of conditional branch outcomes.
type Gshare struct {
	table       []counter
	mask        uint64
	history     uint64
	historyMask uint64
}

func NewGshare(cfg Config) *Gshare {
	var historyMask uint64 = 1<<cfg.HistoryBits - 1
	if cfg.HistoryBits >= 64 {
		historyMask = ^uint64(0)
	}
	return &Gshare{
		table:       newCounterTable(cfg.TableBits),
		mask:        1<<cfg.TableBits - 1,
		historyMask: historyMask,
	}
}

func (g *Gshare) index(address uint64) uint64 {
	return ((address >> 2) ^ g.history) & g.mask
}

func (g *Gshare) GetPrediction(rec tracer.BranchRecord) bool {
	if !rec.IsConditional {
		return true
	}
	return g.table[g.index(rec.InstructionAddress)].taken()
}

func (g *Gshare) Update(rec tracer.BranchRecord, taken bool) {
	if !rec.IsConditional {
		return
	}
	idx := g.index(rec.InstructionAddress)
	g.table[idx] = g.table[idx].update(taken)
	g.push(taken)
}

func (g *Gshare) push(taken bool) {
	g.history <<= 1
	if taken {
		g.history |= 1
	}
	g.history &= g.historyMask
}
