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

// Tournament combines a bimodal and a gshare predictor. A per-address
// chooser counter selects gshare when taken() and bimodal otherwise; it is
// trained only when the two components disagree.
type Tournament struct {
	local   *Bimodal
	global  *Gshare
	chooser []counter
	mask    uint64
}

func NewTournament(cfg Config) *Tournament {
	return &Tournament{
		local:   NewBimodal(cfg),
		global:  NewGshare(cfg),
		chooser: newCounterTable(cfg.TableBits),
		mask:    1<<cfg.TableBits - 1,
	}
}

func (t *Tournament) GetPrediction(rec tracer.BranchRecord) bool {
	if !rec.IsConditional {
		return true
	}
	if t.chooser[pcIndex(rec.InstructionAddress, t.mask)].taken() {
		return t.global.GetPrediction(rec)
	}
	return t.local.GetPrediction(rec)
}

func (t *Tournament) Update(rec tracer.BranchRecord, taken bool) {
	if !rec.IsConditional {
		return
	}
	local := t.local.GetPrediction(rec)
	global := t.global.GetPrediction(rec)
	if local != global {
		idx := pcIndex(rec.InstructionAddress, t.mask)
		t.chooser[idx] = t.chooser[idx].update(global == taken)
	}
	t.local.Update(rec, taken)
	t.global.Update(rec, taken)
}
