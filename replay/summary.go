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

// Summary holds the scoring counters accumulated by the driver. Mispredicted
// counts conditional branches only, unconditional branches are not scored.
type Summary struct {
	Branches     uint64
	Conditional  uint64
	Mispredicted uint64
	Emitted      uint64
	Instructions uint64
}

// Accuracy returns the share of correctly predicted conditional branches in percent.
func (s Summary) Accuracy() float64 {
	if s.Conditional == 0 {
		return 0
	}
	return float64(s.Conditional-s.Mispredicted) / float64(s.Conditional) * 100
}

// MPKI returns the number of mispredictions per thousand instructions.
func (s Summary) MPKI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Mispredicted) / float64(s.Instructions) * 1000
}
