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

// Trace header constants.
const (
	TraceMagic   = "BPTR"
	TraceVersion = uint8(1)
)

// Bits of the branch descriptor byte.
const (
	ConditionalFlag uint8 = 0x01 // conditional branch
	IndirectFlag    uint8 = 0x02 // target computed at run-time
	CallFlag        uint8 = 0x04 // call (branch and link)
	ReturnFlag      uint8 = 0x08 // return from subroutine
	TargetFlag      uint8 = 0x10 // a static target address follows the instruction address
	TakenFlag       uint8 = 0x80 // ground truth: branch was taken

	reservedFlags = uint8(0x60)
)

// sizes in bytes of the fixed-size fields
const (
	magicSize   = 4
	addressSize = 8
)

// stream magic numbers used to detect the compression of a trace file
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)
