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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextTrace_ParsesEntries(t *testing.T) {
	input := `
# gap class address taken [target]
0 c  0x1000 1 0x1040
1 l  0x1044 1 0x2000
1 c  0x2008 0   # loop exit
3 ir 8200   1
`
	var entries []Entry
	err := ReadTextTrace(strings.NewReader(input), func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, threeBranches, entries[:3])
	assert.Equal(t, Entry{
		Record: BranchRecord{InstructionAddress: 8200, IsIndirect: true, IsReturn: true},
		Taken:  true,
		Gap:    3,
	}, entries[3])
}

func TestReadTextTrace_Errors(t *testing.T) {
	tests := map[string]string{
		"too few fields":  "0 c 0x10",
		"too many fields": "0 c 0x10 1 0x20 0x30",
		"bad gap":         "x c 0x10 1",
		"bad class":       "0 q 0x10 1",
		"bad address":     "0 c zz 1",
		"bad outcome":     "0 c 0x10 yes",
		"bad target":      "0 c 0x10 1 nope",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			err := ReadTextTrace(strings.NewReader("0 - 0x4 1\n"+input), func(Entry) error { return nil })
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestReadTextTrace_ConsumerErrorStopsParsing(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ReadTextTrace(strings.NewReader("0 c 1 1\n0 c 2 1\n"), func(Entry) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestBranchRecord_ClassRoundTrip(t *testing.T) {
	for _, class := range []string{"-", "c", "i", "l", "r", "ci", "il", "cilr"} {
		var rec BranchRecord
		require.NoError(t, rec.SetClass(class))
		assert.Equal(t, class, rec.Class())
	}
}

func TestBranchRecord_FlagsMatchDescriptorBits(t *testing.T) {
	rec := BranchRecord{IsConditional: true, IsReturn: true, HasTarget: true}
	assert.Equal(t, ConditionalFlag|ReturnFlag|TargetFlag, rec.Flags())

	var decoded BranchRecord
	decoded.setFlags(rec.Flags() | TakenFlag)
	assert.Equal(t, rec, decoded)
}

func TestBranchRecord_String(t *testing.T) {
	assert.Equal(t, "#0 0x1000 [c] -> 0x1040", threeBranches[0].Record.String())
	assert.Equal(t, "#0 0x2008 [c]", threeBranches[2].Record.String())
}
