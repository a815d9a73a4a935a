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
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// threeBranches holds a conditional taken branch, an unconditional call and a
// conditional not-taken branch preceded by 0, 1 and 1 non-branch instructions,
// so instructions retired goes 1, 3, 5.
var threeBranches = []Entry{
	{Record: BranchRecord{InstructionAddress: 0x1000, IsConditional: true, HasTarget: true, Target: 0x1040}, Taken: true, Gap: 0},
	{Record: BranchRecord{InstructionAddress: 0x1044, IsCall: true, HasTarget: true, Target: 0x2000}, Taken: true, Gap: 1},
	{Record: BranchRecord{InstructionAddress: 0x2008, IsConditional: true}, Taken: false, Gap: 1},
}

func writeTestTrace(t *testing.T, name string, entries []Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, WriteTrace(path, Header{Name: "test"}, entries))
	return path
}

// rawTrace builds an uncompressed trace with a valid header followed by the given bytes.
func rawTrace(t *testing.T, body ...byte) string {
	t.Helper()
	data := append([]byte(TraceMagic), TraceVersion, 0, 4)
	data = append(data, []byte("test")...)
	data = append(data, body...)
	path := filepath.Join(t.TempDir(), "trace.raw")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

const rawHeaderSize = 11

func TestDecoder_ThreeRecordScenario(t *testing.T) {
	d, err := Open(writeTestTrace(t, "trace.gz", threeBranches))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, d.Close())
	}()
	require.Equal(t, Header{Version: TraceVersion, Name: "test"}, d.Header())
	require.Equal(t, uint64(0), d.InstructionsRetired())

	wantInstructions := []uint64{1, 3, 5}
	wantActual := []bool{true, true, false}
	for i, entry := range threeBranches {
		rec, err := d.Advance()
		require.NoError(t, err)
		require.Equal(t, AwaitingCommit, d.State())
		assert.Equal(t, entry.Record.InstructionAddress, rec.InstructionAddress)
		assert.Equal(t, entry.Record.IsConditional, rec.IsConditional)
		assert.Equal(t, entry.Record.IsCall, rec.IsCall)
		assert.Equal(t, entry.Record.HasTarget, rec.HasTarget)
		assert.Equal(t, entry.Record.Target, rec.Target)
		assert.Equal(t, uint64(i), rec.Index)
		assert.Equal(t, wantInstructions[i], rec.Instructions)
		assert.Equal(t, wantInstructions[i], d.InstructionsRetired())

		actual, err := d.CommitPrediction(true)
		require.NoError(t, err)
		assert.Equal(t, wantActual[i], actual)
		require.Equal(t, AwaitingRecord, d.State())
	}

	_, err = d.Advance()
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, Stats{Branches: 3, Conditional: 2, Correct: 2, Mispredicted: 1, ConditionalMispredicted: 1}, d.Stats())
}

func TestDecoder_CommitRevealsActualNotPredicted(t *testing.T) {
	d, err := Open(writeTestTrace(t, "trace.gz", []Entry{
		{Record: BranchRecord{InstructionAddress: 0x40, IsConditional: true}, Taken: false},
	}))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Advance()
	require.NoError(t, err)
	actual, err := d.CommitPrediction(true)
	require.NoError(t, err)
	assert.False(t, actual)
}

func TestDecoder_CommitTwiceIsProtocolViolation(t *testing.T) {
	d, err := Open(writeTestTrace(t, "trace.gz", threeBranches))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Advance()
	require.NoError(t, err)
	_, err = d.CommitPrediction(false)
	require.NoError(t, err)

	_, err = d.CommitPrediction(false)
	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, "CommitPrediction", protocolErr.Call)
	assert.Equal(t, AwaitingRecord, protocolErr.State)
}

func TestDecoder_CommitBeforeFirstAdvanceIsProtocolViolation(t *testing.T) {
	d, err := Open(writeTestTrace(t, "trace.gz", threeBranches))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.CommitPrediction(true)
	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
}

func TestDecoder_AdvanceWhileAwaitingCommitIsProtocolViolation(t *testing.T) {
	d, err := Open(writeTestTrace(t, "trace.gz", threeBranches))
	require.NoError(t, err)
	defer d.Close()

	first, err := d.Advance()
	require.NoError(t, err)
	_, err = d.Advance()
	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, "Advance", protocolErr.Call)
	assert.Equal(t, AwaitingCommit, protocolErr.State)

	// the open record is still the first one and can be resolved
	actual, err := d.CommitPrediction(true)
	require.NoError(t, err)
	assert.True(t, actual)
	assert.Equal(t, uint64(0), first.Index)
}

func TestDecoder_EndOfStreamIsIdempotent(t *testing.T) {
	d, err := Open(writeTestTrace(t, "trace.gz", nil))
	require.NoError(t, err)
	defer d.Close()

	for i := 0; i < 3; i++ {
		_, err = d.Advance()
		require.ErrorIs(t, err, io.EOF)
		require.Equal(t, AwaitingRecord, d.State())
	}
	assert.Equal(t, uint64(0), d.InstructionsRetired())
	assert.Equal(t, Stats{}, d.Stats())
}

func TestDecoder_InstructionsStrictlyIncrease(t *testing.T) {
	entries := make([]Entry, 0, 100)
	for i := 0; i < 100; i++ {
		entries = append(entries, Entry{
			Record: BranchRecord{InstructionAddress: uint64(0x100 + 4*i), IsConditional: i%3 != 0},
			Taken:  i%2 == 0,
			Gap:    uint64(i % 7),
		})
	}
	d, err := Open(writeTestTrace(t, "trace.zst", entries))
	require.NoError(t, err)
	defer d.Close()

	previous, want := uint64(0), uint64(0)
	for i := 0; ; i++ {
		rec, err := d.Advance()
		if errors.Is(err, io.EOF) {
			require.Equal(t, len(entries), i)
			break
		}
		require.NoError(t, err)
		want += entries[i].Gap + 1
		require.Greater(t, rec.Instructions, previous)
		require.Equal(t, want, rec.Instructions, "record %d", i)
		previous = rec.Instructions
		_, err = d.CommitPrediction(false)
		require.NoError(t, err)
	}
	assert.Equal(t, want, d.InstructionsRetired())
}

func TestDecoder_MultiByteGapsAreCounted(t *testing.T) {
	gaps := []uint64{0, 127, 128, 300, 0, 1 << 20}
	entries := make([]Entry, 0, len(gaps))
	for i, gap := range gaps {
		entries = append(entries, Entry{
			Record: BranchRecord{InstructionAddress: uint64(0x400 + 4*i), IsConditional: true},
			Gap:    gap,
		})
	}
	d, err := Open(writeTestTrace(t, "trace.gz", entries))
	require.NoError(t, err)
	defer d.Close()

	var got []uint64
	for {
		_, err := d.Advance()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, d.InstructionsRetired())
		_, err = d.CommitPrediction(true)
		require.NoError(t, err)
	}
	assert.Equal(t, []uint64{1, 129, 258, 559, 560, 560 + 1<<20 + 1}, got)
}

func TestDecoder_DecodingIsDeterministic(t *testing.T) {
	path := writeTestTrace(t, "trace.gz", threeBranches)

	type step struct {
		record BranchRecord
		actual bool
	}
	pass := func() []step {
		d, err := Open(path)
		require.NoError(t, err)
		defer d.Close()
		var steps []step
		for {
			rec, err := d.Advance()
			if errors.Is(err, io.EOF) {
				return steps
			}
			require.NoError(t, err)
			actual, err := d.CommitPrediction(rec.Index%2 == 0)
			require.NoError(t, err)
			steps = append(steps, step{rec, actual})
		}
	}
	assert.Equal(t, pass(), pass())
}

func TestDecoder_CompressionDoesNotChangeDecoding(t *testing.T) {
	read := func(path string) []BranchRecord {
		d, err := Open(path)
		require.NoError(t, err)
		defer d.Close()
		var records []BranchRecord
		for {
			rec, err := d.Advance()
			if errors.Is(err, io.EOF) {
				return records
			}
			require.NoError(t, err)
			_, err = d.CommitPrediction(false)
			require.NoError(t, err)
			records = append(records, rec)
		}
	}

	var body []byte
	for _, entry := range threeBranches {
		flags := entry.Record.Flags()
		if entry.Taken {
			flags |= TakenFlag
		}
		body = append(body, byte(entry.Gap), flags)
		body = append(body, bigendian.Uint64ToBytes(entry.Record.InstructionAddress)...)
		if entry.Record.HasTarget {
			body = append(body, bigendian.Uint64ToBytes(entry.Record.Target)...)
		}
	}

	raw := read(rawTrace(t, body...))
	assert.Len(t, raw, 3)
	assert.Equal(t, raw, read(writeTestTrace(t, "trace.gz", threeBranches)))
	assert.Equal(t, raw, read(writeTestTrace(t, "trace.zst", threeBranches)))
}

func TestDecoder_TruncatedRecordIsFormatError(t *testing.T) {
	// gap, flags and half of the instruction address
	d, err := Open(rawTrace(t, 0x00, 0x81, 0x00, 0x00, 0x00, 0x00))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Advance()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, uint64(rawHeaderSize), formatErr.Offset)
	assert.Equal(t, uint64(0), formatErr.Record)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Contains(t, err.Error(), "byte offset 11")

	// the failure is sticky
	_, err = d.Advance()
	require.ErrorAs(t, err, &formatErr)
}

func TestDecoder_TruncatedSecondRecordReportsItsOffset(t *testing.T) {
	record := append([]byte{0x03, ConditionalFlag}, bigendian.Uint64ToBytes(0x10)...)
	body := append(record, 0x01, ConditionalFlag|TargetFlag)
	body = append(body, bigendian.Uint64ToBytes(0x20)...)
	body = append(body, 0x00, 0x00) // incomplete target
	d, err := Open(rawTrace(t, body...))
	require.NoError(t, err)
	defer d.Close()

	rec, err := d.Advance()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), rec.Instructions)
	_, err = d.CommitPrediction(false)
	require.NoError(t, err)

	_, err = d.Advance()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, uint64(rawHeaderSize+len(record)), formatErr.Offset)
	assert.Equal(t, uint64(1), formatErr.Record)
}

func TestDecoder_TruncatedVarintIsFormatError(t *testing.T) {
	d, err := Open(rawTrace(t, 0x80))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Advance()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecoder_ReservedFlagsAreFormatError(t *testing.T) {
	body := append([]byte{0x00, 0x20}, bigendian.Uint64ToBytes(0x10)...)
	d, err := Open(rawTrace(t, body...))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Advance()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.ErrorIs(t, err, ErrReservedFlags)
}

func TestDecoder_CounterOverflowIsFormatError(t *testing.T) {
	ctrl := gomock.NewController(t)
	file := NewMockFileReader(ctrl)
	d := &Decoder{file: file, instructions: 10}

	gomock.InOrder(
		file.EXPECT().Offset().Return(uint64(20)),
		file.EXPECT().ReadUvarint().Return(uint64(math.MaxUint64-10), nil),
		file.EXPECT().ReadUint8().Return(uint8(0), nil),
		file.EXPECT().ReadUint64().Return(uint64(0x10), nil),
	)
	_, err := d.Advance()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.ErrorIs(t, err, ErrCounterOverflow)
	assert.Equal(t, uint64(20), formatErr.Offset)
}

func TestDecoder_ReadErrorsAreFormatErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	file := NewMockFileReader(ctrl)
	d := &Decoder{file: file}
	mockErr := errors.New("checksum mismatch")

	gomock.InOrder(
		file.EXPECT().Offset().Return(uint64(11)),
		file.EXPECT().ReadUvarint().Return(uint64(0), nil),
		file.EXPECT().ReadUint8().Return(uint8(0), mockErr),
	)
	_, err := d.Advance()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.ErrorIs(t, err, mockErr)
}

func TestOpen_ResourceErrors(t *testing.T) {
	write := func(data []byte) string {
		path := filepath.Join(t.TempDir(), "trace")
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "missing")},
		{name: "bad magic", path: write([]byte("XXXX\x01\x00\x00")), wantErr: ErrBadMagic},
		{name: "bad version", path: write([]byte("BPTR\x07\x00\x00")), wantErr: ErrUnsupportedVersion},
		{name: "truncated header", path: write([]byte("BPTR\x01\x00")), wantErr: ErrTruncatedHeader},
		{name: "truncated name", path: write([]byte("BPTR\x01\x00\x05ab")), wantErr: ErrTruncatedHeader},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Open(test.path)
			var resourceErr *ResourceError
			require.ErrorAs(t, err, &resourceErr)
			assert.Equal(t, test.path, resourceErr.Path)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestNewDecoder_ReadsHeaderFromReader(t *testing.T) {
	ctrl := gomock.NewController(t)
	file := NewMockFileReader(ctrl)
	gomock.InOrder(
		file.EXPECT().ReadData(4).Return([]byte(TraceMagic), nil),
		file.EXPECT().ReadUint8().Return(TraceVersion, nil),
		file.EXPECT().ReadUint16().Return(uint16(3), nil),
		file.EXPECT().ReadData(3).Return([]byte("gcc"), nil),
	)
	d, err := NewDecoder(file)
	require.NoError(t, err)
	assert.Equal(t, "gcc", d.Header().Name)
	assert.Equal(t, AwaitingRecord, d.State())
}

func TestProtocolState_String(t *testing.T) {
	assert.Equal(t, "awaiting record", AwaitingRecord.String())
	assert.Equal(t, "awaiting commit", AwaitingCommit.String())
	assert.Equal(t, "unknown state", ProtocolState(9).String())
}
