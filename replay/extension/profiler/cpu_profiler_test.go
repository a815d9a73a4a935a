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

package profiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCpuProfiler_NoProfilerIsCreatedIfDisabled(t *testing.T) {
	ext := MakeCpuProfiler(&config.Config{})
	if _, ok := ext.(extension.NilExtension); !ok {
		t.Errorf("profiler is enabled although not set in configuration")
	}
}

func TestCpuProfiler_WritesProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	ext := MakeCpuProfiler(&config.Config{CPUProfile: path})

	require.NoError(t, ext.PreRun(replay.State{}, &replay.Context{}))
	require.NoError(t, ext.PostRun(replay.State{}, &replay.Context{}, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCpuProfiler_ReportsInvalidPath(t *testing.T) {
	ext := MakeCpuProfiler(&config.Config{CPUProfile: filepath.Join(t.TempDir(), "missing", "cpu.prof")})
	require.ErrorContains(t, ext.PreRun(replay.State{}, &replay.Context{}), "could not create CPU profile")
}
