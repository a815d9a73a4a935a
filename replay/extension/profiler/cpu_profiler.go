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
	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension"
	"github.com/0xsoniclabs/bpred/utils"
)

// MakeCpuProfiler creates an extension recording a CPU profile of the pass
// to cfg.CPUProfile if enabled in the configuration.
func MakeCpuProfiler(cfg *config.Config) replay.Extension {
	if cfg.CPUProfile == "" {
		return extension.NilExtension{}
	}
	return &cpuProfiler{cfg: cfg}
}

type cpuProfiler struct {
	extension.NilExtension
	cfg *config.Config
}

func (p *cpuProfiler) PreRun(replay.State, *replay.Context) error {
	return utils.StartCPUProfile(p.cfg.CPUProfile)
}

func (p *cpuProfiler) PostRun(replay.State, *replay.Context, error) error {
	utils.StopCPUProfile(p.cfg.CPUProfile)
	return nil
}
