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

package statistics

import (
	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension"
	"github.com/0xsoniclabs/bpred/utils"
	"github.com/cockroachdb/errors"
)

// windowBufferSize is the number of windows collected before they are
// written to the profile database.
const windowBufferSize = 256

// MakeWindowProfiler creates an extension splitting the conditional branches
// of a pass into windows of cfg.WindowSize branches. Windows are stored in
// the sqlite3 database cfg.ProfileDb and plotted to cfg.ChartFile; with
// neither set the profiler is disabled.
func MakeWindowProfiler(cfg *config.Config) replay.Extension {
	if cfg.ProfileDb == "" && cfg.ChartFile == "" {
		return extension.NilExtension{}
	}
	return makeWindowProfiler(cfg, logger.NewLogger(cfg.LogLevel, "Window-Profiler"))
}

func makeWindowProfiler(cfg *config.Config, log logger.Logger) *windowProfiler {
	return &windowProfiler{cfg: cfg, log: log}
}

type windowProfiler struct {
	extension.NilExtension
	cfg *config.Config
	log logger.Logger

	buffer  *utils.PrinterToBuffer
	flusher *utils.Flusher

	windows []Window
	current Window
}

func (p *windowProfiler) PreRun(replay.State, *replay.Context) error {
	if p.cfg.WindowSize == 0 {
		return errors.New("window size must be positive")
	}
	if p.cfg.ProfileDb != "" {
		db, err := utils.NewPrinterToSqlite3(p.cfg.ProfileDb, createWindowTable, insertWindow, func() [][]any {
			return [][]any{p.windows[len(p.windows)-1].row()}
		})
		if err != nil {
			return err
		}
		p.buffer, p.flusher = db.Bufferize(windowBufferSize)
	}
	p.windows = nil
	p.current = Window{}
	return nil
}

func (p *windowProfiler) PostBranch(state replay.State, ctx *replay.Context) error {
	if !state.Record.IsConditional {
		return nil
	}
	if p.current.Branches == 0 {
		p.current.FirstInstruction = int64(state.Record.Instructions)
	}
	p.current.LastInstruction = int64(state.Record.Instructions)
	p.current.Branches++
	if state.Predicted != state.Actual {
		p.current.Mispredicted++
	}
	if uint64(p.current.Branches) < p.cfg.WindowSize {
		return nil
	}
	return p.closeWindow()
}

func (p *windowProfiler) closeWindow() error {
	w := p.current
	w.Index = int64(len(p.windows))
	w.Rate = float64(w.Mispredicted) / float64(w.Branches)
	p.windows = append(p.windows, w)
	p.current = Window{}
	if p.buffer == nil {
		return nil
	}
	return p.buffer.Print()
}

func (p *windowProfiler) PostRun(_ replay.State, _ *replay.Context, err error) error {
	var errs []error
	if err == nil && p.current.Branches > 0 {
		errs = append(errs, p.closeWindow())
	}
	if p.flusher != nil {
		errs = append(errs, p.flusher.Close())
		p.flusher, p.buffer = nil, nil
	}
	if err != nil {
		return errors.Join(errs...)
	}

	stats := ComputeWindowStats(p.windows)
	p.log.Noticef("Misprediction rate over %d windows of %d branches: mean %.4f, stddev %.4f, min %.4f, max %.4f",
		stats.Windows, p.cfg.WindowSize, stats.Mean, stats.StdDev, stats.Min, stats.Max)

	if p.cfg.ChartFile != "" {
		errs = append(errs, RenderWindowChart(p.cfg.ChartFile, p.cfg.Predictor, p.windows))
	}
	return errors.Join(errs...)
}
