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

package logger

import (
	"time"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension"
)

const (
	progressReportFormat = "Elapsed time: %.0f s, branches %d, instructions %d, ~%.1f kbranches/s, accuracy %.2f%%"
	finalReportFormat    = "Replay finished after %vh %vm %vs: %d branches, %d instructions, accuracy %.2f%%, %.3f MPKI"

	// clockCheckMask limits how often the clock is read.
	clockCheckMask = 1<<12 - 1
)

// MakeProgressLogger creates an extension reporting the progress of a replay
// pass every interval. A zero interval falls back to cfg.ProgressInterval;
// a non-positive result disables reporting.
func MakeProgressLogger(cfg *config.Config, interval time.Duration) replay.Extension {
	if interval == 0 {
		interval = cfg.ProgressInterval
	}
	if interval <= 0 {
		return extension.NilExtension{}
	}
	return makeProgressLogger(interval, clockCheckMask, logger.NewLogger(cfg.LogLevel, "Progress-Logger"))
}

func makeProgressLogger(interval time.Duration, checkMask uint64, log logger.Logger) *progressLogger {
	return &progressLogger{
		interval:  interval,
		checkMask: checkMask,
		log:       log,
	}
}

type progressLogger struct {
	extension.NilExtension
	interval  time.Duration
	checkMask uint64
	log       logger.Logger

	start        time.Time
	lastReport   time.Time
	lastBranches uint64
}

func (l *progressLogger) PreRun(replay.State, *replay.Context) error {
	l.start = time.Now()
	l.lastReport = l.start
	l.log.Noticef("Replay started, reporting every %v", l.interval)
	return nil
}

func (l *progressLogger) PostBranch(_ replay.State, ctx *replay.Context) error {
	summary := ctx.Summary
	if summary.Branches&l.checkMask != 0 {
		return nil
	}
	now := time.Now()
	sinceLast := now.Sub(l.lastReport)
	if sinceLast < l.interval {
		return nil
	}

	rate := float64(summary.Branches-l.lastBranches) / sinceLast.Seconds() / 1000
	l.log.Noticef(progressReportFormat,
		now.Sub(l.start).Round(time.Second).Seconds(), summary.Branches, summary.Instructions,
		rate, summary.Accuracy())

	l.lastReport = now
	l.lastBranches = summary.Branches
	return nil
}

func (l *progressLogger) PostRun(_ replay.State, ctx *replay.Context, err error) error {
	summary := ctx.Summary
	hours, minutes, seconds := logger.ParseTime(time.Since(l.start))
	if err != nil {
		l.log.Errorf("Replay failed after %d branches: %v", summary.Branches, err)
		return nil
	}
	l.log.Noticef(finalReportFormat, hours, minutes, seconds,
		summary.Branches, summary.Instructions, summary.Accuracy(), summary.MPKI())
	return nil
}
