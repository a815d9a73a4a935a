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

package main

import (
	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/predictor"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension/logger"
	"github.com/0xsoniclabs/bpred/replay/extension/profiler"
	"github.com/0xsoniclabs/bpred/replay/extension/statistics"
	"github.com/0xsoniclabs/bpred/tracer"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// RunReplayCmd data structure for the replay app
var RunReplayCmd = cli.Command{
	Action:    RunReplay,
	Name:      "replay",
	Usage:     "scores a branch predictor against a branch trace",
	ArgsUsage: "<trace> <output>",
	Flags:     replayFlags,
	Description: `
The replay command requires two arguments:
<trace> <output>

<trace> is a branch trace, raw, gzip or zstd compressed.
<output> receives one line per conditional branch holding the
instruction address, the recorded outcome (0/1) and the number of
instructions retired so far; "-" writes to stdout.`,
}

func RunReplay(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.TraceAndOutputArgs)
	if err != nil {
		return err
	}
	return replayTrace(cfg, nil)
}

func replayTrace(cfg *config.Config, extra []replay.Extension) (err error) {
	pred, err := predictor.New(cfg.Predictor, cfg.PredictorConfig())
	if err != nil {
		return err
	}

	decoder, err := tracer.Open(cfg.TracePath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, decoder.Close())
	}()

	sink, err := replay.OpenFileSink(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, sink.Close())
	}()

	// order of extensionList has to be maintained
	extensionList := []replay.Extension{
		profiler.MakeCpuProfiler(cfg),
		logger.MakeProgressLogger(cfg, 0),
		statistics.MakeWindowProfiler(cfg),
		statistics.MakeAccuracyPrinter(cfg),
	}
	extensionList = append(extensionList, extra...)

	driver := replay.NewDriver(decoder, cfg.LogLevel)
	return driver.Run(replay.Params{Predictor: pred, Sink: sink}, extensionList)
}
