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
	"fmt"
	"os"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/urfave/cli/v2"
)

// replayFlags are shared by the default action and the replay command.
var replayFlags = []cli.Flag{
	&config.PredictorFlag,
	&config.TableBitsFlag,
	&config.HistoryBitsFlag,
	&config.WindowSizeFlag,
	&config.ProfileDbFlag,
	&config.ChartFlag,
	&config.SummaryFileFlag,
	&config.ProgressIntervalFlag,
	&config.CpuProfileFlag,
	&logger.LogLevelFlag,
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "Branch Prediction Replay",
		HelpName:  "bpred-replay",
		Usage:     "replays branch traces through a branch predictor",
		ArgsUsage: "<trace> <output>",
		Copyright: "(c) 2025 Sonic Labs",
		Flags:     replayFlags,
		Action:    RunReplay,
		Commands: []*cli.Command{
			&RunReplayCmd,
			&InfoCmd,
			&ConvertCmd,
			&WindowsCmd,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
