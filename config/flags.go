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

package config

import (
	"time"

	"github.com/0xsoniclabs/bpred/predictor"
	"github.com/urfave/cli/v2"
)

var (
	PredictorFlag = cli.StringFlag{
		Name:  "predictor",
		Usage: "branch predictor to evaluate (always-taken, never-taken, bimodal, gshare, tournament)",
		Value: DefaultPredictor,
	}
	TableBitsFlag = cli.UintFlag{
		Name:  "table-bits",
		Usage: "log2 of the number of counters in each prediction table",
		Value: DefaultTableBits,
	}
	HistoryBitsFlag = cli.UintFlag{
		Name:  "history-bits",
		Usage: "number of global history bits used by history based predictors",
		Value: DefaultHistoryBits,
	}
	WindowSizeFlag = cli.Uint64Flag{
		Name:  "window-size",
		Usage: "number of conditional branches per window of the misprediction profile",
		Value: DefaultWindowSize,
	}
	ProfileDbFlag = cli.PathFlag{
		Name:  "profile-db",
		Usage: "sqlite3 database receiving the per-window misprediction profile",
	}
	ChartFlag = cli.PathFlag{
		Name:  "chart",
		Usage: "html file receiving a chart of the per-window misprediction rate",
	}
	SummaryFileFlag = cli.PathFlag{
		Name:  "summary-file",
		Usage: "file the accuracy summary is appended to",
	}
	ProgressIntervalFlag = cli.DurationFlag{
		Name:  "progress-interval",
		Usage: "time between progress reports, 0 disables reporting",
		Value: DefaultProgressInterval,
	}
	CpuProfileFlag = cli.PathFlag{
		Name:  "cpu-profile",
		Usage: "enables CPU profiling",
	}
)

const (
	DefaultPredictor        = "gshare"
	DefaultTableBits        = predictor.DefaultTableBits
	DefaultHistoryBits      = predictor.DefaultHistoryBits
	DefaultWindowSize       = 100_000
	DefaultProgressInterval = 15 * time.Second
)
