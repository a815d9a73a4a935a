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
	"io"
	"os"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/replay/extension/statistics"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

var WindowsCmd = cli.Command{
	Action:    RunWindows,
	Name:      "windows",
	Usage:     "summarises a misprediction profile written with --profile-db",
	ArgsUsage: "<profile-db>",
	Flags: []cli.Flag{
		&config.ChartFlag,
	},
}

func RunWindows(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.ProfileDbArg)
	if err != nil {
		return err
	}
	windows, err := statistics.ReadWindows(cfg.ProfileDb)
	if err != nil {
		return err
	}
	if cfg.ChartFile != "" {
		if err = statistics.RenderWindowChart(cfg.ChartFile, cfg.ProfileDb, windows); err != nil {
			return err
		}
	}
	printWindows(os.Stdout, windows)
	return nil
}

func printWindows(w io.Writer, windows []statistics.Window) {
	stats := statistics.ComputeWindowStats(windows)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Windows", "Mean", "StdDev", "Min", "Max"})
	t.AppendRow(table.Row{
		stats.Windows,
		fmt.Sprintf("%.4f", stats.Mean),
		fmt.Sprintf("%.4f", stats.StdDev),
		fmt.Sprintf("%.4f", stats.Min),
		fmt.Sprintf("%.4f", stats.Max),
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}
