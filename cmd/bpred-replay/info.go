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
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/tracer"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

var InfoCmd = cli.Command{
	Action:    RunInfo,
	Name:      "info",
	Usage:     "prints the header and branch class counts of a trace",
	ArgsUsage: "<trace>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
	},
}

type traceInfo struct {
	header       tracer.Header
	records      uint64
	conditional  uint64
	taken        uint64
	indirect     uint64
	calls        uint64
	returns      uint64
	withTarget   uint64
	instructions uint64
	bytes        uint64
}

func RunInfo(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.TraceArg)
	if err != nil {
		return err
	}
	info, err := scanTrace(cfg.TracePath)
	if err != nil {
		return err
	}
	return printInfo(os.Stdout, cfg.TracePath, info)
}

// scanTrace walks the whole trace; the committed prediction is irrelevant.
func scanTrace(path string) (res traceInfo, err error) {
	decoder, err := tracer.Open(path)
	if err != nil {
		return res, err
	}
	defer func() {
		err = errors.Join(err, decoder.Close())
	}()

	res.header = decoder.Header()
	for {
		rec, err := decoder.Advance()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		taken, err := decoder.CommitPrediction(false)
		if err != nil {
			return res, err
		}
		res.records++
		if rec.IsConditional {
			res.conditional++
			if taken {
				res.taken++
			}
		}
		if rec.IsIndirect {
			res.indirect++
		}
		if rec.IsCall {
			res.calls++
		}
		if rec.IsReturn {
			res.returns++
		}
		if rec.HasTarget {
			res.withTarget++
		}
	}
	res.instructions = decoder.InstructionsRetired()
	res.bytes = decoder.Offset()
	return res, nil
}

func printInfo(w io.Writer, path string, info traceInfo) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(path)
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"name", info.header.Name},
		{"version", info.header.Version},
		{"records", info.records},
		{"conditional", info.conditional},
		{"conditional taken", info.taken},
		{"indirect", info.indirect},
		{"calls", info.calls},
		{"returns", info.returns},
		{"with target", info.withTarget},
		{"instructions", info.instructions},
		{"decoded bytes", info.bytes},
	})
	if info.conditional > 0 {
		t.AppendFooter(table.Row{"taken rate", fmt.Sprintf("%.2f %%", float64(info.taken)/float64(info.conditional)*100)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
