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
	"os"
	"path/filepath"
	"strings"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/tracer"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var traceNameFlag = cli.StringFlag{
	Name:  "name",
	Usage: "name stored in the trace header (default: input file name)",
}

var ConvertCmd = cli.Command{
	Action:    RunConvert,
	Name:      "convert",
	Usage:     "encodes a text branch listing as a binary trace",
	ArgsUsage: "<text-input> <trace>",
	Flags: []cli.Flag{
		&traceNameFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Each line of <text-input> describes one branch:
<gap> <class> <address> <taken> [<target>]

<gap> is the number of non-branch instructions preceding the branch,
<class> a combination of c (conditional), i (indirect), l (call) and
r (return) or "-", <taken> is 0 or 1. Numbers may be given in decimal
or with a 0x prefix. '#' starts a comment. A <trace> ending in .zst is
zstd compressed, any other name is gzip compressed.`,
}

func RunConvert(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.InputAndTraceArgs)
	if err != nil {
		return err
	}
	name := ctx.String(traceNameFlag.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(cfg.InputPath), filepath.Ext(cfg.InputPath))
	}
	written, err := convertTrace(cfg.InputPath, cfg.TracePath, name)
	if err != nil {
		return err
	}
	logger.NewLogger(cfg.LogLevel, "Convert").Noticef("Wrote %d branches to %s", written, cfg.TracePath)
	return nil
}

func convertTrace(input string, output string, name string) (written uint64, err error) {
	in, err := os.Open(input)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot open %s", input)
	}
	defer func() {
		err = errors.Join(err, in.Close())
	}()

	file, err := tracer.NewFileWriter(output)
	if err != nil {
		return 0, err
	}
	encoder, err := tracer.NewEncoder(file, tracer.Header{Name: name})
	if err != nil {
		return 0, errors.Join(err, file.Close())
	}
	defer func() {
		err = errors.Join(err, encoder.Close())
	}()

	err = tracer.ReadTextTrace(in, func(entry tracer.Entry) error {
		return encoder.Write(entry.Record, entry.Taken, entry.Gap)
	})
	if err != nil {
		return 0, errors.Wrapf(err, "cannot convert %s", input)
	}
	return encoder.Written(), nil
}
