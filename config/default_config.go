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

	"github.com/0xsoniclabs/bpred/logger"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		Predictor:        getFlagValue(ctx, PredictorFlag).(string),
		TableBits:        getFlagValue(ctx, TableBitsFlag).(uint),
		HistoryBits:      getFlagValue(ctx, HistoryBitsFlag).(uint),
		WindowSize:       getFlagValue(ctx, WindowSizeFlag).(uint64),
		ProfileDb:        getFlagValue(ctx, ProfileDbFlag).(string),
		ChartFile:        getFlagValue(ctx, ChartFlag).(string),
		SummaryFile:      getFlagValue(ctx, SummaryFileFlag).(string),
		ProgressInterval: getFlagValue(ctx, ProgressIntervalFlag).(time.Duration),
		CPUProfile:       getFlagValue(ctx, CpuProfileFlag).(string),
		LogLevel:         getFlagValue(ctx, logger.LogLevelFlag).(string),
	}
	if ctx.App != nil {
		cfg.AppName = ctx.App.HelpName
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}
	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	for _, cmdFlag := range commandFlags(ctx) {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}
		case cli.UintFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint(f.Name)
			}
		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}
		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}
		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}
		case cli.DurationFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Duration(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.UintFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.DurationFlag:
		return f.Value
	}
	return nil
}

// commandFlags lists the flags declared by the running command, or by the
// app itself when the default action runs.
func commandFlags(ctx *cli.Context) []cli.Flag {
	if ctx.Command != nil && len(ctx.Command.Flags) > 0 {
		return ctx.Command.Flags
	}
	if ctx.App != nil {
		return ctx.App.Flags
	}
	return nil
}
