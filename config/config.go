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
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ArgumentType enumerates the positional argument layouts of the commands.
type ArgumentType int

const (
	NoArgs ArgumentType = iota
	TraceArg
	TraceAndOutputArgs
	InputAndTraceArgs
	ProfileDbArg
)

// Config holds everything a command needs to run.
type Config struct {
	AppName     string
	CommandName string

	TracePath  string // binary branch trace
	OutputPath string // verdict lines, "-" is stdout
	InputPath  string // text trace consumed by convert

	Predictor        string
	TableBits        uint
	HistoryBits      uint
	WindowSize       uint64
	ProfileDb        string
	ChartFile        string
	SummaryFile      string
	ProgressInterval time.Duration
	CPUProfile       string
	LogLevel         string
}

// NewConfig collects the flags of ctx and the positional arguments
// expected by argType into a validated Config.
func NewConfig(ctx *cli.Context, argType ArgumentType) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.setArguments(ctx.Args().Slice(), argType); err != nil {
		return nil, errors.Wrapf(err, "usage: %s", usage(ctx))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) setArguments(args []string, argType ArgumentType) error {
	switch argType {
	case NoArgs:
		if len(args) != 0 {
			return errors.Newf("unexpected arguments %v", args)
		}
	case TraceArg:
		if len(args) != 1 {
			return errors.New("command requires exactly one argument: the trace file")
		}
		cfg.TracePath = args[0]
	case TraceAndOutputArgs:
		if len(args) != 2 {
			return errors.New("command requires exactly two arguments: the trace file and the output file")
		}
		cfg.TracePath = args[0]
		cfg.OutputPath = args[1]
	case InputAndTraceArgs:
		if len(args) != 2 {
			return errors.New("command requires exactly two arguments: the text input and the trace file")
		}
		cfg.InputPath = args[0]
		cfg.TracePath = args[1]
	case ProfileDbArg:
		if len(args) != 1 {
			return errors.New("command requires exactly one argument: the profile database")
		}
		cfg.ProfileDb = args[0]
	default:
		return errors.Newf("unknown argument type %d", argType)
	}
	return nil
}

func (cfg *Config) validate() error {
	if cfg.WindowSize == 0 {
		return errors.New("window size must be positive")
	}
	if cfg.ProgressInterval < 0 {
		return errors.Newf("progress interval must not be negative, got %v", cfg.ProgressInterval)
	}
	switch cfg.CommandName {
	case "info", "convert", "windows":
		return nil
	}
	if _, err := predictor.New(cfg.Predictor, cfg.PredictorConfig()); err != nil {
		return err
	}
	return nil
}

// PredictorConfig returns the table geometry for the configured predictor.
func (cfg *Config) PredictorConfig() predictor.Config {
	return predictor.Config{
		TableBits:   cfg.TableBits,
		HistoryBits: cfg.HistoryBits,
	}
}

func usage(ctx *cli.Context) string {
	if ctx.Command != nil && ctx.Command.ArgsUsage != "" {
		return ctx.Command.HelpName + " " + ctx.Command.ArgsUsage
	}
	if ctx.App != nil {
		return ctx.App.HelpName + " " + ctx.App.ArgsUsage
	}
	return ""
}
