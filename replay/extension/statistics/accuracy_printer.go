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
	"fmt"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension"
	"github.com/0xsoniclabs/bpred/utils"
	"github.com/jedib0t/go-pretty/v6/table"
)

// MakeAccuracyPrinter creates an extension rendering the scoring summary of
// the pass as a table. The table is logged and, if cfg.SummaryFile is set,
// appended to that file.
func MakeAccuracyPrinter(cfg *config.Config) replay.Extension {
	return makeAccuracyPrinter(cfg, logger.NewLogger(cfg.LogLevel, "Accuracy-Printer"))
}

func makeAccuracyPrinter(cfg *config.Config, log logger.Logger) *accuracyPrinter {
	p := &accuracyPrinter{cfg: cfg, log: log}
	p.printers = utils.NewPrinters().AddPrinterToFile(cfg.SummaryFile, func() string {
		return p.table + "\n"
	})
	return p
}

type accuracyPrinter struct {
	extension.NilExtension
	cfg      *config.Config
	log      logger.Logger
	printers *utils.Printers
	table    string
}

func (p *accuracyPrinter) PostRun(_ replay.State, ctx *replay.Context, err error) error {
	if err != nil {
		// a partial summary is misleading
		return nil
	}
	p.table = renderSummary(p.cfg, ctx.Summary)
	p.log.Noticef("Prediction summary\n%s", p.table)
	return p.printers.Print()
}

func renderSummary(cfg *config.Config, summary replay.Summary) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s %s", cfg.Predictor, cfg.TracePath))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"branches", summary.Branches},
		{"conditional", summary.Conditional},
		{"mispredicted", summary.Mispredicted},
		{"instructions", summary.Instructions},
		{"accuracy", fmt.Sprintf("%.4f %%", summary.Accuracy())},
		{"MPKI", fmt.Sprintf("%.4f", summary.MPKI())},
	})
	t.SetStyle(table.StyleLight)
	return t.Render()
}
