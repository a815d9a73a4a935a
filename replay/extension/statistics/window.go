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
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Window aggregates the conditional branches of a fixed size slice of the trace.
type Window struct {
	Index            int64   `db:"idx"`
	FirstInstruction int64   `db:"first_instruction"`
	LastInstruction  int64   `db:"last_instruction"`
	Branches         int64   `db:"branches"`
	Mispredicted     int64   `db:"mispredicted"`
	Rate             float64 `db:"rate"`
}

const (
	createWindowTable = `DROP TABLE IF EXISTS windows;
CREATE TABLE windows (
	idx INTEGER PRIMARY KEY,
	first_instruction INTEGER NOT NULL,
	last_instruction INTEGER NOT NULL,
	branches INTEGER NOT NULL,
	mispredicted INTEGER NOT NULL,
	rate REAL NOT NULL
)`
	insertWindow = `INSERT INTO windows (idx, first_instruction, last_instruction, branches, mispredicted, rate) VALUES (?, ?, ?, ?, ?, ?)`
	selectWindows = `SELECT idx, first_instruction, last_instruction, branches, mispredicted, rate FROM windows ORDER BY idx`
)

func (w Window) row() []any {
	return []any{w.Index, w.FirstInstruction, w.LastInstruction, w.Branches, w.Mispredicted, w.Rate}
}

// ReadWindows loads a misprediction profile written by the window profiler.
func ReadWindows(path string) ([]Window, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open profile %s", path)
	}
	defer db.Close()

	var windows []Window
	if err = db.Select(&windows, selectWindows); err != nil {
		return nil, errors.Wrapf(err, "cannot read windows from %s", path)
	}
	return windows, nil
}

// WindowStats describes the distribution of per-window misprediction rates.
type WindowStats struct {
	Windows int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

func ComputeWindowStats(windows []Window) WindowStats {
	if len(windows) == 0 {
		return WindowStats{}
	}
	rates := make([]float64, len(windows))
	weights := make([]float64, len(windows))
	for i, w := range windows {
		rates[i] = w.Rate
		weights[i] = float64(w.Branches)
	}
	res := WindowStats{
		Windows: len(windows),
		Min:     floats.Min(rates),
		Max:     floats.Max(rates),
	}
	if len(windows) == 1 {
		res.Mean = rates[0]
		return res
	}
	res.Mean, res.StdDev = stat.MeanStdDev(rates, weights)
	return res
}
