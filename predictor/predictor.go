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

// Package predictor defines the capability the replay driver uses to query a
// branch prediction algorithm, together with a few reference algorithms.
package predictor

import (
	"sort"

	"github.com/0xsoniclabs/bpred/tracer"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

//go:generate mockgen -source predictor.go -destination predictor_mock.go -package predictor

// Predictor guesses the outcome of a branch before it is revealed and learns
// from the recorded outcome afterwards. Records are passed by value; a
// predictor cannot influence the trace it is evaluated on.
type Predictor interface {
	GetPrediction(rec tracer.BranchRecord) bool
	Update(rec tracer.BranchRecord, taken bool)
}

// Config holds the table geometry shared by the table-based predictors.
type Config struct {
	// TableBits is log2 of the number of pattern table entries.
	TableBits uint
	// HistoryBits is the length of the global history register.
	HistoryBits uint
}

const (
	DefaultTableBits   = 12
	DefaultHistoryBits = 12
	maxTableBits       = 28
)

// DefaultConfig returns the geometry used when no flags are given.
func DefaultConfig() Config {
	return Config{
		TableBits:   DefaultTableBits,
		HistoryBits: DefaultHistoryBits,
	}
}

func (c Config) validate() error {
	if c.TableBits == 0 || c.TableBits > maxTableBits {
		return errors.Newf("table bits must be within [1, %d], got %d", maxTableBits, c.TableBits)
	}
	if c.HistoryBits > 64 {
		return errors.Newf("history bits must be at most 64, got %d", c.HistoryBits)
	}
	return nil
}

type factory func(Config) Predictor

var registry = map[string]factory{
	"always-taken": func(Config) Predictor { return NewStatic(true) },
	"never-taken":  func(Config) Predictor { return NewStatic(false) },
	"bimodal":      func(c Config) Predictor { return NewBimodal(c) },
	"gshare":       func(c Config) Predictor { return NewGshare(c) },
	"tournament":   func(c Config) Predictor { return NewTournament(c) },
}

// New creates the predictor registered under name.
func New(name string, cfg Config) (Predictor, error) {
	create, found := registry[name]
	if !found {
		return nil, errors.Newf("unknown predictor %q; available: %v", name, Names())
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration for predictor %s", name)
	}
	return create(cfg), nil
}

// Names returns the registered predictor names in lexical order.
func Names() []string {
	names := maps.Keys(registry)
	sort.Strings(names)
	return names
}

// counter is a 2-bit saturating counter; values 2 and 3 predict taken.
type counter uint8

const weaklyTaken counter = 2

func (c counter) taken() bool {
	return c >= 2
}

func (c counter) update(taken bool) counter {
	if taken {
		if c < 3 {
			return c + 1
		}
		return c
	}
	if c > 0 {
		return c - 1
	}
	return c
}

func newCounterTable(bits uint) []counter {
	table := make([]counter, 1<<bits)
	for i := range table {
		table[i] = weaklyTaken
	}
	return table
}

// pcIndex drops the alignment bits of the instruction address.
func pcIndex(address uint64, mask uint64) uint64 {
	return (address >> 2) & mask
}
