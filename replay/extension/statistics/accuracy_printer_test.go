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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testSummary = replay.Summary{Branches: 3, Conditional: 2, Mispredicted: 1, Emitted: 2, Instructions: 5}

func TestAccuracyPrinter_LogsSummaryTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	cfg := &config.Config{Predictor: "gshare", TracePath: "loop.gz"}
	ext := makeAccuracyPrinter(cfg, log)

	log.EXPECT().Noticef("Prediction summary\n%s", gomock.Any()).Do(func(_ string, args ...any) {
		rendered := args[0].(string)
		assert.Contains(t, rendered, "gshare loop.gz")
		assert.Contains(t, rendered, "50.0000 %")
		assert.Contains(t, rendered, "200.0000")
	})

	require.NoError(t, ext.PostRun(replay.State{}, &replay.Context{Summary: testSummary}, nil))
}

func TestAccuracyPrinter_AppendsToSummaryFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	path := filepath.Join(t.TempDir(), "summary.txt")
	cfg := &config.Config{Predictor: "bimodal", SummaryFile: path}
	ext := makeAccuracyPrinter(cfg, log)

	log.EXPECT().Noticef(gomock.Any(), gomock.Any()).Times(2)
	ctx := &replay.Context{Summary: testSummary}
	require.NoError(t, ext.PostRun(replay.State{}, ctx, nil))
	require.NoError(t, ext.PostRun(replay.State{}, ctx, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rendered := renderSummary(cfg, testSummary)
	assert.Equal(t, rendered+"\n"+rendered+"\n", string(data))
}

func TestAccuracyPrinter_SkipsFailedRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	ext := makeAccuracyPrinter(&config.Config{}, log)
	assert.NoError(t, ext.PostRun(replay.State{}, &replay.Context{}, errors.New("broken trace")))
}
