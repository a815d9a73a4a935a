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

package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/0xsoniclabs/bpred/config"
	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/replay"
	"github.com/0xsoniclabs/bpred/replay/extension"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestProgressLogger_NoLoggerIsCreatedIfDisabled(t *testing.T) {
	cfg := &config.Config{}
	ext := MakeProgressLogger(cfg, 0)
	if _, ok := ext.(extension.NilExtension); !ok {
		t.Errorf("progress logger is enabled although not set in configuration")
	}
}

func TestProgressLogger_IntervalFallsBackToConfig(t *testing.T) {
	cfg := &config.Config{ProgressInterval: time.Minute, LogLevel: "critical"}
	ext, ok := MakeProgressLogger(cfg, 0).(*progressLogger)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, ext.interval)
}

func TestProgressLogger_LoggingHappens(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	ext := makeProgressLogger(50*time.Millisecond, 0, log)

	gomock.InOrder(
		log.EXPECT().Noticef("Replay started, reporting every %v", 50*time.Millisecond),
		log.EXPECT().Noticef(progressReportFormat, gomock.Any(), uint64(2), uint64(7), gomock.Any(), 50.0),
		log.EXPECT().Noticef(finalReportFormat, uint32(0), uint32(0), gomock.Any(), uint64(3), uint64(9), gomock.Any(), gomock.Any()),
	)

	ctx := &replay.Context{}
	assert.NoError(t, ext.PreRun(replay.State{}, ctx))

	// too early for a report
	ctx.Summary = replay.Summary{Branches: 1, Conditional: 1, Instructions: 3}
	assert.NoError(t, ext.PostBranch(replay.State{}, ctx))

	time.Sleep(100 * time.Millisecond)
	ctx.Summary = replay.Summary{Branches: 2, Conditional: 2, Mispredicted: 1, Instructions: 7}
	assert.NoError(t, ext.PostBranch(replay.State{}, ctx))

	ctx.Summary = replay.Summary{Branches: 3, Conditional: 2, Mispredicted: 1, Instructions: 9}
	assert.NoError(t, ext.PostBranch(replay.State{}, ctx))
	assert.NoError(t, ext.PostRun(replay.State{}, ctx, nil))
}

func TestProgressLogger_ClockIsOnlyCheckedOnMask(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	ext := makeProgressLogger(time.Nanosecond, 3, log)

	log.EXPECT().Noticef(gomock.Any(), gomock.Any()).Times(1)
	log.EXPECT().Noticef(progressReportFormat, gomock.Any(), uint64(4), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	ctx := &replay.Context{}
	assert.NoError(t, ext.PreRun(replay.State{}, ctx))
	for i := uint64(1); i <= 5; i++ {
		time.Sleep(time.Millisecond)
		ctx.Summary = replay.Summary{Branches: i}
		assert.NoError(t, ext.PostBranch(replay.State{}, ctx))
	}
}

func TestProgressLogger_FailedRunIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	ext := makeProgressLogger(time.Hour, 0, log)
	injectedErr := errors.New("malformed record")

	log.EXPECT().Noticef(gomock.Any(), gomock.Any())
	log.EXPECT().Errorf("Replay failed after %d branches: %v", uint64(4), injectedErr)

	ctx := &replay.Context{Summary: replay.Summary{Branches: 4}}
	assert.NoError(t, ext.PreRun(replay.State{}, ctx))
	assert.NoError(t, ext.PostRun(replay.State{}, ctx, injectedErr))
}
