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

package extension

import "github.com/0xsoniclabs/bpred/replay"

// NilExtension is an extension with no effect. It can be embedded by
// extensions that only need to override a few hooks.
type NilExtension struct{}

func (NilExtension) PreRun(replay.State, *replay.Context) error         { return nil }
func (NilExtension) PreBranch(replay.State, *replay.Context) error      { return nil }
func (NilExtension) PostBranch(replay.State, *replay.Context) error     { return nil }
func (NilExtension) PostRun(replay.State, *replay.Context, error) error { return nil }
