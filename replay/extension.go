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

package replay

import "github.com/0xsoniclabs/bpred/tracer"

// State is the per-branch view handed to extensions. In PreBranch only
// Record is set; Predicted and Actual are filled in for PostBranch.
type State struct {
	Record    tracer.BranchRecord
	Predicted bool
	Actual    bool
}

// Context carries information shared between the driver and its extensions
// for the duration of one pass.
type Context struct {
	// Summary holds the scoring counters as of the last completed branch.
	Summary Summary
}

//go:generate mockgen -source extension.go -destination extension_mock.go -package replay

// Extension observes a replay pass. PreRun and PostRun bracket the pass;
// PostRun is always called and receives the error the pass ended with.
// Pre-hooks are called in list order, post-hooks in reverse order.
type Extension interface {
	PreRun(State, *Context) error
	PreBranch(State, *Context) error
	PostBranch(State, *Context) error
	PostRun(State, *Context, error) error
}
