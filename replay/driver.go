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

import (
	"io"
	"runtime/debug"

	"github.com/0xsoniclabs/bpred/logger"
	"github.com/0xsoniclabs/bpred/predictor"
	"github.com/0xsoniclabs/bpred/tracer"
	"github.com/cockroachdb/errors"
)

// Phase is the life cycle stage of a Driver.
type Phase int

const (
	Running Phase = iota
	Done
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return "unknown phase"
}

// Params are the collaborators of a single replay pass.
type Params struct {
	Predictor predictor.Predictor
	Sink      Sink
}

// Driver pulls branches from a Decoder, scores the predictions of a
// Predictor against the recorded outcomes and emits one verdict per
// conditional branch. A Driver performs exactly one pass.
type Driver struct {
	decoder Decoder
	phase   Phase
	summary Summary
	log     logger.Logger
}

func NewDriver(decoder Decoder, logLevel string) *Driver {
	return newDriver(decoder, logger.NewLogger(logLevel, "Replay"))
}

func newDriver(decoder Decoder, log logger.Logger) *Driver {
	return &Driver{
		decoder: decoder,
		phase:   Running,
		log:     log,
	}
}

func (d *Driver) Phase() Phase {
	return d.phase
}

func (d *Driver) Summary() Summary {
	return d.summary
}

// Run replays the whole trace. Decoder failures abort the pass; the
// returned error still matches the decoder's error type with errors.As.
// Panics raised by the predictor, the extensions or call-order violations
// are returned as *PanicError.
func (d *Driver) Run(params Params, extensions []Extension) (res error) {
	if d.phase == Done {
		return errors.New("replay pass has already been performed")
	}
	if params.Predictor == nil {
		return errors.New("no predictor provided")
	}
	if params.Sink == nil {
		return errors.New("no sink provided")
	}
	defer func() {
		d.phase = Done
	}()

	ctx := &Context{}
	state := State{}

	defer func() {
		ctx.Summary = d.summary
		if err := signalPostRun(state, ctx, res, extensions); err != nil {
			res = errors.Join(res, err)
		}
	}()

	if err := signalPreRun(state, ctx, extensions); err != nil {
		return err
	}

	return d.runPass(params, extensions, ctx, &state)
}

func (d *Driver) runPass(params Params, extensions []Extension, ctx *Context, state *State) (res error) {
	defer func() {
		if r := recover(); r != nil {
			res = NewPanicError(r, debug.Stack())
		}
	}()

	for {
		rec, err := d.decoder.Advance()
		if errors.Is(err, io.EOF) {
			d.log.Debugf("end of trace after %d branches", d.summary.Branches)
			return nil
		}
		if err != nil {
			assertProtocol(err)
			return errors.Wrapf(err, "replay aborted after %d branches", d.summary.Branches)
		}

		*state = State{Record: rec}
		ctx.Summary = d.summary
		if err = forEachForward(extensions, func(e Extension) error {
			return e.PreBranch(*state, ctx)
		}); err != nil {
			return err
		}

		predicted := params.Predictor.GetPrediction(rec)
		actual, err := d.decoder.CommitPrediction(predicted)
		if err != nil {
			assertProtocol(err)
			return errors.Wrapf(err, "cannot commit prediction of branch %d", rec.Index)
		}

		instructions := d.decoder.InstructionsRetired()
		d.summary.Branches++
		d.summary.Instructions = instructions
		if rec.IsConditional {
			d.summary.Conditional++
			if predicted != actual {
				d.summary.Mispredicted++
			}
			if err = params.Sink.Emit(rec.InstructionAddress, actual, instructions); err != nil {
				return err
			}
			d.summary.Emitted++
		}

		params.Predictor.Update(rec, actual)

		state.Predicted = predicted
		state.Actual = actual
		ctx.Summary = d.summary
		if err = forEachBackward(extensions, func(e Extension) error {
			return e.PostBranch(*state, ctx)
		}); err != nil {
			return err
		}
	}
}

// assertProtocol panics on call-order violations; those indicate a defect
// in the driver rather than a problem with the trace.
func assertProtocol(err error) {
	var protocolErr *tracer.ProtocolError
	if errors.As(err, &protocolErr) {
		panic(protocolErr)
	}
}

func signalPreRun(state State, ctx *Context, extensions []Extension) error {
	return forEachForward(extensions, func(e Extension) error {
		return e.PreRun(state, ctx)
	})
}

func signalPostRun(state State, ctx *Context, err error, extensions []Extension) error {
	var errs []error
	for i := len(extensions) - 1; i >= 0; i-- {
		if postErr := extensions[i].PostRun(state, ctx, err); postErr != nil {
			errs = append(errs, postErr)
		}
	}
	return errors.Join(errs...)
}

func forEachForward(extensions []Extension, op func(Extension) error) error {
	for _, extension := range extensions {
		if err := op(extension); err != nil {
			return err
		}
	}
	return nil
}

func forEachBackward(extensions []Extension, op func(Extension) error) error {
	for i := len(extensions) - 1; i >= 0; i-- {
		if err := op(extensions[i]); err != nil {
			return err
		}
	}
	return nil
}
