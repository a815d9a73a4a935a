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

import "fmt"

// PanicError carries a panic recovered during a replay pass together with
// the stack of the panicking goroutine.
type PanicError struct {
	message string
	stack   []byte
	cause   error
}

func NewPanicError(recovered any, stack []byte) *PanicError {
	err := &PanicError{
		message: fmt.Sprint(recovered),
		stack:   stack,
	}
	if cause, ok := recovered.(error); ok {
		err.cause = cause
	}
	return err
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("PanicError: %s\nStack Trace:\n%s", e.message, string(e.stack))
}

// Unwrap returns the recovered value if it was an error.
func (e *PanicError) Unwrap() error {
	return e.cause
}
