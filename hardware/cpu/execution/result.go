// This file is part of GoAdvance.
//
// GoAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoAdvance.  If not, see <https://www.gnu.org/licenses/>.

// Package execution holds the trace and warning types produced by a single
// Step, kept apart from the cpu package itself so that a host wanting to
// inspect execution history (a disassembler, a trace log) doesn't need to
// import the whole CPU.
package execution

// Result records what a single Step did. It is rebuilt fresh by every call
// to Step, never retained or mutated afterwards by the CPU - callers that
// want history must copy it.
type Result struct {
	// Address is the address the executing instruction was fetched from -
	// not PC, which by the time Step returns already points two
	// instructions ahead.
	Address uint32

	// Thumb is the execution state the instruction was fetched and decoded
	// in.
	Thumb bool

	// Size is the instruction word size in bytes: 4 in ARM state, 2 in
	// Thumb state.
	Size uint32

	// Opcode is the raw fetched opcode, widened to 32 bits for Thumb too.
	Opcode uint32

	// ConditionFailed is true when an ARM instruction's condition did not
	// hold; in that case nothing below PipelineFlushed is meaningful. A
	// Thumb conditional branch that is not taken leaves it false.
	ConditionFailed bool

	// PipelineFlushed mirrors the CPU's own flag at the end of the step:
	// true if PC was advanced by twice the instruction size in effect after
	// the step (which differs from Size when BX switched state) rather than
	// by Size.
	PipelineFlushed bool

	// Warning is set if the instruction triggered one of the encoding
	// warnings or decoded as structurally undefined (see the Warning type).
	// The zero value, NoWarning, means nothing of note happened.
	Warning Warning
}

// Reset clears r back to its zero value so that it can be reused for the
// next Step without a fresh allocation.
func (r *Result) Reset() {
	*r = Result{}
}
