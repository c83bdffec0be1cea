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

package execution

// Warning names one of the non-fatal conditions execution can hit: an
// encoding that is architecturally unpredictable, or an opcode that decoded
// as structurally undefined. Execution always continues past these - the
// core logs and proceeds with the closest reasonable interpretation rather
// than refusing to run.
type Warning string

const (
	NoWarning Warning = ""

	// WritePCAsOperand is raised when R15 is used as an operand where the
	// architecture documents the result as unpredictable (the multiply
	// family, mostly).
	WritePCAsOperand Warning = "R15 used as operand"

	// MultiplyRdEqualsRm is raised when Rd == Rm in a multiply instruction.
	MultiplyRdEqualsRm Warning = "Rd == Rm in multiply"

	// WriteBackWithPostIndex is raised when both write-back and post-index
	// are specified; post-index already implies write-back architecturally.
	WriteBackWithPostIndex Warning = "write-back combined with post-index"

	// SetFlagsInUserMode is raised when a data-processing instruction sets
	// S with Rd == R15 outside a mode that has an SPSR to restore from.
	SetFlagsInUserMode Warning = "S bit set in User mode"

	// SPSRAccessOutsideException is raised when MRS/MSR, or an LDM with the
	// S bit and R15 in its list, touch SPSR from User or System mode, which
	// bank none.
	SPSRAccessOutsideException Warning = "SPSR accessed outside an exception mode"

	// StructurallyUndefined is raised when the decoder could not classify
	// the opcode into any defined variant.
	StructurallyUndefined Warning = "structurally undefined opcode"

	// CoprocessorNoOp is raised when a coprocessor instruction executes;
	// the GBA has no coprocessor so it is always a no-op.
	CoprocessorNoOp Warning = "coprocessor instruction executed as no-op"

	// ConditionALUnpredictableInThumb is raised by a Thumb conditional
	// branch whose condition field happens to be AL, which is
	// unpredictable in that 16 bit format (the branch is still taken).
	ConditionALUnpredictableInThumb Warning = "condition AL in Thumb conditional branch"
)
