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

package instructions

// Thumb carries a decoded Thumb-state opcode. Unlike ARM, most Thumb
// formats are unconditional; only ConditionalBranch carries a genuine
// Condition (condition 0xF there decodes to SoftwareInterrupt instead - see
// DecodeThumb).
type Thumb struct {
	Variant ThumbVariant
}

// ThumbVariant is implemented by every decoded Thumb instruction shape.
type ThumbVariant interface {
	thumbVariant()
}

// MoveShiftedRegister is LSL/LSR/ASR Rd, Rs, #offset (format 1).
type MoveShiftedRegister struct {
	Op     ShiftType
	Offset uint8
	Rs, Rd uint8
}

func (MoveShiftedRegister) thumbVariant() {}

// AddSubtract is ADD/SUB Rd, Rs, Rn|#imm3 (format 2).
type AddSubtract struct {
	Immediate bool
	Subtract  bool
	RnOrImm   uint8
	Rs, Rd    uint8
}

func (AddSubtract) thumbVariant() {}

// MovCmpAddSubImmOp names the four format-3 opcodes.
type MovCmpAddSubImmOp uint8

const (
	OpMOVImm MovCmpAddSubImmOp = iota
	OpCMPImm
	OpADDImm
	OpSUBImm
)

// MovCmpAddSubImmediate is MOV/CMP/ADD/SUB Rd, #imm8 (format 3).
type MovCmpAddSubImmediate struct {
	Op  MovCmpAddSubImmOp
	Rd  uint8
	Imm uint8
}

func (MovCmpAddSubImmediate) thumbVariant() {}

// AluOp names the sixteen format-4 opcodes - the Thumb ALU operations,
// which reuse most ARM data-processing mnemonics plus a few of their own.
type AluOp uint8

const (
	AluAND AluOp = iota
	AluEOR
	AluLSL
	AluLSR
	AluASR
	AluADC
	AluSBC
	AluROR
	AluTST
	AluNEG
	AluCMP
	AluCMN
	AluORR
	AluMUL
	AluBIC
	AluMVN
)

// AluOperations is a two-register ALU op, Rd, Rs (format 4).
type AluOperations struct {
	Op     AluOp
	Rs, Rd uint8
}

func (AluOperations) thumbVariant() {}

// HiRegOp names the format-5 operations.
type HiRegOp uint8

const (
	HiADD HiRegOp = iota
	HiCMP
	HiMOV
	HiBX
)

// HiRegisterOperations is ADD/CMP/MOV/BX over the full register file,
// reached from Thumb's otherwise 3-bit register fields via H1/H2 (format 5).
// Rd and Rs are already adjusted by +8 where H1/H2 is set.
type HiRegisterOperations struct {
	Op     HiRegOp
	Rs, Rd uint8
}

func (HiRegisterOperations) thumbVariant() {}

// PcRelativeLoad is LDR Rd, [PC, #word] (format 6).
type PcRelativeLoad struct {
	Rd   uint8
	Word uint32
}

func (PcRelativeLoad) thumbVariant() {}

// LoadStoreRegisterOffset is LDR/STR{B} Rd, [Rb, Ro] (format 7).
type LoadStoreRegisterOffset struct {
	Load       bool
	Byte       bool
	Ro, Rb, Rd uint8
}

func (LoadStoreRegisterOffset) thumbVariant() {}

// LoadStoreSignExtendedHalfword is LDRH/LDSB/LDSH/STRH Rd, [Rb, Ro] (format 8).
type LoadStoreSignExtendedHalfword struct {
	Sign       bool
	Half       bool
	Ro, Rb, Rd uint8
}

func (LoadStoreSignExtendedHalfword) thumbVariant() {}

// LoadStoreImmediateOffset is LDR/STR{B} Rd, [Rb, #offset] (format 9). Offset
// is stored already scaled: x4 for word access, x1 for byte.
type LoadStoreImmediateOffset struct {
	Load    bool
	Byte    bool
	Offset  uint32
	Rb, Rd  uint8
}

func (LoadStoreImmediateOffset) thumbVariant() {}

// LoadStoreHalfword is LDRH/STRH Rd, [Rb, #offset] (format 10). Offset is
// stored already scaled x2.
type LoadStoreHalfword struct {
	Load   bool
	Offset uint32
	Rb, Rd uint8
}

func (LoadStoreHalfword) thumbVariant() {}

// SpRelativeLoad is LDR/STR Rd, [SP, #word] (format 11).
type SpRelativeLoad struct {
	Load bool
	Rd   uint8
	Word uint32
}

func (SpRelativeLoad) thumbVariant() {}

// LoadAddress is ADD Rd, PC|SP, #word (format 12).
type LoadAddress struct {
	SP   bool
	Rd   uint8
	Word uint32
}

func (LoadAddress) thumbVariant() {}

// AddOffsetStackPointer is ADD SP, #+/-word (format 13).
type AddOffsetStackPointer struct {
	Negative bool
	Word     uint32
}

func (AddOffsetStackPointer) thumbVariant() {}

// PushPopRegister is PUSH/POP {Rlist}{, LR|PC} (format 14).
type PushPopRegister struct {
	Load bool

	// StoreLR, when !Load, pushes LR after the register list; LoadPC, when
	// Load, pops PC after the register list. Only one of the two is ever
	// meaningful for a given instruction, but keeping both named makes the
	// execution switch read naturally.
	StoreLR      bool
	LoadPC       bool
	RegisterList uint8
}

func (PushPopRegister) thumbVariant() {}

// MultipleLoad is LDMIA/STMIA Rb!, {Rlist} (format 15).
type MultipleLoad struct {
	Load         bool
	Rb           uint8
	RegisterList uint8
}

func (MultipleLoad) thumbVariant() {}

// ConditionalBranch is Bcc label (format 16). Condition AL (0xE) is
// unpredictable in this format; it still decodes here and execution warns
// about it. Condition 0xF never reaches here - DecodeThumb routes opcode
// 0xDF (that condition's slot) to SoftwareInterrupt instead.
type ConditionalBranch struct {
	Condition Condition
	Offset    int32
}

func (ConditionalBranch) thumbVariant() {}

// SoftwareInterruptThumb is SWI #comment (format 17). Distinct from the ARM
// SoftwareInterrupt type since both live in this package.
type SoftwareInterruptThumb struct {
	Comment uint8
}

func (SoftwareInterruptThumb) thumbVariant() {}

// UnconditionalBranch is B label (format 18).
type UnconditionalBranch struct {
	Offset int32
}

func (UnconditionalBranch) thumbVariant() {}

// LongBranchWithLink is BL label, split across two 16 bit opcodes (format
// 19). High is true for the first half (which only updates LR).
type LongBranchWithLink struct {
	High   bool
	Offset uint32
}

func (LongBranchWithLink) thumbVariant() {}

// UndefinedThumb marks a 16 bit pattern that falls into one of the gaps the
// nineteen Thumb formats leave unassigned (parts of format 13/14's shared
// 0xB nibble, and 0xE800-0xEFFF, the upper half of format 18's 0xE
// nibble). Distinct from the ARM Undefined type since the two packages'
// opcodes and logging context differ.
type UndefinedThumb struct {
	Opcode uint32
}

func (UndefinedThumb) thumbVariant() {}
