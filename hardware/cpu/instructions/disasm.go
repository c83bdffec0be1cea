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

import (
	"fmt"
	"strings"
)

// DisassembleARM renders a decoded ARM instruction as text: mnemonic,
// condition suffix, flag suffix, then comma-separated operands, no spaces
// after commas - e.g. "BX R10", "ANDEQS R7,R14,R1,ROR #22".
func DisassembleARM(a ARM) string {
	cond := ""
	if a.Condition != AL {
		cond = a.Condition.String()
	}

	switch v := a.Variant.(type) {
	case BranchAndExchange:
		return fmt.Sprintf("BX%s R%d", cond, v.Rn)

	case Branch:
		link := ""
		if v.Link {
			link = "L"
		}
		return fmt.Sprintf("B%s%s #%d", link, cond, v.Offset)

	case Multiply:
		set := ""
		if v.Set {
			set = "S"
		}
		if v.Accumulate {
			return fmt.Sprintf("MLA%s%s R%d,R%d,R%d,R%d", cond, set, v.Rd, v.Rm, v.Rs, v.Rn)
		}
		return fmt.Sprintf("MUL%s%s R%d,R%d,R%d", cond, set, v.Rd, v.Rm, v.Rs)

	case MultiplyLong:
		sign := "S"
		if v.Unsigned {
			sign = "U"
		}
		op := "MULL"
		if v.Accumulate {
			op = "MLAL"
		}
		set := ""
		if v.Set {
			set = "S"
		}
		return fmt.Sprintf("%s%s%s%s R%d,R%d,R%d,R%d", sign, op, cond, set, v.RdLo, v.RdHi, v.Rm, v.Rs)

	case SingleDataSwap:
		b := ""
		if v.Byte {
			b = "B"
		}
		return fmt.Sprintf("SWP%s%s R%d,R%d,[R%d]", cond, b, v.Rd, v.Rm, v.Rn)

	case SingleDataTransfer:
		mnemonic := "STR"
		if v.Load {
			mnemonic = "LDR"
		}
		b := ""
		if v.Byte {
			b = "B"
		}
		return fmt.Sprintf("%s%s%s R%d,%s", mnemonic, cond, b, v.Rd, disasmAddress(v.Rn, v.PreIndex, v.WriteBack, v.Up, v.Offset))

	case HalfwordTransfer:
		mnemonic := "STR"
		if v.Load {
			mnemonic = "LDR"
		}
		suffix := "H"
		if v.Signed {
			suffix = "SH"
			if !v.Half {
				suffix = "SB"
			}
		}
		offset := fmt.Sprintf("R%d", v.Rm)
		if !v.RegisterOffset {
			offset = fmt.Sprintf("#%d", v.Imm)
		}
		sign := "+"
		if !v.Up {
			sign = "-"
		}
		addr := fmt.Sprintf("[R%d,%s%s]", v.Rn, sign, offset)
		if !v.PreIndex {
			addr = fmt.Sprintf("[R%d],%s%s", v.Rn, sign, offset)
		} else if v.WriteBack {
			addr += "!"
		}
		return fmt.Sprintf("%s%s%s R%d,%s", mnemonic, cond, suffix, v.Rd, addr)

	case BlockDataTransfer:
		mnemonic := "STM"
		if v.Load {
			mnemonic = "LDM"
		}
		dir := "A"
		if v.Up {
			dir = "I"
		}
		when := "A"
		if v.PreIndex {
			when = "B"
		}
		wb := ""
		if v.WriteBack {
			wb = "!"
		}
		s := ""
		if v.PSR {
			s = "^"
		}
		return fmt.Sprintf("%s%s%s%s R%d%s,{%s}%s", mnemonic, dir, when, cond, v.Rn, wb, disasmRegisterList16(v.RegisterList), s)

	case Mrs:
		psr := "CPSR"
		if v.SPSR {
			psr = "SPSR"
		}
		return fmt.Sprintf("MRS%s R%d,%s", cond, v.Rd, psr)

	case Msr:
		psr := "CPSR"
		if v.SPSR {
			psr = "SPSR"
		}
		return fmt.Sprintf("MSR%s %s,R%d", cond, psr, v.Rm)

	case MsrFlag:
		psr := "CPSR_flg"
		if v.SPSR {
			psr = "SPSR_flg"
		}
		if v.IsImmediate {
			return fmt.Sprintf("MSR%s %s,#%d", cond, psr, v.Imm)
		}
		return fmt.Sprintf("MSR%s %s,R%d", cond, psr, v.Rm)

	case DataProcessing:
		operand2 := disasmOperand2(v.Operand2)
		set := ""
		if v.SetFlags {
			set = "S"
		}
		switch v.Op {
		case OpTST, OpTEQ, OpCMP, OpCMN:
			return fmt.Sprintf("%s%s R%d,%s", v.Op, cond, v.Rn, operand2)
		case OpMOV, OpMVN:
			return fmt.Sprintf("%s%s%s R%d,%s", v.Op, cond, set, v.Rd, operand2)
		default:
			return fmt.Sprintf("%s%s%s R%d,R%d,%s", v.Op, cond, set, v.Rd, v.Rn, operand2)
		}

	case CoprocessorDataTransfer:
		return fmt.Sprintf("CDT%s 0x%08X", cond, v.Opcode)

	case CoprocessorDataOperation:
		return fmt.Sprintf("CDP%s 0x%08X", cond, v.Opcode)

	case CoprocessorRegisterTransfer:
		return fmt.Sprintf("MCR/MRC%s 0x%08X", cond, v.Opcode)

	case SoftwareInterrupt:
		return fmt.Sprintf("SWI%s #%d", cond, v.Comment)

	case Undefined:
		return "UND"

	default:
		return "???"
	}
}

func disasmAddress(rn uint8, pre, writeBack, up bool, offset DataTransferOffset) string {
	sign := "+"
	if !up {
		sign = "-"
	}

	expr := ""
	if offset.IsRegister {
		expr = fmt.Sprintf(",%sR%d,%s #%d", sign, offset.Shift.Rm, offset.Shift.Type, offset.Shift.Operand)
	} else if offset.Imm != 0 {
		expr = fmt.Sprintf(",%s#%d", sign, offset.Imm)
	}

	if pre {
		wb := ""
		if writeBack {
			wb = "!"
		}
		return fmt.Sprintf("[R%d%s]%s", rn, expr, wb)
	}
	return fmt.Sprintf("[R%d]%s", rn, expr)
}

func disasmOperand2(o Operand2) string {
	if o.IsImmediate {
		return fmt.Sprintf("#%d", o.Imm)
	}
	if o.Shift.Immediate {
		return fmt.Sprintf("R%d,%s #%d", o.Shift.Rm, o.Shift.Type, o.Shift.Operand)
	}
	return fmt.Sprintf("R%d,%s R%d", o.Shift.Rm, o.Shift.Type, o.Shift.Operand)
}

func disasmRegisterList16(list uint16) string {
	var regs []string
	for i := 0; i < 16; i++ {
		if list&(1<<i) != 0 {
			regs = append(regs, fmt.Sprintf("R%d", i))
		}
	}
	return strings.Join(regs, ",")
}

func disasmRegisterList8(list uint8, extra string) string {
	var regs []string
	for i := 0; i < 8; i++ {
		if list&(1<<i) != 0 {
			regs = append(regs, fmt.Sprintf("R%d", i))
		}
	}
	if extra != "" {
		regs = append(regs, extra)
	}
	return strings.Join(regs, ",")
}

// DisassembleThumb renders a decoded Thumb instruction as text, following
// the same register/operand conventions as DisassembleARM.
func DisassembleThumb(th Thumb) string {
	switch v := th.Variant.(type) {
	case MoveShiftedRegister:
		return fmt.Sprintf("%s R%d,R%d,#%d", v.Op, v.Rd, v.Rs, v.Offset)

	case AddSubtract:
		mnemonic := "ADD"
		if v.Subtract {
			mnemonic = "SUB"
		}
		operand := fmt.Sprintf("R%d", v.RnOrImm)
		if v.Immediate {
			operand = fmt.Sprintf("#%d", v.RnOrImm)
		}
		return fmt.Sprintf("%s R%d,R%d,%s", mnemonic, v.Rd, v.Rs, operand)

	case MovCmpAddSubImmediate:
		names := [...]string{"MOV", "CMP", "ADD", "SUB"}
		return fmt.Sprintf("%s R%d,#%d", names[v.Op], v.Rd, v.Imm)

	case AluOperations:
		names := [...]string{"AND", "EOR", "LSL", "LSR", "ASR", "ADC", "SBC", "ROR", "TST", "NEG", "CMP", "CMN", "ORR", "MUL", "BIC", "MVN"}
		return fmt.Sprintf("%s R%d,R%d", names[v.Op], v.Rd, v.Rs)

	case HiRegisterOperations:
		names := [...]string{"ADD", "CMP", "MOV", "BX"}
		if v.Op == HiBX {
			return fmt.Sprintf("BX R%d", v.Rs)
		}
		return fmt.Sprintf("%s R%d,R%d", names[v.Op], v.Rd, v.Rs)

	case PcRelativeLoad:
		return fmt.Sprintf("LDR R%d,[PC,#%d]", v.Rd, v.Word)

	case LoadStoreRegisterOffset:
		mnemonic := "STR"
		if v.Load {
			mnemonic = "LDR"
		}
		b := ""
		if v.Byte {
			b = "B"
		}
		return fmt.Sprintf("%s%s R%d,[R%d,R%d]", mnemonic, b, v.Rd, v.Rb, v.Ro)

	case LoadStoreSignExtendedHalfword:
		if !v.Sign && !v.Half {
			return fmt.Sprintf("STRH R%d,[R%d,R%d]", v.Rd, v.Rb, v.Ro)
		}
		mnemonic := "LDR"
		suffix := "B"
		if v.Sign {
			mnemonic = "LDS"
		}
		if v.Half {
			suffix = "H"
		}
		return fmt.Sprintf("%s%s R%d,[R%d,R%d]", mnemonic, suffix, v.Rd, v.Rb, v.Ro)

	case LoadStoreImmediateOffset:
		mnemonic := "STR"
		if v.Load {
			mnemonic = "LDR"
		}
		b := ""
		if v.Byte {
			b = "B"
		}
		return fmt.Sprintf("%s%s R%d,[R%d,#%d]", mnemonic, b, v.Rd, v.Rb, v.Offset)

	case LoadStoreHalfword:
		mnemonic := "STRH"
		if v.Load {
			mnemonic = "LDRH"
		}
		return fmt.Sprintf("%s R%d,[R%d,#%d]", mnemonic, v.Rd, v.Rb, v.Offset)

	case SpRelativeLoad:
		mnemonic := "STR"
		if v.Load {
			mnemonic = "LDR"
		}
		return fmt.Sprintf("%s R%d,[SP,#%d]", mnemonic, v.Rd, v.Word)

	case LoadAddress:
		base := "PC"
		if v.SP {
			base = "SP"
		}
		return fmt.Sprintf("ADD R%d,%s,#%d", v.Rd, base, v.Word)

	case AddOffsetStackPointer:
		sign := ""
		if v.Negative {
			sign = "-"
		}
		return fmt.Sprintf("ADD SP,#%s%d", sign, v.Word)

	case PushPopRegister:
		if v.Load {
			extra := ""
			if v.LoadPC {
				extra = "PC"
			}
			return fmt.Sprintf("POP {%s}", disasmRegisterList8(v.RegisterList, extra))
		}
		extra := ""
		if v.StoreLR {
			extra = "LR"
		}
		return fmt.Sprintf("PUSH {%s}", disasmRegisterList8(v.RegisterList, extra))

	case MultipleLoad:
		mnemonic := "STMIA"
		if v.Load {
			mnemonic = "LDMIA"
		}
		return fmt.Sprintf("%s R%d!,{%s}", mnemonic, v.Rb, disasmRegisterList8(v.RegisterList, ""))

	case SoftwareInterruptThumb:
		return fmt.Sprintf("SWI #%d", v.Comment)

	case ConditionalBranch:
		return fmt.Sprintf("B%s #%d", v.Condition, v.Offset)

	case UnconditionalBranch:
		return fmt.Sprintf("B #%d", v.Offset)

	case LongBranchWithLink:
		high := ""
		if v.High {
			high = "H"
		}
		return fmt.Sprintf("BL%s #%d", high, v.Offset)

	case UndefinedThumb:
		return "UND"

	default:
		return "???"
	}
}
