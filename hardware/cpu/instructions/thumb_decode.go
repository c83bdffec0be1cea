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

// DecodeThumb classifies a 16 bit Thumb opcode. Table-driven, first match
// wins; the ordering below matters in two places - AddSubtract must be tried
// before MoveShiftedRegister, since 0x1800 also matches that looser mask, and
// SoftwareInterrupt must be tried before ConditionalBranch, since 0xDF00 also
// matches ConditionalBranch's looser mask.
func DecodeThumb(insn uint16) Thumb {
	switch {
	case insn&0xF800 == 0x1800:
		return Thumb{AddSubtract{
			Immediate: insn&(1<<10) != 0,
			Subtract:  insn&(1<<9) != 0,
			RnOrImm:   uint8(insn >> 6 & 0x7),
			Rs:        uint8(insn >> 3 & 0x7),
			Rd:        uint8(insn & 0x7),
		}}

	case insn&0xE000 == 0x0000:
		return Thumb{MoveShiftedRegister{
			Op:     ShiftType(insn >> 11 & 0x3),
			Offset: uint8(insn >> 6 & 0x1f),
			Rs:     uint8(insn >> 3 & 0x7),
			Rd:     uint8(insn & 0x7),
		}}

	case insn&0xE000 == 0x2000:
		return Thumb{MovCmpAddSubImmediate{
			Op:  MovCmpAddSubImmOp(insn >> 11 & 0x3),
			Rd:  uint8(insn >> 8 & 0x7),
			Imm: uint8(insn & 0xff),
		}}

	case insn&0xFC00 == 0x4000:
		return Thumb{AluOperations{
			Op: AluOp(insn >> 6 & 0xf),
			Rs: uint8(insn >> 3 & 0x7),
			Rd: uint8(insn & 0x7),
		}}

	case insn&0xFC00 == 0x4400:
		h1 := insn&(1<<7) != 0
		h2 := insn&(1<<6) != 0
		rd := uint8(insn & 0x7)
		rs := uint8(insn >> 3 & 0x7)
		if h1 {
			rd += 8
		}
		if h2 {
			rs += 8
		}
		return Thumb{HiRegisterOperations{
			Op: HiRegOp(insn >> 8 & 0x3),
			Rs: rs,
			Rd: rd,
		}}

	case insn&0xF800 == 0x4800:
		return Thumb{PcRelativeLoad{
			Rd:   uint8(insn >> 8 & 0x7),
			Word: uint32(insn&0xff) * 4,
		}}

	case insn&0xF200 == 0x5000:
		return Thumb{LoadStoreRegisterOffset{
			Load: insn&(1<<11) != 0,
			Byte: insn&(1<<10) != 0,
			Ro:   uint8(insn >> 6 & 0x7),
			Rb:   uint8(insn >> 3 & 0x7),
			Rd:   uint8(insn & 0x7),
		}}

	case insn&0xF200 == 0x5200:
		return Thumb{LoadStoreSignExtendedHalfword{
			Sign: insn&(1<<10) != 0,
			Half: insn&(1<<11) != 0,
			Ro:   uint8(insn >> 6 & 0x7),
			Rb:   uint8(insn >> 3 & 0x7),
			Rd:   uint8(insn & 0x7),
		}}

	case insn&0xE000 == 0x6000:
		byteAccess := insn&(1<<12) != 0
		offset := uint32(insn >> 6 & 0x1f)
		if byteAccess {
			return Thumb{LoadStoreImmediateOffset{
				Load:   insn&(1<<11) != 0,
				Byte:   true,
				Offset: offset,
				Rb:     uint8(insn >> 3 & 0x7),
				Rd:     uint8(insn & 0x7),
			}}
		}
		return Thumb{LoadStoreImmediateOffset{
			Load:   insn&(1<<11) != 0,
			Offset: offset * 4,
			Rb:     uint8(insn >> 3 & 0x7),
			Rd:     uint8(insn & 0x7),
		}}

	case insn&0xF000 == 0x8000:
		return Thumb{LoadStoreHalfword{
			Load:   insn&(1<<11) != 0,
			Offset: uint32(insn>>6&0x1f) * 2,
			Rb:     uint8(insn >> 3 & 0x7),
			Rd:     uint8(insn & 0x7),
		}}

	case insn&0xF000 == 0x9000:
		return Thumb{SpRelativeLoad{
			Load: insn&(1<<11) != 0,
			Rd:   uint8(insn >> 8 & 0x7),
			Word: uint32(insn&0xff) * 4,
		}}

	case insn&0xF000 == 0xA000:
		return Thumb{LoadAddress{
			SP:   insn&(1<<11) != 0,
			Rd:   uint8(insn >> 8 & 0x7),
			Word: uint32(insn&0xff) * 4,
		}}

	case insn&0xFF00 == 0xB000:
		return Thumb{AddOffsetStackPointer{
			Negative: insn&(1<<7) != 0,
			Word:     uint32(insn&0x7f) * 4,
		}}

	case insn&0xF600 == 0xB400:
		load := insn&(1<<11) != 0
		r := insn&(1<<8) != 0
		return Thumb{PushPopRegister{
			Load:         load,
			StoreLR:      !load && r,
			LoadPC:       load && r,
			RegisterList: uint8(insn & 0xff),
		}}

	case insn&0xF000 == 0xC000:
		return Thumb{MultipleLoad{
			Load:         insn&(1<<11) != 0,
			Rb:           uint8(insn >> 8 & 0x7),
			RegisterList: uint8(insn & 0xff),
		}}

	case insn&0xFF00 == 0xDF00:
		return Thumb{SoftwareInterruptThumb{Comment: uint8(insn & 0xff)}}

	case insn&0xF000 == 0xD000:
		imm := uint32(insn & 0xff)
		return Thumb{ConditionalBranch{
			Condition: Condition(insn >> 8 & 0xf),
			Offset:    signExtend(imm*2, 9),
		}}

	case insn&0xF800 == 0xE000:
		imm := uint32(insn & 0x7ff)
		return Thumb{UnconditionalBranch{Offset: signExtend(imm*2, 12)}}

	case insn&0xF000 == 0xF000:
		return Thumb{LongBranchWithLink{
			High:   insn&(1<<11) == 0,
			Offset: uint32(insn & 0x7ff),
		}}

	default:
		return Thumb{UndefinedThumb{Opcode: uint32(insn)}}
	}
}
