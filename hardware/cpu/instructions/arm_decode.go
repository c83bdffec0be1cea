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

// DecodeARM classifies a 32 bit ARM opcode into a condition and a variant.
// insnSize is the current instruction size in bytes (always 4 in ARM state)
// and is only needed to bake the +2L PC-ahead constant into Branch's offset.
//
// Masks are tried in the order below; the first match wins. Where two masks
// could both match the same bit pattern, the order here is the one that
// resolves the ambiguity correctly (DataProcessing's mask, for instance,
// would also match several of the rows above it).
func DecodeARM(insn uint32, insnSize uint32) ARM {
	cond := Condition(insn >> 28 & 0xf)

	switch {
	case insn&0x0FFFFFF0 == 0x012FFF10:
		return ARM{cond, BranchAndExchange{Rn: uint8(insn & 0xf)}}

	case insn&0x0E000000 == 0x0A000000:
		offset := signExtend(insn&0xFFFFFF, 24) << 2
		offset += int32(2 * insnSize)
		return ARM{cond, Branch{Link: insn&(1<<24) != 0, Offset: offset}}

	case insn&0x0FC000F0 == 0x00000090:
		return ARM{cond, Multiply{
			Rd:         uint8(insn >> 16 & 0xf),
			Rn:         uint8(insn >> 12 & 0xf),
			Rs:         uint8(insn >> 8 & 0xf),
			Rm:         uint8(insn & 0xf),
			Accumulate: insn&(1<<21) != 0,
			Set:        insn&(1<<20) != 0,
		}}

	case insn&0x0F8000F0 == 0x00800090:
		return ARM{cond, MultiplyLong{
			RdHi:       uint8(insn >> 16 & 0xf),
			RdLo:       uint8(insn >> 12 & 0xf),
			Rs:         uint8(insn >> 8 & 0xf),
			Rm:         uint8(insn & 0xf),
			Unsigned:   insn&(1<<22) == 0,
			Accumulate: insn&(1<<21) != 0,
			Set:        insn&(1<<20) != 0,
		}}

	case insn&0x0E400F90 == 0x00000090:
		return decodeHalfwordTransfer(insn, true)

	case insn&0x0E400090 == 0x00400090:
		return decodeHalfwordTransfer(insn, false)

	case insn&0x0FB00FF0 == 0x01000090:
		return ARM{cond, SingleDataSwap{
			Rn:   uint8(insn >> 16 & 0xf),
			Rd:   uint8(insn >> 12 & 0xf),
			Rm:   uint8(insn & 0xf),
			Byte: insn&(1<<22) != 0,
		}}

	case insn&0x0FBF0FFF == 0x010F0000:
		return ARM{cond, Mrs{Rd: uint8(insn >> 12 & 0xf), SPSR: insn&(1<<22) != 0}}

	case insn&0x0DBFF000 == 0x0128F000:
		return decodePsrTransferWrite(insn, cond)

	case insn&0x0E000010 == 0x06000010:
		return ARM{cond, Undefined{Opcode: insn}}

	case insn&0x0C000000 == 0x04000000:
		return decodeSingleDataTransfer(insn, cond)

	case insn&0x0E000000 == 0x08000000:
		return ARM{cond, BlockDataTransfer{
			Rn:           uint8(insn >> 16 & 0xf),
			RegisterList: uint16(insn & 0xffff),
			Load:         insn&(1<<20) != 0,
			WriteBack:    insn&(1<<21) != 0,
			PSR:          insn&(1<<22) != 0,
			Up:           insn&(1<<23) != 0,
			PreIndex:     insn&(1<<24) != 0,
		}}

	case insn&0x0E000000 == 0x0C000000:
		return ARM{cond, CoprocessorDataTransfer{Opcode: insn}}

	case insn&0x0F000010 == 0x0E000010:
		return ARM{cond, CoprocessorRegisterTransfer{Opcode: insn}}

	case insn&0x0F000010 == 0x0E000000:
		return ARM{cond, CoprocessorDataOperation{Opcode: insn}}

	case insn&0x0F000000 == 0x0F000000:
		return ARM{cond, SoftwareInterrupt{Comment: insn & 0xFFFFFF}}

	case insn&0x0C000000 == 0x00000000:
		return ARM{cond, decodeDataProcessing(insn)}

	default:
		return ARM{cond, Undefined{Opcode: insn}}
	}
}

func decodeHalfwordTransfer(insn uint32, registerOffset bool) ARM {
	cond := Condition(insn >> 28 & 0xf)
	h := HalfwordTransfer{
		Rn:             uint8(insn >> 16 & 0xf),
		Rd:             uint8(insn >> 12 & 0xf),
		RegisterOffset: registerOffset,
		Load:           insn&(1<<20) != 0,
		WriteBack:      insn&(1<<21) != 0,
		Up:             insn&(1<<23) != 0,
		PreIndex:       insn&(1<<24) != 0,
		Signed:         insn&(1<<6) != 0,
		Half:           insn&(1<<5) != 0,
	}
	if registerOffset {
		h.Rm = uint8(insn & 0xf)
	} else {
		h.Imm = uint8(insn>>4&0xf0 | insn&0xf)
	}
	return ARM{cond, h}
}

func decodePsrTransferWrite(insn uint32, cond Condition) ARM {
	spsr := insn&(1<<22) != 0
	if insn&(1<<16) != 0 {
		return ARM{cond, Msr{SPSR: spsr, Rm: uint8(insn & 0xf)}}
	}

	m := MsrFlag{SPSR: spsr, IsImmediate: insn&(1<<25) != 0}
	if m.IsImmediate {
		m.Imm = uint8(insn & 0xff)
		m.Rotate = uint8(insn >> 8 & 0xf)
	} else {
		m.Rm = uint8(insn & 0xf)
	}
	return ARM{cond, m}
}

func decodeSingleDataTransfer(insn uint32, cond Condition) ARM {
	s := SingleDataTransfer{
		Rn:        uint8(insn >> 16 & 0xf),
		Rd:        uint8(insn >> 12 & 0xf),
		Load:      insn&(1<<20) != 0,
		WriteBack: insn&(1<<21) != 0,
		Byte:      insn&(1<<22) != 0,
		Up:        insn&(1<<23) != 0,
		PreIndex:  insn&(1<<24) != 0,
	}

	if insn&(1<<25) == 0 {
		s.Offset = DataTransferOffset{Imm: insn & 0xFFF}
	} else {
		s.Offset = DataTransferOffset{
			IsRegister: true,
			Shift: Shift{
				Rm:        uint8(insn & 0xf),
				Type:      ShiftType(insn >> 5 & 0x3),
				Immediate: true,
				Operand:   uint8(insn >> 7 & 0x1f),
			},
		}
	}

	return ARM{cond, s}
}

func decodeDataProcessing(insn uint32) DataProcessing {
	d := DataProcessing{
		Op:       DataProcessingOp(insn >> 21 & 0xf),
		SetFlags: insn&(1<<20) != 0,
		Rn:       uint8(insn >> 16 & 0xf),
		Rd:       uint8(insn >> 12 & 0xf),
	}

	if insn&(1<<25) != 0 {
		d.Operand2 = Operand2{
			IsImmediate: true,
			Imm:         uint8(insn & 0xff),
			Rotate:      uint8(insn >> 8 & 0xf),
		}
	} else {
		immediateShift := insn&(1<<4) == 0
		d.Operand2 = Operand2{
			Shift: Shift{
				Rm:        uint8(insn & 0xf),
				Type:      ShiftType(insn >> 5 & 0x3),
				Immediate: immediateShift,
			},
		}
		if immediateShift {
			d.Operand2.Shift.Operand = uint8(insn >> 7 & 0x1f)
		} else {
			d.Operand2.Shift.Operand = uint8(insn >> 8 & 0xf)
		}
	}

	return d
}

// signExtend sign extends the low `bits` bits of v to a full int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
