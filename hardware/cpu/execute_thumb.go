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

package cpu

import (
	"github.com/retrogo/goadvance/hardware/cpu/execution"
	"github.com/retrogo/goadvance/hardware/cpu/instructions"
	"github.com/retrogo/goadvance/hardware/memory/bus"
)

// executeThumb carries out the work of a single decoded Thumb instruction.
// Most Thumb formats are unconditional; only ConditionalBranch carries its
// own Condition, checked here rather than by step(), since nothing above
// this function inspects it.
func (mc *CPU) executeThumb(t instructions.Thumb, cur uint32, l uint32) error {
	switch v := t.Variant.(type) {
	case instructions.MoveShiftedRegister:
		mc.executeMoveShiftedRegister(v)
		return nil

	case instructions.AddSubtract:
		mc.executeAddSubtract(v)
		return nil

	case instructions.MovCmpAddSubImmediate:
		mc.executeMovCmpAddSubImmediate(v)
		return nil

	case instructions.AluOperations:
		mc.executeAluOperations(v)
		return nil

	case instructions.HiRegisterOperations:
		mc.executeHiRegisterOperations(v)
		return nil

	case instructions.PcRelativeLoad:
		return mc.executePcRelativeLoad(v)

	case instructions.LoadStoreRegisterOffset:
		return mc.executeLoadStoreRegisterOffset(v)

	case instructions.LoadStoreSignExtendedHalfword:
		return mc.executeLoadStoreSignExtendedHalfword(v)

	case instructions.LoadStoreImmediateOffset:
		return mc.executeLoadStoreImmediateOffset(v)

	case instructions.LoadStoreHalfword:
		return mc.executeLoadStoreHalfword(v)

	case instructions.SpRelativeLoad:
		return mc.executeSpRelativeLoad(v)

	case instructions.LoadAddress:
		mc.executeLoadAddress(v)
		return nil

	case instructions.AddOffsetStackPointer:
		mc.executeAddOffsetStackPointer(v)
		return nil

	case instructions.PushPopRegister:
		return mc.executePushPopRegister(v)

	case instructions.MultipleLoad:
		return mc.executeMultipleLoad(v)

	case instructions.ConditionalBranch:
		mc.executeConditionalBranch(v)
		return nil

	case instructions.SoftwareInterruptThumb:
		mc.executeSoftwareInterrupt(cur, l)
		return nil

	case instructions.UnconditionalBranch:
		mc.executeUnconditionalBranch(v)
		return nil

	case instructions.LongBranchWithLink:
		mc.executeLongBranchWithLink(v)
		return nil

	case instructions.UndefinedThumb:
		mc.warn(execution.StructurallyUndefined)
		return nil
	}

	mc.warn(execution.StructurallyUndefined)
	return nil
}

func (mc *CPU) executeMoveShiftedRegister(v instructions.MoveShiftedRegister) {
	value := mc.R(int(v.Rs))
	amount := v.Offset
	if amount == 0 {
		switch v.Op {
		case instructions.LSR, instructions.ASR:
			amount = 32
		}
	}

	result, carryOut := evalShift(v.Op, value, amount, mc.cpsr.C)
	mc.SetR(int(v.Rd), result)
	mc.cpsr.N = result&(1<<31) != 0
	mc.cpsr.Z = result == 0
	mc.cpsr.C = carryOut
}

func (mc *CPU) executeAddSubtract(v instructions.AddSubtract) {
	op1 := mc.R(int(v.Rs))
	var op2 uint32
	if v.Immediate {
		op2 = uint32(v.RnOrImm)
	} else {
		op2 = mc.R(int(v.RnOrImm))
	}

	var result uint32
	var carry, overflow bool
	if v.Subtract {
		result, carry, overflow = sub(op1, op2)
	} else {
		result, carry, overflow = add(op1, op2, false)
	}

	mc.SetR(int(v.Rd), result)
	mc.cpsr.N = result&(1<<31) != 0
	mc.cpsr.Z = result == 0
	mc.cpsr.C = carry
	mc.cpsr.V = overflow
}

func (mc *CPU) executeMovCmpAddSubImmediate(v instructions.MovCmpAddSubImmediate) {
	op1 := mc.R(int(v.Rd))
	imm := uint32(v.Imm)

	switch v.Op {
	case instructions.OpMOVImm:
		mc.SetR(int(v.Rd), imm)
		mc.cpsr.N = false
		mc.cpsr.Z = imm == 0

	case instructions.OpCMPImm:
		result, carry, overflow := sub(op1, imm)
		mc.cpsr.N = result&(1<<31) != 0
		mc.cpsr.Z = result == 0
		mc.cpsr.C = carry
		mc.cpsr.V = overflow

	case instructions.OpADDImm:
		result, carry, overflow := add(op1, imm, false)
		mc.SetR(int(v.Rd), result)
		mc.cpsr.N = result&(1<<31) != 0
		mc.cpsr.Z = result == 0
		mc.cpsr.C = carry
		mc.cpsr.V = overflow

	case instructions.OpSUBImm:
		result, carry, overflow := sub(op1, imm)
		mc.SetR(int(v.Rd), result)
		mc.cpsr.N = result&(1<<31) != 0
		mc.cpsr.Z = result == 0
		mc.cpsr.C = carry
		mc.cpsr.V = overflow
	}
}

// aluShiftType maps the four Thumb ALU shift/rotate opcodes onto the
// barrel shifter's ShiftType; the two enumerations number these operations
// differently (AluLSL is 2, LSL is 0), so the mapping is spelled out rather
// than assumed.
func aluShiftType(op instructions.AluOp) instructions.ShiftType {
	switch op {
	case instructions.AluLSL:
		return instructions.LSL
	case instructions.AluLSR:
		return instructions.LSR
	case instructions.AluASR:
		return instructions.ASR
	default:
		return instructions.ROR
	}
}

func (mc *CPU) executeAluOperations(v instructions.AluOperations) {
	rd := mc.R(int(v.Rd))
	rs := mc.R(int(v.Rs))

	result := rd
	carry := mc.cpsr.C
	var overflow bool
	writes := true

	switch v.Op {
	case instructions.AluAND:
		result = rd & rs
	case instructions.AluEOR:
		result = rd ^ rs
	case instructions.AluLSL, instructions.AluLSR, instructions.AluASR, instructions.AluROR:
		mc.internalCycle(1)
		result, carry = evalShift(aluShiftType(v.Op), rd, uint8(rs), carry)
	case instructions.AluADC:
		result, carry, overflow = add(rd, rs, mc.cpsr.C)
	case instructions.AluSBC:
		result, carry, overflow = sbc(rd, rs, mc.cpsr.C)
	case instructions.AluTST:
		result = rd & rs
		writes = false
	case instructions.AluNEG:
		result, carry, overflow = sub(0, rs)
	case instructions.AluCMP:
		result, carry, overflow = sub(rd, rs)
		writes = false
	case instructions.AluCMN:
		result, carry, overflow = add(rd, rs, false)
		writes = false
	case instructions.AluORR:
		result = rd | rs
	case instructions.AluMUL:
		mc.internalCycle(mulCycles(rs, false))
		result = rd * rs
	case instructions.AluBIC:
		result = rd &^ rs
	case instructions.AluMVN:
		result = ^rs
	}

	hasOverflow := v.Op == instructions.AluADC || v.Op == instructions.AluSBC ||
		v.Op == instructions.AluNEG || v.Op == instructions.AluCMP || v.Op == instructions.AluCMN

	mc.cpsr.N = result&(1<<31) != 0
	mc.cpsr.Z = result == 0
	mc.cpsr.C = carry
	if hasOverflow {
		mc.cpsr.V = overflow
	}

	if writes {
		mc.SetR(int(v.Rd), result)
	}
}

func (mc *CPU) executeHiRegisterOperations(v instructions.HiRegisterOperations) {
	switch v.Op {
	case instructions.HiADD:
		result := mc.R(int(v.Rd)) + mc.R(int(v.Rs))
		if v.Rd == 15 {
			result &^= 1
		}
		mc.SetR(int(v.Rd), result)
		if v.Rd == 15 {
			mc.flushPipeline()
		}

	case instructions.HiMOV:
		result := mc.R(int(v.Rs))
		if v.Rd == 15 {
			result &^= 1
		}
		mc.SetR(int(v.Rd), result)
		if v.Rd == 15 {
			mc.flushPipeline()
		}

	case instructions.HiCMP:
		result, carry, overflow := sub(mc.R(int(v.Rd)), mc.R(int(v.Rs)))
		mc.cpsr.N = result&(1<<31) != 0
		mc.cpsr.Z = result == 0
		mc.cpsr.C = carry
		mc.cpsr.V = overflow

	case instructions.HiBX:
		addr := mc.R(int(v.Rs))
		thumb := addr&1 != 0
		mc.cpsr.Thumb = thumb
		if thumb {
			addr &^= 1
		} else {
			addr &^= 3
		}
		mc.file.SetPC(addr)
		mc.flushPipeline()
	}
}

func (mc *CPU) executePcRelativeLoad(v instructions.PcRelativeLoad) error {
	base := mc.R(15) &^ 2
	word, err := mc.readWord(base+v.Word, bus.NonSequential)
	if err != nil {
		return err
	}
	mc.SetR(int(v.Rd), word)
	return nil
}

func (mc *CPU) executeLoadStoreRegisterOffset(v instructions.LoadStoreRegisterOffset) error {
	addr := mc.R(int(v.Rb)) + mc.R(int(v.Ro))

	if v.Load {
		if v.Byte {
			b, err := mc.readByte(addr, bus.NonSequential)
			if err != nil {
				return err
			}
			mc.SetR(int(v.Rd), uint32(b))
		} else {
			w, err := mc.readWord(addr, bus.NonSequential)
			if err != nil {
				return err
			}
			mc.SetR(int(v.Rd), w)
		}
	} else {
		var err error
		if v.Byte {
			err = mc.writeByte(addr, uint8(mc.R(int(v.Rd))), bus.NonSequential)
		} else {
			err = mc.writeWord(addr, mc.R(int(v.Rd)), bus.NonSequential)
		}
		if err != nil {
			return err
		}
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeLoadStoreSignExtendedHalfword(v instructions.LoadStoreSignExtendedHalfword) error {
	addr := mc.R(int(v.Rb)) + mc.R(int(v.Ro))

	switch {
	case !v.Sign && !v.Half:
		if err := mc.writeHalfword(addr, uint16(mc.R(int(v.Rd))), bus.NonSequential); err != nil {
			return err
		}

	case !v.Sign && v.Half:
		h, err := mc.readHalfword(addr, bus.NonSequential)
		if err != nil {
			return err
		}
		mc.SetR(int(v.Rd), uint32(h))

	case v.Sign && !v.Half:
		b, err := mc.readByte(addr, bus.NonSequential)
		if err != nil {
			return err
		}
		mc.SetR(int(v.Rd), uint32(int32(int8(b))))

	default:
		h, err := mc.readHalfword(addr, bus.NonSequential)
		if err != nil {
			return err
		}
		mc.SetR(int(v.Rd), uint32(int32(int16(h))))
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeLoadStoreImmediateOffset(v instructions.LoadStoreImmediateOffset) error {
	addr := mc.R(int(v.Rb)) + v.Offset

	if v.Load {
		if v.Byte {
			b, err := mc.readByte(addr, bus.NonSequential)
			if err != nil {
				return err
			}
			mc.SetR(int(v.Rd), uint32(b))
		} else {
			w, err := mc.readWord(addr, bus.NonSequential)
			if err != nil {
				return err
			}
			mc.SetR(int(v.Rd), w)
		}
	} else {
		var err error
		if v.Byte {
			err = mc.writeByte(addr, uint8(mc.R(int(v.Rd))), bus.NonSequential)
		} else {
			err = mc.writeWord(addr, mc.R(int(v.Rd)), bus.NonSequential)
		}
		if err != nil {
			return err
		}
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeLoadStoreHalfword(v instructions.LoadStoreHalfword) error {
	addr := mc.R(int(v.Rb)) + v.Offset

	if v.Load {
		h, err := mc.readHalfword(addr, bus.NonSequential)
		if err != nil {
			return err
		}
		mc.SetR(int(v.Rd), uint32(h))
	} else {
		if err := mc.writeHalfword(addr, uint16(mc.R(int(v.Rd))), bus.NonSequential); err != nil {
			return err
		}
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeSpRelativeLoad(v instructions.SpRelativeLoad) error {
	addr := mc.R(13) + v.Word

	if v.Load {
		w, err := mc.readWord(addr, bus.NonSequential)
		if err != nil {
			return err
		}
		mc.SetR(int(v.Rd), w)
	} else {
		if err := mc.writeWord(addr, mc.R(int(v.Rd)), bus.NonSequential); err != nil {
			return err
		}
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeLoadAddress(v instructions.LoadAddress) {
	var base uint32
	if v.SP {
		base = mc.R(13)
	} else {
		base = mc.R(15) &^ 2
	}
	mc.SetR(int(v.Rd), base+v.Word)
}

func (mc *CPU) executeAddOffsetStackPointer(v instructions.AddOffsetStackPointer) {
	if v.Negative {
		mc.SetR(13, mc.R(13)-v.Word)
	} else {
		mc.SetR(13, mc.R(13)+v.Word)
	}
}

func (mc *CPU) executePushPopRegister(v instructions.PushPopRegister) error {
	var list []int
	for i := 0; i < 8; i++ {
		if v.RegisterList&(1<<uint(i)) != 0 {
			list = append(list, i)
		}
	}

	if v.Load {
		addr := mc.R(13)
		for _, r := range list {
			w, err := mc.readWord(addr, bus.Sequential)
			if err != nil {
				return err
			}
			mc.SetR(r, w)
			addr += 4
		}
		if v.LoadPC {
			w, err := mc.readWord(addr, bus.Sequential)
			if err != nil {
				return err
			}
			mc.file.SetPC(w &^ 1)
			addr += 4
			mc.flushPipeline()
		}
		mc.SetR(13, addr)
	} else {
		count := len(list)
		if v.StoreLR {
			count++
		}
		addr := mc.R(13) - uint32(count*4)
		mc.SetR(13, addr)

		cur := addr
		for _, r := range list {
			if err := mc.writeWord(cur, mc.R(r), bus.Sequential); err != nil {
				return err
			}
			cur += 4
		}
		if v.StoreLR {
			if err := mc.writeWord(cur, mc.R(14), bus.Sequential); err != nil {
				return err
			}
		}
	}

	mc.sequential = false
	return nil
}

func containsRegister(list []int, r int) bool {
	for _, x := range list {
		if x == r {
			return true
		}
	}
	return false
}

func (mc *CPU) executeMultipleLoad(v instructions.MultipleLoad) error {
	var list []int
	for i := 0; i < 8; i++ {
		if v.RegisterList&(1<<uint(i)) != 0 {
			list = append(list, i)
		}
	}

	addr := mc.R(int(v.Rb))
	for i, r := range list {
		cycle := bus.Sequential
		if i == 0 {
			cycle = bus.NonSequential
		}

		if v.Load {
			w, err := mc.readWord(addr, cycle)
			if err != nil {
				return err
			}
			mc.SetR(r, w)
		} else {
			if err := mc.writeWord(addr, mc.R(r), cycle); err != nil {
				return err
			}
		}
		addr += 4
	}

	if !(v.Load && containsRegister(list, int(v.Rb))) {
		mc.SetR(int(v.Rb), addr)
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeConditionalBranch(v instructions.ConditionalBranch) {
	if v.Condition == instructions.AL {
		mc.warn(execution.ConditionALUnpredictableInThumb)
	}
	if !v.Condition.Satisfied(mc.flags()) {
		return
	}

	mc.file.SetPC(uint32(int32(mc.R(15)) + v.Offset))
	mc.flushPipeline()
}

func (mc *CPU) executeUnconditionalBranch(v instructions.UnconditionalBranch) {
	mc.file.SetPC(uint32(int32(mc.R(15)) + v.Offset))
	mc.flushPipeline()
}

// thumbSignExtend sign extends the low `bits` bits of v to a full int32; the
// instructions package keeps its own copy private, so LongBranchWithLink's
// high half - the only place execution needs one - gets a local copy.
func thumbSignExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

func (mc *CPU) executeLongBranchWithLink(v instructions.LongBranchWithLink) {
	if v.High {
		ext := thumbSignExtend(v.Offset, 11)
		mc.SetR(14, uint32(int32(mc.R(15))+(ext<<12)))
		return
	}

	newPC := mc.R(14) + v.Offset<<1
	mc.SetR(14, (mc.R(15)-2)|1)
	mc.file.SetPC(newPC)
	mc.flushPipeline()
}
