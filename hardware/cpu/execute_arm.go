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
	"math/bits"

	"github.com/retrogo/goadvance/hardware/cpu/execution"
	"github.com/retrogo/goadvance/hardware/cpu/instructions"
	"github.com/retrogo/goadvance/hardware/cpu/registers"
	"github.com/retrogo/goadvance/hardware/memory/bus"
)

// executeARM carries out the work of a single decoded, condition-passed ARM
// instruction. cur is the address it was fetched from and l is the current
// instruction size (always 4 here, but passed through rather than
// recomputed since a handful of variants need it for PC-relative
// arithmetic). Any instruction that branches leaves the bare destination
// address in PC and calls flushPipeline; step() adds the +2L pipeline
// constant afterwards, using whatever instruction size the branch leaves
// the CPU in.
func (mc *CPU) executeARM(v instructions.ARMVariant, cur uint32, l uint32) error {
	switch variant := v.(type) {
	case instructions.BranchAndExchange:
		mc.executeBranchAndExchange(variant)
		return nil

	case instructions.Branch:
		mc.executeBranch(variant, cur, l)
		return nil

	case instructions.Multiply:
		mc.executeMultiply(variant)
		return nil

	case instructions.MultiplyLong:
		mc.executeMultiplyLong(variant)
		return nil

	case instructions.SingleDataSwap:
		return mc.executeSingleDataSwap(variant)

	case instructions.SingleDataTransfer:
		return mc.executeSingleDataTransfer(variant, l)

	case instructions.HalfwordTransfer:
		return mc.executeHalfwordTransfer(variant)

	case instructions.BlockDataTransfer:
		return mc.executeBlockDataTransfer(variant)

	case instructions.DataProcessing:
		mc.executeDataProcessing(variant, l)
		return nil

	case instructions.Mrs:
		mc.executeMrs(variant)
		return nil

	case instructions.Msr:
		mc.executeMsr(variant)
		return nil

	case instructions.MsrFlag:
		mc.executeMsrFlag(variant)
		return nil

	case instructions.CoprocessorDataTransfer:
		mc.warn(execution.CoprocessorNoOp)
		return nil

	case instructions.CoprocessorDataOperation:
		mc.warn(execution.CoprocessorNoOp)
		return nil

	case instructions.CoprocessorRegisterTransfer:
		mc.warn(execution.CoprocessorNoOp)
		return nil

	case instructions.Undefined:
		mc.warn(execution.StructurallyUndefined)
		return nil

	case instructions.SoftwareInterrupt:
		mc.executeSoftwareInterrupt(cur, l)
		return nil
	}

	mc.warn(execution.StructurallyUndefined)
	return nil
}

func (mc *CPU) executeBranchAndExchange(v instructions.BranchAndExchange) {
	addr := mc.R(int(v.Rn))
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

func (mc *CPU) executeBranch(v instructions.Branch, cur uint32, l uint32) {
	if v.Link {
		mc.SetR(14, cur+l)
	}
	mc.file.SetPC(uint32(int32(cur) + v.Offset))
	mc.flushPipeline()
}

func (mc *CPU) executeMultiply(v instructions.Multiply) {
	if v.Rd == v.Rm {
		mc.warn(execution.MultiplyRdEqualsRm)
	}
	if v.Rd == 15 || v.Rm == 15 || v.Rs == 15 || v.Rn == 15 {
		mc.warn(execution.WritePCAsOperand)
	}

	mc.internalCycle(mulCycles(mc.R(int(v.Rs)), false))

	result := mc.R(int(v.Rm)) * mc.R(int(v.Rs))
	if v.Accumulate {
		result += mc.R(int(v.Rn))
	}
	mc.SetR(int(v.Rd), result)

	if v.Set {
		mc.cpsr.N = result&(1<<31) != 0
		mc.cpsr.Z = result == 0
	}
}

func (mc *CPU) executeMultiplyLong(v instructions.MultiplyLong) {
	if v.Accumulate {
		mc.internalCycle(1)
	}
	mc.internalCycle(mulCycles(mc.R(int(v.Rs)), false) + 1)

	var lo, hi uint32
	if v.Unsigned {
		product := uint64(mc.R(int(v.Rm))) * uint64(mc.R(int(v.Rs)))
		if v.Accumulate {
			product += uint64(mc.R(int(v.RdHi)))<<32 | uint64(mc.R(int(v.RdLo)))
		}
		lo, hi = uint32(product), uint32(product>>32)
	} else {
		product := int64(int32(mc.R(int(v.Rm)))) * int64(int32(mc.R(int(v.Rs))))
		if v.Accumulate {
			product += int64(uint64(mc.R(int(v.RdHi)))<<32 | uint64(mc.R(int(v.RdLo))))
		}
		lo, hi = uint32(product), uint32(uint64(product)>>32)
	}

	mc.SetR(int(v.RdLo), lo)
	mc.SetR(int(v.RdHi), hi)

	if v.Set {
		mc.cpsr.N = hi&(1<<31) != 0
		mc.cpsr.Z = lo == 0 && hi == 0
	}
}

func (mc *CPU) executeSingleDataSwap(v instructions.SingleDataSwap) error {
	addr := mc.R(int(v.Rn))
	mc.internalCycle(1)

	if v.Byte {
		old, err := mc.readByte(addr, bus.NonSequential)
		if err != nil {
			return err
		}
		if err := mc.writeByte(addr, uint8(mc.R(int(v.Rm))), bus.NonSequential); err != nil {
			return err
		}
		mc.SetR(int(v.Rd), uint32(old))
		return nil
	}

	old, err := mc.readWord(addr, bus.NonSequential)
	if err != nil {
		return err
	}
	if err := mc.writeWord(addr, mc.R(int(v.Rm)), bus.NonSequential); err != nil {
		return err
	}
	mc.SetR(int(v.Rd), old)
	return nil
}

// shiftOffset evaluates a SingleDataTransfer register offset. Unlike a
// data-processing shift, this one never updates the carry flag - the offset
// it produces only ever feeds address arithmetic.
func shiftOffset(s instructions.Shift, rmValue uint32, carryIn bool) uint32 {
	amount := s.Operand
	if amount == 0 {
		switch s.Type {
		case instructions.LSR, instructions.ASR:
			amount = 32
		case instructions.ROR:
			v, _ := rrx(rmValue, carryIn)
			return v
		}
	}
	v, _ := evalShift(s.Type, rmValue, amount, carryIn)
	return v
}

func (mc *CPU) executeSingleDataTransfer(v instructions.SingleDataTransfer, l uint32) error {
	var offset uint32
	if v.Offset.IsRegister {
		offset = shiftOffset(v.Offset.Shift, mc.R(int(v.Offset.Shift.Rm)), mc.cpsr.C)
	} else {
		offset = v.Offset.Imm
	}

	base := mc.R(int(v.Rn))
	var addr uint32
	if v.Up {
		addr = base + offset
	} else {
		addr = base - offset
	}

	transferAddr := base
	if v.PreIndex {
		transferAddr = addr
	}

	if v.Load {
		if v.Byte {
			b, err := mc.readByte(transferAddr, bus.NonSequential)
			if err != nil {
				return err
			}
			mc.SetR(int(v.Rd), uint32(b))
		} else {
			word, err := mc.readWord(transferAddr&^uint32(3), bus.NonSequential)
			if err != nil {
				return err
			}
			rot := (transferAddr & 3) * 8
			word = bits.RotateLeft32(word, -int(rot))
			mc.SetR(int(v.Rd), word)
		}
		if v.Rd == 15 {
			mc.flushPipeline()
		}
	} else {
		val := mc.R(int(v.Rd))
		if v.Rd == 15 {
			val += l
		}
		var err error
		if v.Byte {
			err = mc.writeByte(transferAddr, uint8(val), bus.NonSequential)
		} else {
			err = mc.writeWord(transferAddr, val, bus.NonSequential)
		}
		if err != nil {
			return err
		}
	}

	if !v.PreIndex && v.WriteBack {
		mc.warn(execution.WriteBackWithPostIndex)
	}
	if !v.PreIndex || v.WriteBack {
		mc.SetR(int(v.Rn), addr)
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeHalfwordTransfer(v instructions.HalfwordTransfer) error {
	var offset uint32
	if v.RegisterOffset {
		offset = mc.R(int(v.Rm))
	} else {
		offset = uint32(v.Imm)
	}

	base := mc.R(int(v.Rn))
	var addr uint32
	if v.Up {
		addr = base + offset
	} else {
		addr = base - offset
	}

	transferAddr := base
	if v.PreIndex {
		transferAddr = addr
	}

	if v.Load {
		var loaded uint32
		switch {
		case !v.Signed && v.Half:
			half, err := mc.readHalfword(transferAddr, bus.NonSequential)
			if err != nil {
				return err
			}
			loaded = uint32(half)

		case v.Signed && !v.Half:
			b, err := mc.readByte(transferAddr, bus.NonSequential)
			if err != nil {
				return err
			}
			loaded = uint32(int32(int8(b)))

		case v.Signed && v.Half:
			if transferAddr&1 != 0 {
				b, err := mc.readByte(transferAddr, bus.NonSequential)
				if err != nil {
					return err
				}
				loaded = uint32(int32(int8(b)))
			} else {
				half, err := mc.readHalfword(transferAddr, bus.NonSequential)
				if err != nil {
					return err
				}
				loaded = uint32(int32(int16(half)))
			}

		default:
			mc.warn(execution.StructurallyUndefined)
		}

		mc.SetR(int(v.Rd), loaded)
		if v.Rd == 15 {
			mc.flushPipeline()
		}
	} else {
		if err := mc.writeHalfword(transferAddr, uint16(mc.R(int(v.Rd))), bus.NonSequential); err != nil {
			return err
		}
	}

	if !v.PreIndex && v.WriteBack {
		mc.warn(execution.WriteBackWithPostIndex)
	}
	if !v.PreIndex || v.WriteBack {
		mc.SetR(int(v.Rn), addr)
	}

	mc.sequential = false
	return nil
}

func (mc *CPU) executeBlockDataTransfer(v instructions.BlockDataTransfer) error {
	var list []int
	for i := 0; i < 16; i++ {
		if v.RegisterList&(1<<uint(i)) != 0 {
			list = append(list, i)
		}
	}

	base := mc.R(int(v.Rn))
	count := uint32(len(list))

	var start, final uint32
	switch {
	case v.Up && !v.PreIndex: // IA
		start, final = base, base+count*4
	case v.Up && v.PreIndex: // IB
		start, final = base+4, base+count*4
	case !v.Up && !v.PreIndex: // DA
		start, final = base-count*4+4, base-count*4
	default: // DB
		start, final = base-count*4, base-count*4
	}

	hasR15 := v.RegisterList&(1<<15) != 0
	userBankTransfer := v.PSR && !(v.Load && hasR15)
	if userBankTransfer {
		mc.file.ChangeMode(registers.User)
	}

	addr := start
	for i, r := range list {
		cycle := bus.Sequential
		if i == 0 {
			cycle = bus.NonSequential
		}

		if v.Load {
			word, err := mc.readWord(addr, cycle)
			if err != nil {
				if userBankTransfer {
					mc.file.ChangeMode(mc.cpsr.Mode)
				}
				return err
			}
			mc.SetR(r, word)
		} else {
			val := mc.R(r)
			switch {
			case r == 15:
				val += 4
			case uint8(r) == v.Rn:
				// The base register's own old/new value depends on whether
				// write-back has logically already happened by this point in
				// the sequence: first in the list still reads as the
				// original base, anywhere later reads as the final address.
				if i == 0 {
					val = base
				} else {
					val = final
				}
			}
			if err := mc.writeWord(addr, val, cycle); err != nil {
				if userBankTransfer {
					mc.file.ChangeMode(mc.cpsr.Mode)
				}
				return err
			}
		}

		addr += 4
	}

	if userBankTransfer {
		mc.file.ChangeMode(mc.cpsr.Mode)
	}

	if v.WriteBack && !userBankTransfer {
		mc.SetR(int(v.Rn), final)
	}

	if v.Load && hasR15 {
		if v.PSR {
			if spsr, err := mc.file.SPSR(mc.cpsr.Mode); err != nil {
				mc.warn(execution.SPSRAccessOutsideException)
			} else {
				mc.cpsr = spsr
				mc.changeMode(spsr.Mode)
			}
		}
		mc.flushPipeline()
	}

	mc.sequential = false
	return nil
}

// resolveOperand2 evaluates a data-processing Operand2, returning the
// shifter's carry out alongside whether the shift amount came from a
// register (which costs an extra internal cycle).
func (mc *CPU) resolveOperand2(op instructions.Operand2) (value uint32, carryOut bool, usedRegisterAmount bool) {
	if op.IsImmediate {
		rotated := bits.RotateLeft32(uint32(op.Imm), -int(op.Rotate)*2)
		carry := mc.cpsr.C
		if op.Rotate != 0 {
			carry = rotated&(1<<31) != 0
		}
		return rotated, carry, false
	}
	return mc.resolveShift(op.Shift)
}

func overflowUpdated(op instructions.DataProcessingOp) bool {
	switch op {
	case instructions.OpSUB, instructions.OpRSB, instructions.OpADD, instructions.OpADC,
		instructions.OpSBC, instructions.OpRSC, instructions.OpCMP, instructions.OpCMN:
		return true
	}
	return false
}

func writesResult(op instructions.DataProcessingOp) bool {
	switch op {
	case instructions.OpTST, instructions.OpTEQ, instructions.OpCMP, instructions.OpCMN:
		return false
	}
	return true
}

func (mc *CPU) executeDataProcessing(v instructions.DataProcessing, l uint32) {
	op1 := mc.R(int(v.Rn))
	if v.Rn == 15 && !v.Operand2.IsImmediate && !v.Operand2.Shift.Immediate {
		op1 += l
	}

	op2, shifterCarry, usedReg := mc.resolveOperand2(v.Operand2)
	if usedReg {
		mc.internalCycle(1)
	}

	carry := mc.cpsr.C
	var result uint32
	var overflow bool

	switch v.Op {
	case instructions.OpAND, instructions.OpTST:
		result, carry = op1&op2, shifterCarry
	case instructions.OpEOR, instructions.OpTEQ:
		result, carry = op1^op2, shifterCarry
	case instructions.OpSUB, instructions.OpCMP:
		result, carry, overflow = sub(op1, op2)
	case instructions.OpRSB:
		result, carry, overflow = sub(op2, op1)
	case instructions.OpADD, instructions.OpCMN:
		result, carry, overflow = add(op1, op2, false)
	case instructions.OpADC:
		result, carry, overflow = add(op1, op2, mc.cpsr.C)
	case instructions.OpSBC:
		result, carry, overflow = sbc(op1, op2, mc.cpsr.C)
	case instructions.OpRSC:
		result, carry, overflow = sbc(op2, op1, mc.cpsr.C)
	case instructions.OpORR:
		result, carry = op1|op2, shifterCarry
	case instructions.OpMOV:
		result, carry = op2, shifterCarry
	case instructions.OpBIC:
		result, carry = op1&^op2, shifterCarry
	case instructions.OpMVN:
		result, carry = ^op2, shifterCarry
	}

	writes := writesResult(v.Op)

	if v.SetFlags {
		if v.Rd == 15 && writes {
			if spsr, err := mc.file.SPSR(mc.cpsr.Mode); err != nil {
				mc.warn(execution.SetFlagsInUserMode)
			} else {
				mc.cpsr = spsr
				mc.changeMode(spsr.Mode)
			}
		} else {
			mc.cpsr.N = result&(1<<31) != 0
			mc.cpsr.Z = result == 0
			mc.cpsr.C = carry
			if overflowUpdated(v.Op) {
				mc.cpsr.V = overflow
			}
		}
	}

	if writes {
		mc.SetR(int(v.Rd), result)
		if v.Rd == 15 {
			mc.flushPipeline()
		}
	}
}

func (mc *CPU) executeMrs(v instructions.Mrs) {
	if v.SPSR {
		if spsr, err := mc.file.SPSR(mc.cpsr.Mode); err != nil {
			mc.warn(execution.SPSRAccessOutsideException)
			mc.SetR(int(v.Rd), mc.cpsr.Value())
		} else {
			mc.SetR(int(v.Rd), spsr.Value())
		}
		return
	}
	mc.SetR(int(v.Rd), mc.cpsr.Value())
}

func (mc *CPU) executeMsr(v instructions.Msr) {
	val := mc.R(int(v.Rm))

	if v.SPSR {
		spsr, err := mc.file.SPSR(mc.cpsr.Mode)
		if err != nil {
			mc.warn(execution.SPSRAccessOutsideException)
			return
		}
		spsr.Load(val)
		_ = mc.file.SetSPSR(mc.cpsr.Mode, spsr)
		return
	}

	newMode := registers.Mode(val & 0x1f)
	if newMode != mc.cpsr.Mode {
		mc.changeMode(newMode)
	}
	mc.cpsr.Load(val)
}

func (mc *CPU) executeMsrFlag(v instructions.MsrFlag) {
	var val uint32
	if v.IsImmediate {
		val = bits.RotateLeft32(uint32(v.Imm), -int(v.Rotate)*2)
	} else {
		val = mc.R(int(v.Rm))
	}

	if v.SPSR {
		spsr, err := mc.file.SPSR(mc.cpsr.Mode)
		if err != nil {
			mc.warn(execution.SPSRAccessOutsideException)
			return
		}
		spsr.SetFlags(val)
		_ = mc.file.SetSPSR(mc.cpsr.Mode, spsr)
		return
	}

	mc.cpsr.SetFlags(val)
}

func (mc *CPU) executeSoftwareInterrupt(cur uint32, l uint32) {
	old := mc.cpsr
	returnAddr := cur + l

	mc.changeMode(registers.Supervisor)
	_ = mc.file.SetSPSR(registers.Supervisor, old)
	mc.cpsr.Thumb = false
	mc.cpsr.IRQDisable = true

	mc.SetR(14, returnAddr)
	mc.file.SetPC(swiVector)
	mc.flushPipeline()
}
