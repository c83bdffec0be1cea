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

import "github.com/retrogo/goadvance/hardware/cpu/instructions"

// evalShift implements the ARM barrel shifter for an already-resolved
// amount: callers are responsible for the immediate-encoding special cases
// (LSR/ASR raw #0 meaning #32, ROR raw #0 meaning RRX) before calling this -
// see resolveShift. A zero amount reaching here (an immediate LSL #0, or a
// register-specified shift whose low byte happened to be zero) always
// passes value and carry through unchanged, for every shift type.
func evalShift(t instructions.ShiftType, value uint32, amount uint8, carryIn bool) (result uint32, carryOut bool) {
	if amount == 0 {
		return value, carryIn
	}

	switch t {
	case instructions.LSL:
		switch {
		case amount > 32:
			return 0, false
		case amount == 32:
			return 0, value&1 != 0
		default:
			return value << amount, value&(1<<(32-amount)) != 0
		}

	case instructions.LSR:
		switch {
		case amount > 32:
			return 0, false
		case amount == 32:
			return 0, value&(1<<31) != 0
		default:
			return value >> amount, value&(1<<(amount-1)) != 0
		}

	case instructions.ASR:
		signed := int32(value)
		if amount >= 32 {
			if signed < 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
		return uint32(signed >> amount), value&(1<<(amount-1)) != 0

	case instructions.ROR:
		amt := amount % 32
		if amt == 0 {
			return value, value&(1<<31) != 0
		}
		return (value >> amt) | (value << (32 - amt)), value&(1<<(amt-1)) != 0
	}

	return value, carryIn
}

// rrx implements ROR#0, the immediate-encoded rotate-right-extended: the
// carry flag is rotated in as bit 31, and the old bit 0 becomes carry out.
func rrx(value uint32, carryIn bool) (result uint32, carryOut bool) {
	result = value >> 1
	if carryIn {
		result |= 1 << 31
	}
	return result, value&1 != 0
}

// resolveShift evaluates a decoded Shift against the current register file,
// applying the immediate-encoding special cases, and returns the shifted
// value plus the shifter's carry out. usedRegisterAmount reports whether the
// shift amount was read from a register (Rs), which costs the instruction
// an extra internal cycle in DataProcessing.
func (mc *CPU) resolveShift(s instructions.Shift) (result uint32, carryOut bool, usedRegisterAmount bool) {
	value := mc.operandRegister(s.Rm)
	carryIn := mc.cpsr.C

	if s.Immediate {
		amount := s.Operand
		if amount == 0 {
			switch s.Type {
			case instructions.LSR, instructions.ASR:
				amount = 32
			case instructions.ROR:
				v, c := rrx(value, carryIn)
				return v, c, false
			}
		}
		v, c := evalShift(s.Type, value, amount, carryIn)
		return v, c, false
	}

	amount := uint8(mc.R(int(s.Operand)))
	v, c := evalShift(s.Type, value, amount, carryIn)
	return v, c, true
}

// operandRegister reads register n the way a shifted operand does: R15
// reads as the address of the current instruction + 2*L (the same "PC is
// always 2 instructions ahead" value the pipeline invariant already leaves
// in R15, so this is just mc.R(15)).
func (mc *CPU) operandRegister(n uint8) uint32 {
	return mc.R(int(n))
}

// add computes a + b + cIn, ARM-convention carry (set on unsigned overflow
// past bit 31) and overflow (signed overflow).
func add(a, b uint32, cIn bool) (result uint32, carry, overflow bool) {
	var c uint64
	if cIn {
		c = 1
	}
	sum := uint64(a) + uint64(b) + c
	result = uint32(sum)
	carry = sum > 0xFFFFFFFF
	overflow = (a^b)&0x80000000 == 0 && (a^result)&0x80000000 != 0
	return result, carry, overflow
}

// sub computes a - b, ARM-convention carry (set when there is no borrow,
// i.e. a >= b) and overflow.
func sub(a, b uint32) (result uint32, carry, overflow bool) {
	result = a - b
	carry = a >= b
	overflow = (a^b)&0x80000000 != 0 && (a^result)&0x80000000 != 0
	return result, carry, overflow
}

// sbc computes a - b - (1 - cIn), the ARM subtract-with-carry form, using
// the same no-borrow carry convention as sub.
func sbc(a, b uint32, cIn bool) (result uint32, carry, overflow bool) {
	borrow := uint64(1)
	if cIn {
		borrow = 0
	}
	full := uint64(a) - uint64(b) - borrow
	result = uint32(full)
	carry = int64(full) >= 0
	overflow = (a^b)&0x80000000 != 0 && (a^result)&0x80000000 != 0
	return result, carry, overflow
}

// mulCycles returns the number of cycles a multiply's Rs operand costs,
// per the early-termination rule: 1 if bits [31:8] are all zero (all one in
// signed mode), 2 if [31:16], 3 if [31:24], else 4.
func mulCycles(x uint32, signedMode bool) int {
	if signedMode && x&0x80000000 != 0 {
		x = ^x
	}
	switch {
	case x&0xFFFFFF00 == 0:
		return 1
	case x&0xFFFF0000 == 0:
		return 2
	case x&0xFF000000 == 0:
		return 3
	default:
		return 4
	}
}
