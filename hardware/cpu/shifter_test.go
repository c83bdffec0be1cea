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
	"testing"

	"github.com/retrogo/goadvance/hardware/cpu/instructions"
	"github.com/retrogo/goadvance/test"
)

// TestShiftIdentityLSLZero covers LSL(v, 0) == v: a zero amount passes
// value and carry-in straight through.
func TestShiftIdentityLSLZero(t *testing.T) {
	v := uint32(0xDEADBEEF)
	result, carry := evalShift(instructions.LSL, v, 0, true)
	test.Equate(t, result, v)
	test.Equate(t, carry, true)

	result, carry = evalShift(instructions.LSL, v, 0, false)
	test.Equate(t, result, v)
	test.Equate(t, carry, false)
}

// TestShiftIdentityLSR32 covers LSR(v, 32) == 0 with carry out = bit 31 of v.
func TestShiftIdentityLSR32(t *testing.T) {
	result, carry := evalShift(instructions.LSR, 0x80000001, 32, false)
	test.Equate(t, result, uint32(0))
	test.Equate(t, carry, true)

	result, carry = evalShift(instructions.LSR, 0x7FFFFFFF, 32, false)
	test.Equate(t, result, uint32(0))
	test.Equate(t, carry, false)
}

// TestShiftIdentityASR32 covers ASR(v, 32): result is all-ones when v is
// negative, zero otherwise; carry out is bit 31 either way.
func TestShiftIdentityASR32(t *testing.T) {
	result, carry := evalShift(instructions.ASR, 0x80000000, 32, false)
	test.Equate(t, result, uint32(0xFFFFFFFF))
	test.Equate(t, carry, true)

	result, carry = evalShift(instructions.ASR, 0x7FFFFFFF, 32, false)
	test.Equate(t, result, uint32(0))
	test.Equate(t, carry, false)
}

// TestShiftIdentityROR32 covers ROR(v, 32) == v with carry out = bit 31 of v.
func TestShiftIdentityROR32(t *testing.T) {
	v := uint32(0x8000F00D)
	result, carry := evalShift(instructions.ROR, v, 32, false)
	test.Equate(t, result, v)
	test.Equate(t, carry, true)
}

// TestShiftIdentityRRX covers ROR#0 (RRX): the carry flag rotates in as bit
// 31, and the displaced bit 0 becomes carry out.
func TestShiftIdentityRRX(t *testing.T) {
	result, carry := rrx(0x00000003, true)
	test.Equate(t, result, uint32(0x80000001))
	test.Equate(t, carry, true)

	result, carry = rrx(0x00000002, false)
	test.Equate(t, result, uint32(0x00000001))
	test.Equate(t, carry, false)
}

// TestFlagAlgebraSubCarry covers sub(a, b).carry == (a >= b), the ARM
// no-borrow convention.
func TestFlagAlgebraSubCarry(t *testing.T) {
	_, carry, _ := sub(5, 3)
	test.Equate(t, carry, true)

	_, carry, _ = sub(3, 5)
	test.Equate(t, carry, false)

	_, carry, _ = sub(5, 5)
	test.Equate(t, carry, true)
}

// TestFlagAlgebraAddCarry covers add(a, b).carry == (a+b overflows 32 bits).
func TestFlagAlgebraAddCarry(t *testing.T) {
	_, carry, _ := add(0xFFFFFFFF, 1, false)
	test.Equate(t, carry, true)

	_, carry, _ = add(1, 1, false)
	test.Equate(t, carry, false)
}

// TestFlagAlgebraCmpSelf covers cmp(a, a): Z and C set, N and V clear.
func TestFlagAlgebraCmpSelf(t *testing.T) {
	a := uint32(0x12345678)
	result, carry, overflow := sub(a, a)
	test.Equate(t, result, uint32(0))
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)
	test.Equate(t, result&0x80000000 != 0, false)
}

// TestFlagAlgebraAddOverflow covers add(0x7FFFFFFF, 1): V and N set, the
// canonical signed-overflow-into-negative case.
func TestFlagAlgebraAddOverflow(t *testing.T) {
	result, _, overflow := add(0x7FFFFFFF, 1, false)
	test.Equate(t, overflow, true)
	test.Equate(t, result&0x80000000 != 0, true)
}

// TestMulCyclesEarlyTermination covers the early-termination boundaries of
// mulCycles in unsigned mode.
func TestMulCyclesEarlyTermination(t *testing.T) {
	test.Equate(t, mulCycles(0x00000000, false), 1)
	test.Equate(t, mulCycles(0x000000FF, false), 1)
	test.Equate(t, mulCycles(0x0000FF00, false), 2)
	test.Equate(t, mulCycles(0x00FF0000, false), 3)
	test.Equate(t, mulCycles(0xFF000000, false), 4)
}
