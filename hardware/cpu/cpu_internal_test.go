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

	"github.com/retrogo/goadvance/hardware/cpu/registers"
	"github.com/retrogo/goadvance/hardware/memory/bus"
	"github.com/retrogo/goadvance/test"
)

// internalMockMem is a minimal bus.Memory for the white box tests in this
// file, which need to reach into unexported CPU state that cpu_test.go's
// black box tests cannot touch.
type internalMockMem struct {
	data map[uint32]uint8
}

func newInternalMockMem() *internalMockMem {
	return &internalMockMem{data: make(map[uint32]uint8)}
}

func (m *internalMockMem) ReadByte(addr uint32, cycle bus.Cycle) (uint8, error) {
	return m.data[addr], nil
}

func (m *internalMockMem) ReadHalfword(addr uint32, cycle bus.Cycle) (uint16, error) {
	return uint16(m.data[addr]) | uint16(m.data[addr+1])<<8, nil
}

func (m *internalMockMem) ReadWord(addr uint32, cycle bus.Cycle) (uint32, error) {
	return uint32(m.data[addr]) | uint32(m.data[addr+1])<<8 |
		uint32(m.data[addr+2])<<16 | uint32(m.data[addr+3])<<24, nil
}

func (m *internalMockMem) WriteByte(addr uint32, v uint8, cycle bus.Cycle) error {
	m.data[addr] = v
	return nil
}

func (m *internalMockMem) WriteHalfword(addr uint32, v uint16, cycle bus.Cycle) error {
	m.data[addr], m.data[addr+1] = uint8(v), uint8(v>>8)
	return nil
}

func (m *internalMockMem) WriteWord(addr uint32, v uint32, cycle bus.Cycle) error {
	m.data[addr] = uint8(v)
	m.data[addr+1] = uint8(v >> 8)
	m.data[addr+2] = uint8(v >> 16)
	m.data[addr+3] = uint8(v >> 24)
	return nil
}

func (m *internalMockMem) Cycles(cycle bus.Cycle, n int) {}

func (m *internalMockMem) putWord(addr uint32, v uint32) {
	_ = m.WriteWord(addr, v, bus.Sequential)
}

// TestScenarioSoftwareInterrupt covers concrete scenario (f): SWI from User
// mode enters Supervisor mode, saves the old CPSR to SPSR_svc and the
// address of the following instruction to R14_svc, and leaves PC pointing
// at the SWI vector, 2*L ahead.
func TestScenarioSoftwareInterrupt(t *testing.T) {
	mem := newInternalMockMem()
	mc := NewCPU(mem)
	mc.changeMode(registers.User)

	// PC - 4, i.e. the address of the instruction following the SWI: PC
	// reads 8 at reset (cur=0, L=4), so the expected return address is 4.
	wantReturnAddr := mc.R(15) - 4
	mem.putWord(0, 0xEF000000) // SWI

	_, err := mc.Step()
	test.ExpectedSuccess(t, err)

	test.Equate(t, mc.CPSR().Mode, registers.Supervisor)
	test.Equate(t, mc.CPSR().Thumb, false)
	test.Equate(t, mc.CPSR().IRQDisable, true)
	test.Equate(t, mc.R(14), wantReturnAddr)
	test.Equate(t, mc.R(15), uint32(0x08+8))

	spsr, err := mc.file.SPSR(registers.Supervisor)
	test.ExpectedSuccess(t, err)
	test.Equate(t, spsr.Mode, registers.User)
}
