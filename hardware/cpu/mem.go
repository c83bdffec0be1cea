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

import "github.com/retrogo/goadvance/hardware/memory/bus"

// These helpers are the only place execution touches the bus. Every one of
// them updates mc.sequential so the next fetch is tagged correctly; callers
// making a burst of related accesses (a block transfer's middle elements)
// pass bus.Sequential explicitly and should not rely on this method to flip
// the flag back on for them.

func (mc *CPU) readByte(addr uint32, cycle bus.Cycle) (uint8, error) {
	v, err := mc.mem.ReadByte(addr, cycle)
	mc.sequential = cycle == bus.Sequential
	return v, err
}

func (mc *CPU) readHalfword(addr uint32, cycle bus.Cycle) (uint16, error) {
	v, err := mc.mem.ReadHalfword(addr, cycle)
	mc.sequential = cycle == bus.Sequential
	return v, err
}

func (mc *CPU) readWord(addr uint32, cycle bus.Cycle) (uint32, error) {
	v, err := mc.mem.ReadWord(addr, cycle)
	mc.sequential = cycle == bus.Sequential
	return v, err
}

func (mc *CPU) writeByte(addr uint32, v uint8, cycle bus.Cycle) error {
	err := mc.mem.WriteByte(addr, v, cycle)
	mc.sequential = cycle == bus.Sequential
	return err
}

func (mc *CPU) writeHalfword(addr uint32, v uint16, cycle bus.Cycle) error {
	err := mc.mem.WriteHalfword(addr, v, cycle)
	mc.sequential = cycle == bus.Sequential
	return err
}

func (mc *CPU) writeWord(addr uint32, v uint32, cycle bus.Cycle) error {
	err := mc.mem.WriteWord(addr, v, cycle)
	mc.sequential = cycle == bus.Sequential
	return err
}

// internalCycle reports n internal (I) cycles to the bus. It does not affect
// mc.sequential: an internal cycle has no address, so it cannot make the
// next access "sequential" to it, but it also doesn't force the next fetch
// to be non-sequential on its own (the instruction doing the reporting will
// already have set that via its own bus traffic).
func (mc *CPU) internalCycle(n int) {
	mc.mem.Cycles(bus.Internal, n)
}
