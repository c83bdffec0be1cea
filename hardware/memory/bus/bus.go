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

// Package bus defines the memory bus concept as seen from the CPU. The bus
// itself - backing arrays for BIOS, WRAM, VRAM, palette, OAM, ROM, and I/O
// register dispatch - lives outside this module entirely. The CPU only ever
// holds a Memory, never a concrete bus type, so it has no way to depend on
// how those regions are implemented or wired together.
package bus

import "github.com/retrogo/goadvance/curated"

// Cycle categorises a bus access for wait-state accounting. The CPU reports
// which kind of access it is making; the bus is the sole authority on how
// many clock cycles that costs.
type Cycle int

const (
	// Sequential marks an access that continues from the previous one (a
	// prefetch following on directly from the last, or a consecutive
	// transfer within a block operation).
	Sequential Cycle = iota

	// NonSequential marks an access whose address is unrelated to the
	// previous one: after a branch, after the last transfer of a block
	// operation, after a swap, and after any load/store that does not feed
	// the next fetch.
	NonSequential

	// Internal marks a cycle spent by the CPU with no bus transaction at
	// all, such as the extra cycles a multiply instruction takes depending
	// on its operand's magnitude.
	Internal
)

// AddressError is returned by a Memory implementation when an address is out
// of range or otherwise cannot be serviced. The CPU does not catch it; it
// propagates to the caller of Step.
const AddressError = "address error: %#08x"

// Memory is the bus contract the CPU core consumes. Every access is tagged
// with the Cycle it represents so that the implementation can account for
// sequential and non-sequential wait states; Sequential/NonSequential apply
// to Read*/Write*, Internal is reported through Cycles alone.
type Memory interface {
	ReadByte(addr uint32, cycle Cycle) (uint8, error)
	ReadHalfword(addr uint32, cycle Cycle) (uint16, error)
	ReadWord(addr uint32, cycle Cycle) (uint32, error)

	WriteByte(addr uint32, value uint8, cycle Cycle) error
	WriteHalfword(addr uint32, value uint16, cycle Cycle) error
	WriteWord(addr uint32, value uint32, cycle Cycle) error

	// Cycles notifies the bus of cycles that do not correspond to a
	// Read/Write call: internal cycles reported by multiply, swap and
	// register-specified shift instructions. n is always >= 1.
	Cycles(cycle Cycle, n int)
}

// NewAddressError builds the curated address error for addr.
func NewAddressError(addr uint32) error {
	return curated.Errorf(AddressError, addr)
}
