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

package registers

import "github.com/retrogo/goadvance/curated"

// SPSRUnavailable is reported when something tries to read or write the SPSR
// while in User or System mode, neither of which banks one.
const SPSRUnavailable = "no SPSR banked for mode %s"

// File is the sixteen entry general purpose register file, together with the
// shadow storage the ARMv4T mode-banking scheme requires. R15 is always the
// program counter; the file itself attaches no other meaning to any slot.
//
// The zero value is not usable; construct one with NewFile.
type File struct {
	r [16]uint32

	// r13, r14 shadow storage, one slot per bank. The currently visible
	// bank's slot is stale until the next mode switch away from it - the
	// live values sit in r[13] and r[14] in the meantime.
	r13 [numBanks]uint32
	r14 [numBanks]uint32

	// r8Through12 holds R8-R12 for whichever of {shared, FIQ} is not
	// currently visible. FIQ is the only mode that banks these registers;
	// every other mode shares the same copy.
	r8Through12    [5]uint32
	r8Through12FIQ [5]uint32

	spsr    [numBanks]PSR
	current bank
}

// NewFile returns a File with every GPR zero, its visible bank set to mode's,
// and no registers preserved (nothing to preserve - this is construction, not
// a mode switch).
func NewFile(mode Mode) File {
	return File{current: bankOf(mode)}
}

// R returns the current value of register n (0-15).
func (f *File) R(n int) uint32 {
	return f.r[n]
}

// SetR sets register n (0-15) to v.
func (f *File) SetR(n int, v uint32) {
	f.r[n] = v
}

// PC returns R15.
func (f *File) PC() uint32 {
	return f.r[15]
}

// SetPC sets R15.
func (f *File) SetPC(v uint32) {
	f.r[15] = v
}

// ChangeMode performs the banking switch described by the mode-banking
// invariant: the overlapping window of the outgoing mode is saved into its
// shadow, and the incoming mode's shadow is restored into the visible
// window. Switching to a mode that shares the current bank (including
// User<->System, and a mode switching to itself) is a no-op on the
// registers, though `current` still settles on the new bank's identity.
func (f *File) ChangeMode(to Mode) {
	toBank := bankOf(to)
	from := f.current

	if toBank == from {
		f.current = toBank
		return
	}

	f.r13[from] = f.r[13]
	f.r14[from] = f.r[14]

	if from == bankFIQ {
		copy(f.r8Through12FIQ[:], f.r[8:13])
		copy(f.r[8:13], f.r8Through12[:])
	} else if toBank == bankFIQ {
		copy(f.r8Through12[:], f.r[8:13])
		copy(f.r[8:13], f.r8Through12FIQ[:])
	}

	f.r[13] = f.r13[toBank]
	f.r[14] = f.r14[toBank]
	f.current = toBank
}

// SPSR returns the SPSR banked for the currently visible mode. It errors if
// the current mode is User or System, neither of which banks one.
func (f *File) SPSR(current Mode) (PSR, error) {
	if !hasSPSR(current) {
		return PSR{}, curated.Errorf(SPSRUnavailable, current)
	}
	return f.spsr[bankOf(current)], nil
}

// SetSPSR assigns the SPSR banked for the currently visible mode. It errors
// under the same condition as SPSR.
func (f *File) SetSPSR(current Mode, p PSR) error {
	if !hasSPSR(current) {
		return curated.Errorf(SPSRUnavailable, current)
	}
	f.spsr[bankOf(current)] = p
	return nil
}
