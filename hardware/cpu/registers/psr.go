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

// PSR is a program status register, used for both CPSR and the banked SPSRs.
// Bits [27:8] are architecturally reserved; this type does not model them at
// all, which has the effect of always reading them back as zero regardless of
// what was last written - the conservative interpretation the reserved-bit
// handling calls for.
type PSR struct {
	Mode Mode

	// Thumb is the T bit: false selects ARM state, true selects Thumb state.
	Thumb bool

	FIQDisable bool
	IRQDisable bool

	// N, Z, C, V are the condition flags, bits 31..28.
	N bool
	Z bool
	C bool
	V bool
}

// NewPSR returns a PSR for mode with every flag clear and ARM state selected.
func NewPSR(mode Mode) PSR {
	return PSR{Mode: mode}
}

// Label returns the canonical abbreviation for the register, used in
// disassembly and logging.
func (p PSR) Label() string {
	return "PSR"
}

// Value encodes the PSR into its 32 bit representation. Reserved bits read as
// zero.
func (p PSR) Value() uint32 {
	v := uint32(p.Mode)

	if p.Thumb {
		v |= 1 << 5
	}
	if p.FIQDisable {
		v |= 1 << 6
	}
	if p.IRQDisable {
		v |= 1 << 7
	}
	if p.V {
		v |= 1 << 28
	}
	if p.C {
		v |= 1 << 29
	}
	if p.Z {
		v |= 1 << 30
	}
	if p.N {
		v |= 1 << 31
	}

	return v
}

// Load assigns every architecturally writable field of the PSR from v: mode,
// state, the interrupt disable bits, and NZCV. This is the "set_all" path -
// the only way the mode field (and so the reserved-bit treatment) is ever
// replaced wholesale, as opposed to the flag-only path used by MSR in
// flag-bits mode (see SetFlags).
func (p *PSR) Load(v uint32) {
	p.Mode = Mode(v & 0x1f)
	p.Thumb = v&(1<<5) != 0
	p.FIQDisable = v&(1<<6) != 0
	p.IRQDisable = v&(1<<7) != 0
	p.setFlagBits(v)
}

// SetFlags updates only N, Z, C, V from bits 31..28 of v, leaving mode, state
// and the interrupt disable bits untouched. This is the MSR flag-bits-only
// path.
func (p *PSR) SetFlags(v uint32) {
	p.setFlagBits(v)
}

func (p *PSR) setFlagBits(v uint32) {
	p.N = v&(1<<31) != 0
	p.C = v&(1<<29) != 0
	p.Z = v&(1<<30) != 0
	p.V = v&(1<<28) != 0
}

func (p PSR) String() string {
	state := "ARM"
	if p.Thumb {
		state = "Thumb"
	}

	flags := [4]byte{'n', 'z', 'c', 'v'}
	if p.N {
		flags[0] = 'N'
	}
	if p.Z {
		flags[1] = 'Z'
	}
	if p.C {
		flags[2] = 'C'
	}
	if p.V {
		flags[3] = 'V'
	}

	return p.Mode.String() + " " + state + " " + string(flags[:])
}
