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

package registers_test

import (
	"testing"

	"github.com/retrogo/goadvance/hardware/cpu/registers"
	"github.com/retrogo/goadvance/test"
)

var allModes = []registers.Mode{
	registers.User,
	registers.FIQ,
	registers.IRQ,
	registers.Supervisor,
	registers.Abort,
	registers.Undefined,
	registers.System,
}

// TestModeRoundTrip verifies property 2: for every mode pair (A, B),
// switching A->B->A restores the visible register window bit-for-bit, and
// the SPSR of A is preserved.
func TestModeRoundTrip(t *testing.T) {
	for _, a := range allModes {
		for _, b := range allModes {
			f := registers.NewFile(a)

			for n := 8; n < 15; n++ {
				f.SetR(n, uint32(n)*0x01010101)
			}

			var aSPSR registers.PSR
			if a != registers.User && a != registers.System {
				aSPSR = registers.NewPSR(a)
				aSPSR.N = true
				_ = f.SetSPSR(a, aSPSR)
			}

			before := snapshot(&f)

			f.ChangeMode(b)
			f.ChangeMode(a)

			after := snapshot(&f)
			test.Equate(t, after, before)

			if a != registers.User && a != registers.System {
				got, err := f.SPSR(a)
				test.ExpectedSuccess(t, err)
				test.Equate(t, got, aSPSR)
			}
		}
	}
}

func snapshot(f *registers.File) [16]uint32 {
	var s [16]uint32
	for n := 0; n < 16; n++ {
		s[n] = f.R(n)
	}
	return s
}

func TestFIQBanksR8ThroughR12(t *testing.T) {
	f := registers.NewFile(registers.User)
	for n := 8; n <= 12; n++ {
		f.SetR(n, 0xaaaaaaaa)
	}

	f.ChangeMode(registers.FIQ)
	for n := 8; n <= 12; n++ {
		f.SetR(n, 0xbbbbbbbb)
	}

	f.ChangeMode(registers.User)
	for n := 8; n <= 12; n++ {
		test.Equate(t, f.R(n), uint32(0xaaaaaaaa))
	}

	f.ChangeMode(registers.FIQ)
	for n := 8; n <= 12; n++ {
		test.Equate(t, f.R(n), uint32(0xbbbbbbbb))
	}
}

func TestUserAndSystemShareOneBank(t *testing.T) {
	f := registers.NewFile(registers.User)
	f.SetR(13, 0x1000)
	f.SetR(14, 0x2000)

	f.ChangeMode(registers.System)
	test.Equate(t, f.R(13), uint32(0x1000))
	test.Equate(t, f.R(14), uint32(0x2000))

	f.SetR(13, 0x3000)
	f.ChangeMode(registers.User)
	test.Equate(t, f.R(13), uint32(0x3000))
}

func TestSPSRUnavailableInUserAndSystem(t *testing.T) {
	f := registers.NewFile(registers.User)
	_, err := f.SPSR(registers.User)
	test.ExpectedFailure(t, err)

	err = f.SetSPSR(registers.System, registers.NewPSR(registers.System))
	test.ExpectedFailure(t, err)
}
