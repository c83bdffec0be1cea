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

package instructions_test

import (
	"testing"

	"github.com/retrogo/goadvance/hardware/cpu/instructions"
)

func TestDisassembleARM(t *testing.T) {
	cases := []struct {
		name string
		in   instructions.ARM
		want string
	}{
		{
			name: "bx_lr",
			in:   instructions.ARM{Condition: instructions.AL, Variant: instructions.BranchAndExchange{Rn: 14}},
			want: "BX R14",
		},
		{
			name: "bl_forward_eq",
			in: instructions.ARM{Condition: instructions.EQ, Variant: instructions.Branch{
				Link: true, Offset: 8,
			}},
			want: "BLEQ #8",
		},
		{
			name: "mul",
			in: instructions.ARM{Condition: instructions.AL, Variant: instructions.Multiply{
				Rd: 1, Rn: 0, Rs: 3, Rm: 2,
			}},
			want: "MUL R1,R2,R3",
		},
		{
			name: "mla_set",
			in: instructions.ARM{Condition: instructions.AL, Variant: instructions.Multiply{
				Rd: 1, Rn: 4, Rs: 3, Rm: 2, Accumulate: true, Set: true,
			}},
			want: "MLAS R1,R2,R3,R4",
		},
		{
			name: "and_immediate",
			in: instructions.ARM{Condition: instructions.AL, Variant: instructions.DataProcessing{
				Rn: 1, Rd: 0, Op: instructions.OpAND,
				Operand2: instructions.Operand2{IsImmediate: true, Imm: 5},
			}},
			want: "AND R0,R1,#5",
		},
		{
			name: "cmp_register",
			in: instructions.ARM{Condition: instructions.AL, Variant: instructions.DataProcessing{
				Rn: 2, Op: instructions.OpCMP,
				Operand2: instructions.Operand2{Shift: instructions.Shift{
					Rm: 3, Type: instructions.LSL, Immediate: true, Operand: 0,
				}},
			}},
			want: "CMP R2,R3,LSL #0",
		},
		{
			name: "swi",
			in:   instructions.ARM{Condition: instructions.AL, Variant: instructions.SoftwareInterrupt{Comment: 0}},
			want: "SWI #0",
		},
		{
			name: "undefined",
			in:   instructions.ARM{Condition: instructions.AL, Variant: instructions.Undefined{Opcode: 0xF0000000}},
			want: "UND",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if got := instructions.DisassembleARM(c.in); got != c.want {
				t.Errorf("DisassembleARM(%+v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestDisassembleThumb(t *testing.T) {
	cases := []struct {
		name string
		in   instructions.Thumb
		want string
	}{
		{
			name: "mov_immediate",
			in: instructions.Thumb{Variant: instructions.MovCmpAddSubImmediate{
				Op: instructions.OpMOVImm, Rd: 0, Imm: 5,
			}},
			want: "MOV R0,#5",
		},
		{
			name: "push_with_lr",
			in: instructions.Thumb{Variant: instructions.PushPopRegister{
				Load: false, StoreLR: true, RegisterList: 0x01,
			}},
			want: "PUSH {R0,LR}",
		},
		{
			name: "pop_with_pc",
			in: instructions.Thumb{Variant: instructions.PushPopRegister{
				Load: true, LoadPC: true, RegisterList: 0x03,
			}},
			want: "POP {R0,R1,PC}",
		},
		{
			name: "unconditional_branch",
			in:   instructions.Thumb{Variant: instructions.UnconditionalBranch{Offset: 10}},
			want: "B #10",
		},
		{
			name: "conditional_branch",
			in: instructions.Thumb{Variant: instructions.ConditionalBranch{
				Condition: instructions.NE, Offset: -4,
			}},
			want: "BNE #-4",
		},
		{
			name: "swi",
			in:   instructions.Thumb{Variant: instructions.SoftwareInterruptThumb{Comment: 1}},
			want: "SWI #1",
		},
		{
			name: "long_branch_high_half",
			in:   instructions.Thumb{Variant: instructions.LongBranchWithLink{High: true, Offset: 0x100}},
			want: "BLH #256",
		},
		{
			name: "multiple_load",
			in: instructions.Thumb{Variant: instructions.MultipleLoad{
				Load: true, Rb: 5, RegisterList: 0x05,
			}},
			want: "LDMIA R5!,{R0,R2}",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if got := instructions.DisassembleThumb(c.in); got != c.want {
				t.Errorf("DisassembleThumb(%+v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
