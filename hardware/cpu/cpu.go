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

// Package cpu implements the ARM7TDMI (ARMv4T) core: decode, execute and the
// banked register/PSR state machine. It knows nothing about what is mapped
// where in memory - it only ever talks to the bus.Memory it is constructed
// with.
package cpu

import (
	"github.com/retrogo/goadvance/hardware/cpu/execution"
	"github.com/retrogo/goadvance/hardware/cpu/instructions"
	"github.com/retrogo/goadvance/hardware/cpu/registers"
	"github.com/retrogo/goadvance/hardware/memory/bus"
	"github.com/retrogo/goadvance/logger"
)

// resetVector is the address execution conceptually starts from; PC is
// constructed pointing two instructions ahead of it, per the pipeline
// invariant.
const resetVector = 0x00000000

// swiVector is the only exception vector step() itself ever enters.
const swiVector = 0x00000008

// CPU implements the ARM7TDMI found in the Game Boy Advance. All
// architectural state lives here or in the registers sub-package; decode and
// the shifter/ALU primitives are pure functions of that state plus a fetched
// opcode.
type CPU struct {
	file registers.File
	cpsr registers.PSR

	mem bus.Memory

	// sequential is true when the next bus access continues from the last
	// one (see bus.Cycle). It is updated after every access the CPU makes,
	// not just fetches.
	sequential bool

	// pipelineFlushed is set by any instruction that writes PC as a side
	// effect. step() consults it once, at the end of the instruction, to
	// decide whether to advance PC by L or by 2L.
	pipelineFlushed bool

	// LastResult describes the most recently executed instruction. It is
	// overwritten wholesale by every Step call.
	LastResult execution.Result
}

// NewCPU constructs a CPU wired to mem and immediately resets it.
func NewCPU(mem bus.Memory) *CPU {
	mc := &CPU{mem: mem}
	mc.Reset()
	return mc
}

// instructionSize returns 4 in ARM state, 2 in Thumb state.
func (mc *CPU) instructionSize() uint32 {
	if mc.cpsr.Thumb {
		return 2
	}
	return 4
}

// Reset reinitialises the CPU to the state described by the reset
// invariant: CPSR.mode = Supervisor, ARM state, IRQ and FIQ disabled, every
// GPR zero, PC = 2*L_arm.
func (mc *CPU) Reset() {
	mc.file = registers.NewFile(registers.Supervisor)
	mc.cpsr = registers.NewPSR(registers.Supervisor)
	mc.cpsr.IRQDisable = true
	mc.cpsr.FIQDisable = true
	mc.sequential = false
	mc.pipelineFlushed = false
	mc.file.SetPC(resetVector + 2*4)
	mc.LastResult.Reset()
}

// changeMode performs the banking switch described by the mode-banking
// invariant and updates CPSR.Mode to match.
func (mc *CPU) changeMode(to registers.Mode) {
	mc.file.ChangeMode(to)
	mc.cpsr.Mode = to
}

// R returns the value of register n (0-15) as currently visible.
func (mc *CPU) R(n int) uint32 {
	if n == 15 {
		return mc.file.PC()
	}
	return mc.file.R(n)
}

// SetR sets register n (0-15). Writing R15 does not by itself flush the
// pipeline - callers that mean to branch must set flushPipeline
// themselves; this mirrors the architecture, where only specific
// instructions treat a PC write as a branch.
func (mc *CPU) SetR(n int, v uint32) {
	if n == 15 {
		mc.file.SetPC(v)
		return
	}
	mc.file.SetR(n, v)
}

// CPSR returns a copy of the current program status register.
func (mc *CPU) CPSR() registers.PSR {
	return mc.cpsr
}

// flags adapts the CPU's condition flags to the small struct the
// instructions package's Condition.Satisfied consumes.
func (mc *CPU) flags() instructions.Flags {
	return instructions.Flags{N: mc.cpsr.N, Z: mc.cpsr.Z, C: mc.cpsr.C, V: mc.cpsr.V}
}

func (mc *CPU) flushPipeline() {
	mc.pipelineFlushed = true
}

func (mc *CPU) warn(w execution.Warning) {
	mc.LastResult.Warning = w
	logger.Logf("CPU", "%s", string(w))
}

// Step executes exactly one instruction: fetch, decode, execute, advance.
// It returns a copy of the result it also stores in LastResult. A non-nil
// error is always a bus fault, propagated verbatim from the Memory
// implementation; the CPU does not interpret it.
func (mc *CPU) Step() (execution.Result, error) {
	mc.LastResult.Reset()
	mc.pipelineFlushed = false

	l := mc.instructionSize()
	cur := mc.file.PC() - 2*l

	cycle := bus.Sequential
	if !mc.sequential {
		cycle = bus.NonSequential
	}

	mc.LastResult.Address = cur
	mc.LastResult.Thumb = mc.cpsr.Thumb
	mc.LastResult.Size = l

	if mc.cpsr.Thumb {
		opcode, err := mc.mem.ReadHalfword(cur, cycle)
		if err != nil {
			return mc.LastResult, err
		}
		mc.LastResult.Opcode = uint32(opcode)
		mc.sequential = true

		decoded := instructions.DecodeThumb(opcode)
		if err := mc.executeThumb(decoded, cur, l); err != nil {
			return mc.LastResult, err
		}
	} else {
		opcode, err := mc.mem.ReadWord(cur, cycle)
		if err != nil {
			return mc.LastResult, err
		}
		mc.LastResult.Opcode = opcode
		mc.sequential = true

		decoded := instructions.DecodeARM(opcode, l)
		if !decoded.Condition.Satisfied(mc.flags()) {
			mc.LastResult.ConditionFailed = true
			mc.file.SetPC(mc.file.PC() + l)
			return mc.LastResult, nil
		}

		if err := mc.executeARM(decoded.Variant, cur, l); err != nil {
			return mc.LastResult, err
		}
	}

	mc.LastResult.PipelineFlushed = mc.pipelineFlushed
	if mc.pipelineFlushed {
		// Every branching instruction leaves the bare target address (the
		// address of the instruction it is jumping to) in PC; the +2L
		// pipeline-ahead constant is added uniformly here, using whatever
		// instruction size the branch leaves the CPU in (BX and the Thumb/ARM
		// interworking paths can change it mid-step).
		mc.file.SetPC(mc.file.PC() + 2*mc.instructionSize())
	} else {
		// The pipeline-ahead invariant is maintained relative to PC itself,
		// not recomputed from the fetch address: PC was cur+2L on entry, and
		// a non-branching instruction simply moves that window forward by L.
		mc.file.SetPC(mc.file.PC() + l)
	}

	return mc.LastResult, nil
}
