// This file is part of AetherARM.
//
// AetherARM is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// AetherARM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with AetherARM.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"time"

	"github.com/aetherarm/arm7tdmi/logger"
)

// DefaultClockHz is the clock rate of the emulated processor. Hosts
// that want real-time pacing pass it (or a multiple of it) in Config.
const DefaultClockHz = 16_777_216

// Config collects the tunables a host can set when constructing a CPU.
// The zero value is a free-running core.
type Config struct {
	// ClockHz paces execution toward the given clock rate, against the
	// approximate two-cycles-per-instruction budget: each instruction
	// adds its share to a debt that is slept off once it reaches a
	// millisecond. Zero disables pacing. The
	// pacing is a convenience for hosts with no frame source of their
	// own, not a timing guarantee.
	ClockHz float64
}

// CPU couples a register file to a bus and drives the fetch/decode/
// execute loop one instruction at a time. It owns no concurrency of
// its own: Step is called synchronously by whatever host is pacing
// emulation.
type CPU struct {
	Registers
	Bus    Bus
	Config Config
	Cycles uint64

	// LastDecoded is the operation executed by the most recent Step
	// call, kept for disassembly and debugger use.
	LastDecoded Operation
	LastPC      uint32

	// accumulated pacing debt. the per-instruction interval is far
	// below what time.Sleep can resolve, so the debt is paid off in
	// coarser chunks.
	paceDebt time.Duration
}

// NewCPU creates a free-running CPU wired to bus, reset to its
// power-up state.
func NewCPU(bus Bus) *CPU {
	return NewCPUWithConfig(bus, Config{})
}

// NewCPUWithConfig is NewCPU with explicit tunables.
func NewCPUWithConfig(bus Bus, cfg Config) *CPU {
	c := &CPU{Bus: bus, Config: cfg}
	c.Reset()
	return c
}

// Step fetches, decodes and executes exactly one instruction,
// advancing and retreating PC per the architecture's two-stage
// pipeline convention. A non-nil error is always fatal. A DecodeError
// or ExecutionError carries the fetch address and, once the
// instruction has been fetched, its raw word; bus errors are returned
// as the bus reported them.
func (c *CPU) Step() error {
	if c.Thumb() {
		return c.stepThumb()
	}
	return c.stepARM()
}

func (c *CPU) stepARM() error {
	fetchPC := c.Get(RegPC)
	instr, err := c.Bus.Read32(fetchPC)
	if err != nil {
		return err
	}

	c.Set(RegPC, fetchPC+4)

	cond := DecodeCondition(instr)
	if cond == NV {
		return &DecodeError{Kind: ErrReservedCondition, Instr: instr, PC: fetchPC}
	}

	if !cond.Check(c.Negative(), c.Zero(), c.Carry(), c.Overflow()) {
		return nil
	}

	op, err := DecodeARM(instr)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.PC = fetchPC
		}
		return err
	}

	return c.execute(op, instr, fetchPC, 4)
}

func (c *CPU) stepThumb() error {
	fetchPC := c.Get(RegPC)
	if fetchPC&1 != 0 {
		return &ExecutionError{Kind: ErrMisalignedThumbFetch, PC: fetchPC}
	}

	halfword, err := c.Bus.Read16(fetchPC)
	if err != nil {
		return err
	}

	c.Set(RegPC, fetchPC+2)

	op := DecodeThumb(halfword)

	return c.execute(op, uint32(halfword), fetchPC, 2)
}

// execute runs op, applying the second pipeline advance beforehand and
// retreating PC afterward if no branch occurred.
func (c *CPU) execute(op Operation, instr uint32, fetchPC uint32, width uint32) error {
	c.Set(RegPC, c.Get(RegPC)+width)
	c.ClearBranchHappened()

	logger.Logf("CPU", "%08x: %s", fetchPC, op)

	if err := op.Execute(&c.Registers, c.Bus); err != nil {
		attachErrorLocation(err, instr, fetchPC)
		return err
	}

	if !c.BranchHappened() {
		c.Set(RegPC, c.Get(RegPC)-width)
	}

	c.Cycles += 2
	c.LastDecoded = op
	c.LastPC = fetchPC

	if c.Config.ClockHz > 0 {
		c.paceDebt += time.Duration(2 * float64(time.Second) / c.Config.ClockHz)
		if c.paceDebt >= time.Millisecond {
			time.Sleep(c.paceDebt)
			c.paceDebt = 0
		}
	}

	return nil
}

func attachErrorLocation(err error, instr uint32, pc uint32) {
	switch e := err.(type) {
	case *DecodeError:
		if e.Instr == 0 {
			e.Instr = instr
		}
		if e.PC == 0 {
			e.PC = pc
		}
	case *ExecutionError:
		if e.Instr == 0 {
			e.Instr = instr
		}
		if e.PC == 0 {
			e.PC = pc
		}
	}
}
