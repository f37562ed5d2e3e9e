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

import "github.com/aetherarm/arm7tdmi/bits"

// Branch is the decoded form of B/BL: a PC-relative offset computed
// at decode time, applied against the execution-stage PC (which
// already reads two instructions ahead thanks to the step loop's
// pipeline emulation).
type Branch struct {
	Cond   Condition
	Link   bool
	Offset int32 // sign-extended 24-bit field, already shifted left 2
}

// DecodeBranch extracts a B/BL instruction's fields.
func DecodeBranch(instr uint32) Branch {
	offset := int32(bits.SignExtend(bits.Extract(instr, 0, 24), 24)) << 2
	return Branch{
		Cond:   DecodeCondition(instr),
		Link:   bits.Bit(instr, 24),
		Offset: offset,
	}
}

// Execute performs the branch. The condition is re-checked here (not
// just at the decode gate) because Thumb's conditional branch carries
// its own condition field independently of the step loop's ARM-only
// pre-decode check.
func (b Branch) Execute(r *Registers, bus Bus) error {
	if !b.Cond.Check(r.Negative(), r.Zero(), r.Carry(), r.Overflow()) {
		return nil
	}

	pc := r.Get(RegPC)
	if b.Link {
		r.Set(RegLR, pc-4)
	}
	r.Set(RegPC, uint32(int64(pc)+int64(b.Offset)))
	return nil
}

// BranchExchange is the decoded form of BX/BLX: the target address
// and new Thumb state both come from the register operand's bit 0.
type BranchExchange struct {
	Cond Condition
	Link bool
	Rm   uint
}

// DecodeBranchExchange extracts a BX/BLX instruction's fields.
func DecodeBranchExchange(instr uint32, link bool) BranchExchange {
	return BranchExchange{
		Cond: DecodeCondition(instr),
		Link: link,
		Rm:   uint(bits.Extract(instr, 0, 4)),
	}
}

// Execute performs the branch-and-exchange.
func (b BranchExchange) Execute(r *Registers, bus Bus) error {
	target := r.Get(b.Rm)
	if b.Link {
		r.Set(RegLR, r.Get(RegPC)-4)
	}
	r.SetThumb(bits.Bit(target, 0))
	r.Set(RegPC, target&^1)
	return nil
}
