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

const (
	msrUnallocMask = 0x0FFFFF00
	msrFlagsMask   = 0xF0000000
	msrControlMask = 0x000000FF
	msrStateMask   = 0x00000020
)

// MRS copies the CPSR or SPSR into a general register.
type MRS struct {
	Cond     Condition
	Rd       uint
	FromSPSR bool
}

// Execute performs the MRS transfer.
func (m MRS) Execute(r *Registers, bus Bus) error {
	if m.FromSPSR {
		if !r.HasSPSR() {
			return &ExecutionError{Kind: ErrMSRSPSRUnprivileged, Detail: "MRS from SPSR outside a privileged mode"}
		}
		r.Set(m.Rd, r.SPSR())
		return nil
	}
	r.Set(m.Rd, r.CPSR())
	return nil
}

// MSROperand is either a rotated immediate or a register.
type MSROperand struct {
	IsImmediate bool
	Immediate   uint32
	Rm          uint
}

// MSR writes selected byte lanes (chosen by FieldMask) of the CPSR or
// SPSR from a register or rotated immediate.
type MSR struct {
	Cond      Condition
	ToSPSR    bool
	FieldMask uint32 // 4-bit field mask from bits 16..19
	Operand   MSROperand
}

func fieldLaneMask(fieldMask uint32) uint32 {
	var mask uint32
	for i := uint(0); i < 4; i++ {
		if bits.Bit(fieldMask, i) {
			mask |= 0xFF << (8 * i)
		}
	}
	return mask
}

// Execute performs the MSR field transfer.
func (m MSR) Execute(r *Registers, bus Bus) error {
	var operand uint32
	if m.Operand.IsImmediate {
		operand = m.Operand.Immediate
	} else {
		operand = r.Get(m.Operand.Rm)
	}

	if operand&msrUnallocMask != 0 {
		return &ExecutionError{Kind: ErrMSRReservedBits}
	}

	mask := fieldLaneMask(m.FieldMask)

	if !m.ToSPSR {
		if operand&msrStateMask != 0 {
			return &ExecutionError{Kind: ErrMSRThumbBit}
		}
		if r.IsPrivileged() {
			mask &= msrFlagsMask | msrControlMask
		} else {
			mask &= msrFlagsMask
		}
		r.SetCPSR((r.CPSR() &^ mask) | (operand & mask))
		return nil
	}

	if !r.HasSPSR() {
		return &ExecutionError{Kind: ErrMSRSPSRUnprivileged, Detail: "MSR to SPSR in USR/SYS mode"}
	}
	mask &= msrFlagsMask | msrControlMask | msrStateMask
	r.SetSPSR((r.SPSR() &^ mask) | (operand & mask))
	return nil
}

// DecodeMSR extracts an MSR instruction's fields.
func DecodeMSR(instr uint32) MSR {
	m := MSR{
		Cond:      DecodeCondition(instr),
		ToSPSR:    bits.Bit(instr, 22),
		FieldMask: bits.Extract(instr, 16, 4),
	}

	if bits.Bit(instr, 25) {
		immed8 := bits.Extract(instr, 0, 8)
		rotateImm := bits.Extract(instr, 8, 4)
		m.Operand = MSROperand{IsImmediate: true, Immediate: ror32(immed8, 2*rotateImm)}
	} else {
		m.Operand = MSROperand{Rm: uint(bits.Extract(instr, 0, 4))}
	}

	return m
}

// DecodeMRS extracts an MRS instruction's fields.
func DecodeMRS(instr uint32) MRS {
	return MRS{
		Cond:     DecodeCondition(instr),
		Rd:       uint(bits.Extract(instr, 12, 4)),
		FromSPSR: bits.Bit(instr, 22),
	}
}
