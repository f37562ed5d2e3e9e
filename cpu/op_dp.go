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

// DPOpcode is one of the sixteen data-processing opcodes.
type DPOpcode uint32

const (
	DPAnd DPOpcode = iota
	DPEor
	DPSub
	DPRsb
	DPAdd
	DPAdc
	DPSbc
	DPRsc
	DPTst
	DPTeq
	DPCmp
	DPCmn
	DPOrr
	DPMov
	DPBic
	DPMvn
)

var dpMnemonics = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

func (op DPOpcode) String() string {
	if int(op) < len(dpMnemonics) {
		return dpMnemonics[op]
	}
	return "???"
}

// DecodeDPOpcode extracts the data-processing opcode field (bits 21..24).
func DecodeDPOpcode(instr uint32) DPOpcode {
	return DPOpcode(bits.Extract(instr, 21, 4))
}

// isTest reports whether opcode ignores the destination register.
func (op DPOpcode) isTest() bool {
	switch op {
	case DPTst, DPTeq, DPCmp, DPCmn:
		return true
	default:
		return false
	}
}

// isMove reports whether opcode ignores the first operand register.
func (op DPOpcode) isMove() bool {
	return op == DPMov || op == DPMvn
}

// DataProcessing is the decoded form of a data-processing instruction.
// Operand2 evaluation (and therefore register reads) is deferred to
// Execute, matching the architecture's rule that the shifter operand
// is resolved against live register state.
type DataProcessing struct {
	Cond     Condition
	Opcode   DPOpcode
	SetFlags bool
	Rd       uint
	Rn       uint
	Operand2 Operand2
}

// DecodeDataProcessing extracts a full data-processing instruction,
// including its operand-2 field.
func DecodeDataProcessing(instr uint32) DataProcessing {
	return DataProcessing{
		Cond:     DecodeCondition(instr),
		Opcode:   DecodeDPOpcode(instr),
		SetFlags: bits.Bit(instr, 20),
		Rd:       uint(bits.Extract(instr, 12, 4)),
		Rn:       uint(bits.Extract(instr, 16, 4)),
		Operand2: DecodeOperand2(instr),
	}
}

func setNZ(r *Registers, result uint32) {
	r.SetNegative(bits.Bit(result, 31))
	r.SetZero(result == 0)
}

// Execute performs the data-processing operation against r.
func (dp DataProcessing) Execute(r *Registers, bus Bus) error {
	so, sco := dp.Operand2.Eval(r)
	rn := r.Get(dp.Rn)

	if dp.Rd == RegPC && dp.SetFlags && !dp.Opcode.isTest() {
		if !r.HasSPSR() {
			return &ExecutionError{Kind: ErrUnimplemented, Detail: "data-processing SPSR->CPSR transfer outside a privileged mode"}
		}
		return &ExecutionError{Kind: ErrUnimplemented, Detail: "data-processing SPSR->CPSR transfer on PC destination"}
	}

	switch dp.Opcode {
	case DPAnd:
		result := rn & so
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(sco)
		}

	case DPEor:
		result := rn ^ so
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(sco)
		}

	case DPSub:
		result, borrow, overflow := bits.SubFlags(rn, so)
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(!borrow)
			r.SetOverflow(overflow)
		}

	case DPRsb:
		result, borrow, overflow := bits.SubFlags(so, rn)
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(!borrow)
			r.SetOverflow(overflow)
		}

	case DPAdd:
		result, carry, overflow := bits.AddFlags(rn, so)
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(carry)
			r.SetOverflow(overflow)
		}

	case DPAdc:
		cin := uint32(0)
		if r.Carry() {
			cin = 1
		}
		result, carry, overflow := bits.AddFlagsC(rn, so, cin)
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(carry)
			r.SetOverflow(overflow)
		}

	case DPSbc:
		cin := uint32(0)
		if r.Carry() {
			cin = 1
		}
		result, borrow, overflow := bits.SubFlagsC(rn, so, cin)
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(!borrow)
			r.SetOverflow(overflow)
		}

	case DPRsc:
		cin := uint32(0)
		if r.Carry() {
			cin = 1
		}
		result, borrow, overflow := bits.SubFlagsC(so, rn, cin)
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(!borrow)
			r.SetOverflow(overflow)
		}

	case DPTst:
		result := rn & so
		setNZ(r, result)
		r.SetCarry(sco)

	case DPTeq:
		result := rn ^ so
		setNZ(r, result)
		r.SetCarry(sco)

	case DPCmp:
		result, borrow, overflow := bits.SubFlags(rn, so)
		setNZ(r, result)
		r.SetCarry(!borrow)
		r.SetOverflow(overflow)

	case DPCmn:
		result, carry, overflow := bits.AddFlags(rn, so)
		setNZ(r, result)
		r.SetCarry(carry)
		r.SetOverflow(overflow)

	case DPOrr:
		result := rn | so
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(sco)
		}

	case DPMov:
		r.Set(dp.Rd, so)
		if dp.SetFlags {
			setNZ(r, so)
			r.SetCarry(sco)
		}

	case DPBic:
		result := rn &^ so
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(sco)
		}

	case DPMvn:
		result := ^so
		r.Set(dp.Rd, result)
		if dp.SetFlags {
			setNZ(r, result)
			r.SetCarry(sco)
		}
	}

	return nil
}
