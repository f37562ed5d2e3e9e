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

// ShiftType is the two-bit shift-type field shared by data-processing
// operand-2 and load/store scaled-register offsets.
type ShiftType uint32

const (
	ShiftLSL ShiftType = 0b00
	ShiftLSR ShiftType = 0b01
	ShiftASR ShiftType = 0b10
	ShiftROR ShiftType = 0b11
)

// Operand2Kind distinguishes the twelve operand-2 forms a
// data-processing instruction's shifter field may take.
type Operand2Kind int

const (
	Op2Immediate Operand2Kind = iota
	Op2Register
	Op2ShiftImmediate
	Op2ShiftRegister
	Op2RRX
)

// Operand2 is the decoded (but not yet evaluated) operand-2 field of a
// data-processing instruction. Evaluation is deferred to execution
// time because it depends on live register contents and the current
// carry flag.
type Operand2 struct {
	Kind       Operand2Kind
	Immediate  uint32 // already-rotated 8-bit immediate
	RotateImm  uint32 // original rotate_imm field; 0 means "no rotation occurred"
	Rm         uint
	Rs         uint
	ShiftImm   uint
	Shift      ShiftType
	IsRegShift bool
}

// DecodeOperand2 extracts the operand-2 field of an ARM data-processing
// instruction word.
func DecodeOperand2(instr uint32) Operand2 {
	if bits.Bit(instr, 25) {
		immed8 := bits.Extract(instr, 0, 8)
		rotateImm := bits.Extract(instr, 8, 4)
		return Operand2{Kind: Op2Immediate, Immediate: ror32(immed8, 2*rotateImm), RotateImm: rotateImm}
	}

	rm := uint(bits.Extract(instr, 0, 4))
	isRegShift := bits.Bit(instr, 4)
	shiftType := ShiftType(bits.Extract(instr, 5, 2))

	if isRegShift {
		rs := uint(bits.Extract(instr, 8, 4))
		return Operand2{Kind: Op2ShiftRegister, Rm: rm, Rs: rs, Shift: shiftType, IsRegShift: true}
	}

	shiftImm := uint(bits.Extract(instr, 7, 5))
	if shiftType == ShiftLSL && shiftImm == 0 {
		return Operand2{Kind: Op2Register, Rm: rm}
	}
	if shiftType == ShiftROR && shiftImm == 0 {
		return Operand2{Kind: Op2RRX, Rm: rm}
	}
	return Operand2{Kind: Op2ShiftImmediate, Rm: rm, ShiftImm: shiftImm, Shift: shiftType}
}

func ror32(v uint32, n uint32) uint32 {
	n &= 31
	return (v >> n) | (v << (32 - n))
}

// Eval computes the (value, shifter-carry-out) pair for the operand-2
// field given the live register file.
func (o Operand2) Eval(r *Registers) (uint32, bool) {
	switch o.Kind {
	case Op2Immediate:
		if o.RotateImm == 0 {
			return o.Immediate, r.Carry()
		}
		return o.Immediate, bits.Bit(o.Immediate, 31)
	case Op2Register:
		return r.Get(o.Rm), r.Carry()
	case Op2RRX:
		return bits.RRX(r.Carry(), r.Get(o.Rm))
	case Op2ShiftImmediate:
		return evalShift(r.Carry(), r.Get(o.Rm), o.ShiftImm, o.Shift, false)
	case Op2ShiftRegister:
		shiftAmount := r.Get(o.Rs) & 0xFF
		return evalShift(r.Carry(), r.Get(o.Rm), uint(shiftAmount), o.Shift, true)
	default:
		return 0, false
	}
}

// evalShift implements the boundary-case rules for LSL/LSR/ASR/ROR by
// either an immediate (0..31) or a register-supplied amount (0..255,
// already masked to the low byte by the caller).
func evalShift(carryIn bool, rm uint32, amount uint, shift ShiftType, isRegShift bool) (uint32, bool) {
	rm31 := bits.Bit(rm, 31)

	switch shift {
	case ShiftLSL:
		switch {
		case amount == 0:
			return rm, carryIn
		case amount < 32:
			return rm << amount, bits.Bit(rm, 32-amount)
		case amount == 32:
			return 0, bits.Bit(rm, 0)
		default:
			return 0, false
		}

	case ShiftLSR:
		zeroValue, zeroCarry := uint32(0), rm31
		if isRegShift {
			zeroValue, zeroCarry = rm, carryIn
		}
		switch {
		case amount == 0:
			return zeroValue, zeroCarry
		case amount < 32:
			return rm >> amount, bits.Bit(rm, amount-1)
		case amount == 32:
			return 0, bits.Bit(rm, 31)
		default:
			return 0, false
		}

	case ShiftASR:
		zeroValue, zeroCarry := uint32(0), rm31
		if rm31 {
			zeroValue = 0xFFFFFFFF
		}
		if isRegShift {
			zeroValue, zeroCarry = rm, carryIn
		}
		switch {
		case amount == 0:
			return zeroValue, zeroCarry
		case amount < 32:
			return bits.ASR(rm, amount), bits.Bit(rm, amount-1)
		default:
			if rm31 {
				return 0xFFFFFFFF, rm31
			}
			return 0, rm31
		}

	case ShiftROR:
		zeroValue, zeroCarry := rm, carryIn
		if !isRegShift {
			zeroCarry = rm31
		}
		if amount == 0 {
			return zeroValue, zeroCarry
		}
		effective := amount & 31
		if effective == 0 {
			return rm, bits.Bit(rm, 31)
		}
		return ror32(rm, uint32(effective)), bits.Bit(rm, effective-1)

	default:
		return 0, false
	}
}

// LoadStoreAddressingMode is the decoded addressing mode of a single
// load/store instruction.
type LoadStoreAddressingMode struct {
	Up       bool // U bit: add (true) or subtract (false) the offset
	Rn       uint
	Offset   OffsetSource
	Indexing IndexingMode
	MaskBase bool // Thumb PC-relative loads: clear the low two bits of Rn before adding the offset
}

// IndexingMode is one of the three indexing variants a load/store
// instruction can use.
type IndexingMode int

const (
	IndexOffset IndexingMode = iota
	IndexPreIndexed
	IndexPostIndexed
)

// OffsetSource is either a 12-bit immediate offset or a scaled
// register offset sharing the data-processing shift forms.
type OffsetSource struct {
	IsImmediate bool
	Immediate   uint32
	Rm          uint
	Kind        Operand2Kind // Op2Register, Op2ShiftImmediate or Op2RRX
	ShiftImm    uint
	Shift       ShiftType
}

// Eval computes the offset magnitude (never negative; sign is applied
// by the caller via Up).
func (o OffsetSource) Eval(r *Registers) uint32 {
	if o.IsImmediate {
		return o.Immediate
	}
	switch o.Kind {
	case Op2Register:
		return r.Get(o.Rm)
	case Op2RRX:
		v, _ := bits.RRX(r.Carry(), r.Get(o.Rm))
		return v
	default:
		v, _ := evalShift(r.Carry(), r.Get(o.Rm), o.ShiftImm, o.Shift, false)
		return v
	}
}

// DecodeLoadStoreAddressingMode decodes the addressing-mode fields of
// a single load/store ARM instruction.
func DecodeLoadStoreAddressingMode(instr uint32) LoadStoreAddressingMode {
	m := LoadStoreAddressingMode{
		Up: bits.Bit(instr, 23),
		Rn: uint(bits.Extract(instr, 16, 4)),
	}

	if bits.Bit(instr, 25) {
		rm := uint(bits.Extract(instr, 0, 4))
		shiftImm := uint(bits.Extract(instr, 7, 5))
		shiftType := ShiftType(bits.Extract(instr, 5, 2))

		switch {
		case shiftType == ShiftLSL && shiftImm == 0:
			m.Offset = OffsetSource{Rm: rm, Kind: Op2Register}
		case shiftType == ShiftROR && shiftImm == 0:
			m.Offset = OffsetSource{Rm: rm, Kind: Op2RRX}
		default:
			m.Offset = OffsetSource{Rm: rm, Kind: Op2ShiftImmediate, ShiftImm: shiftImm, Shift: shiftType}
		}
	} else {
		m.Offset = OffsetSource{IsImmediate: true, Immediate: bits.Extract(instr, 0, 12)}
	}

	p := bits.Bit(instr, 24)
	w := bits.Bit(instr, 21)
	switch {
	case !p:
		m.Indexing = IndexPostIndexed
	case p && !w:
		m.Indexing = IndexOffset
	default:
		m.Indexing = IndexPreIndexed
	}

	return m
}

// Address computes the effective address for this instruction and
// applies any writeback to Rn, returning the address the access should
// use.
func (m LoadStoreAddressingMode) Address(r *Registers) uint32 {
	offset := m.Offset.Eval(r)
	rn := r.Get(m.Rn)
	if m.MaskBase {
		rn &^= 0x3
	}

	var rnOffset uint32
	if m.Up {
		rnOffset = rn + offset
	} else {
		rnOffset = rn - offset
	}

	switch m.Indexing {
	case IndexOffset:
		return rnOffset
	case IndexPreIndexed:
		r.Set(m.Rn, rnOffset)
		return rnOffset
	default: // IndexPostIndexed
		r.Set(m.Rn, rnOffset)
		return rn
	}
}

// LSMAddressingMode is one of the four load/store-multiple addressing
// variants.
type LSMAddressingMode int

const (
	LSMDecrementAfter LSMAddressingMode = iota
	LSMIncrementAfter
	LSMDecrementBefore
	LSMIncrementBefore
)

// DecodeLSMAddressingMode extracts the two-bit P/U addressing-mode
// field (bits 23..24) of a load/store-multiple instruction.
func DecodeLSMAddressingMode(instr uint32) LSMAddressingMode {
	return LSMAddressingMode(bits.Extract(instr, 23, 2))
}

// LSMAddresses computes the (start, end) address pair and, if
// writeback is requested, the new value of Rn.
func LSMAddresses(mode LSMAddressingMode, rn uint32, registerList uint32) (start, end, writeback uint32) {
	n := uint32(popcount16(registerList))

	switch mode {
	case LSMDecrementAfter:
		start = rn - n*4 + 4
		end = rn
		writeback = rn - n*4
	case LSMIncrementAfter:
		start = rn
		end = rn + n*4 - 4
		writeback = rn + n*4
	case LSMDecrementBefore:
		start = rn - n*4
		end = rn - 4
		writeback = rn - n*4
	case LSMIncrementBefore:
		start = rn + 4
		end = rn + n*4
		writeback = rn + n*4
	}
	return start, end, writeback
}

func popcount16(v uint32) int {
	count := 0
	for i := 0; i < 16; i++ {
		if bits.Bit(v, uint(i)) {
			count++
		}
	}
	return count
}
