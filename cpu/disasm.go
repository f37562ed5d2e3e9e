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

import "fmt"

// String renders the operand-2 field as it would appear in a
// disassembly listing.
func (o Operand2) String() string {
	switch o.Kind {
	case Op2Immediate:
		return fmt.Sprintf("#%d", o.Immediate)
	case Op2Register:
		return fmt.Sprintf("R%d", o.Rm)
	case Op2RRX:
		return fmt.Sprintf("R%d, RRX", o.Rm)
	case Op2ShiftImmediate:
		return fmt.Sprintf("R%d, %s #%d", o.Rm, o.Shift, o.ShiftImm)
	case Op2ShiftRegister:
		return fmt.Sprintf("R%d, %s R%d", o.Rm, o.Shift, o.Rs)
	default:
		return "?"
	}
}

func (s ShiftType) String() string {
	switch s {
	case ShiftLSL:
		return "LSL"
	case ShiftLSR:
		return "LSR"
	case ShiftASR:
		return "ASR"
	case ShiftROR:
		return "ROR"
	default:
		return "?"
	}
}

// String renders a data-processing instruction in the
// "OP{cond}{S} Rd, Rn, operand2" form, omitting Rd for test opcodes
// and Rn for move opcodes per the architecture's assembly syntax.
func (dp DataProcessing) String() string {
	s := ""
	if dp.SetFlags && !dp.Opcode.isTest() {
		s = "S"
	}

	switch {
	case dp.Opcode.isTest():
		return fmt.Sprintf("%s%s R%d, %s", dp.Opcode, dp.Cond, dp.Rn, dp.Operand2)
	case dp.Opcode.isMove():
		return fmt.Sprintf("%s%s%s R%d, %s", dp.Opcode, dp.Cond, s, dp.Rd, dp.Operand2)
	default:
		return fmt.Sprintf("%s%s%s R%d, R%d, %s", dp.Opcode, dp.Cond, s, dp.Rd, dp.Rn, dp.Operand2)
	}
}

// String renders a B/BL instruction.
func (b Branch) String() string {
	mnemonic := "B"
	if b.Link {
		mnemonic = "BL"
	}
	return fmt.Sprintf("%s%s #%d", mnemonic, b.Cond, b.Offset)
}

// String renders a BX/BLX instruction.
func (b BranchExchange) String() string {
	mnemonic := "BX"
	if b.Link {
		mnemonic = "BLX"
	}
	return fmt.Sprintf("%s%s R%d", mnemonic, b.Cond, b.Rm)
}

func (m LoadStoreAddressingMode) String() string {
	sign := "-"
	if m.Up {
		sign = "+"
	}
	rhs := fmt.Sprintf("%s%s", sign, m.Offset)

	switch m.Indexing {
	case IndexPreIndexed:
		return fmt.Sprintf("[R%d, %s]!", m.Rn, rhs)
	case IndexPostIndexed:
		return fmt.Sprintf("[R%d], %s", m.Rn, rhs)
	default:
		return fmt.Sprintf("[R%d, %s]", m.Rn, rhs)
	}
}

func (o OffsetSource) String() string {
	if o.IsImmediate {
		return fmt.Sprintf("#0x%X", o.Immediate)
	}
	switch o.Kind {
	case Op2Register:
		return fmt.Sprintf("R%d", o.Rm)
	case Op2RRX:
		return fmt.Sprintf("R%d, RRX", o.Rm)
	default:
		return fmt.Sprintf("R%d, %s #%d", o.Rm, o.Shift, o.ShiftImm)
	}
}

// String renders a load/store-single instruction.
func (ls LoadStoreSingle) String() string {
	mnemonic := "STR"
	if ls.IsLoad {
		mnemonic = "LDR"
	}

	suffix := ""
	switch {
	case ls.Width == WidthByte && ls.SignExtend:
		suffix = "SB"
	case ls.Width == WidthByte:
		suffix = "B"
	case ls.Width == WidthHalfword && ls.SignExtend:
		suffix = "SH"
	case ls.Width == WidthHalfword:
		suffix = "H"
	case ls.Width == WidthDoubleword:
		suffix = "D"
	}

	return fmt.Sprintf("%s%s%s R%d, %s", mnemonic, ls.Cond, suffix, ls.Rd, ls.Addressing)
}

func (m LSMAddressingMode) String() string {
	switch m {
	case LSMDecrementAfter:
		return "DA"
	case LSMIncrementAfter:
		return "IA"
	case LSMDecrementBefore:
		return "DB"
	default:
		return "IB"
	}
}

// String renders an LDM/STM instruction, listing every register named
// in the bitmap.
func (lsm LoadStoreMultiple) String() string {
	mnemonic := "STM"
	if lsm.IsLoad {
		mnemonic = "LDM"
	}

	w := ""
	if lsm.Writeback {
		w = "!"
	}

	regs := ""
	for i := 0; i < 16; i++ {
		if lsm.RegisterList&(1<<uint(i)) == 0 {
			continue
		}
		if regs != "" {
			regs += ", "
		}
		regs += fmt.Sprintf("R%d", i)
	}

	return fmt.Sprintf("%s%s%s R%d%s, {%s}", mnemonic, lsm.Cond, lsm.Mode, lsm.Rn, w, regs)
}

// String renders an MRS instruction.
func (m MRS) String() string {
	src := "CPSR"
	if m.FromSPSR {
		src = "SPSR"
	}
	return fmt.Sprintf("MRS%s R%d, %s", m.Cond, m.Rd, src)
}

// String renders an MSR instruction.
func (m MSR) String() string {
	dst := "CPSR"
	if m.ToSPSR {
		dst = "SPSR"
	}

	fields := ""
	for i, ch := range []byte{'c', 'x', 's', 'f'} {
		if m.FieldMask&(1<<uint(i)) != 0 {
			fields += string(ch)
		}
	}

	var operand string
	if m.Operand.IsImmediate {
		operand = fmt.Sprintf("#0x%X", m.Operand.Immediate)
	} else {
		operand = fmt.Sprintf("R%d", m.Operand.Rm)
	}

	return fmt.Sprintf("MSR%s %s_%s, %s", m.Cond, dst, fields, operand)
}
