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

// TransferWidth is the width of a single load/store access.
type TransferWidth int

const (
	WidthByte TransferWidth = iota
	WidthHalfword
	WidthWord
	WidthDoubleword
)

// LoadStoreSingle is the decoded form of a single-register load or
// store (LDR/STR/LDRB/STRB/LDRH/STRH/LDRSB/LDRSH and the doubleword
// pair form).
type LoadStoreSingle struct {
	Cond       Condition
	IsLoad     bool
	Width      TransferWidth
	SignExtend bool
	Rd         uint
	Addressing LoadStoreAddressingMode
}

// DecodeLoadStoreWord decodes the single word/byte-transfer class
// (bits 27:26 = 01).
func DecodeLoadStoreWord(instr uint32) LoadStoreSingle {
	width := WidthWord
	if bits.Bit(instr, 22) {
		width = WidthByte
	}
	return LoadStoreSingle{
		Cond:       DecodeCondition(instr),
		IsLoad:     bits.Bit(instr, 20),
		Width:      width,
		Rd:         uint(bits.Extract(instr, 12, 4)),
		Addressing: DecodeLoadStoreAddressingMode(instr),
	}
}

// DecodeLoadStoreHalfwordOrSigned decodes the halfword and
// sign-extended byte/halfword transfer class (bits 27:25 = 000,
// bit 7 = 1, bit 4 = 1). The SH field (bits 6:5) selects the
// variant: 01 = unsigned halfword, 10 = signed byte, 11 = signed
// halfword, 00 = reserved (SWP, not handled here).
func DecodeLoadStoreHalfwordOrSigned(instr uint32) LoadStoreSingle {
	sh := bits.Extract(instr, 5, 2)
	width := WidthHalfword
	signExtend := false
	switch sh {
	case 0b10:
		width = WidthByte
		signExtend = true
	case 0b11:
		width = WidthHalfword
		signExtend = true
	default:
		width = WidthHalfword
	}

	mode := LoadStoreAddressingMode{
		Up: bits.Bit(instr, 23),
		Rn: uint(bits.Extract(instr, 16, 4)),
	}

	if bits.Bit(instr, 22) {
		hi := bits.Extract(instr, 8, 4)
		lo := bits.Extract(instr, 0, 4)
		mode.Offset = OffsetSource{IsImmediate: true, Immediate: (hi << 4) | lo}
	} else {
		mode.Offset = OffsetSource{Rm: uint(bits.Extract(instr, 0, 4)), Kind: Op2Register}
	}

	p := bits.Bit(instr, 24)
	w := bits.Bit(instr, 21)
	switch {
	case !p:
		mode.Indexing = IndexPostIndexed
	case p && !w:
		mode.Indexing = IndexOffset
	default:
		mode.Indexing = IndexPreIndexed
	}

	return LoadStoreSingle{
		Cond:       DecodeCondition(instr),
		IsLoad:     bits.Bit(instr, 20),
		Width:      width,
		SignExtend: signExtend,
		Rd:         uint(bits.Extract(instr, 12, 4)),
		Addressing: mode,
	}
}

// Execute performs the access against bus, updating registers (the
// destination on load, the base register on writeback).
func (ls LoadStoreSingle) Execute(r *Registers, bus Bus) error {
	addr := ls.Addressing.Address(r)

	if ls.Width == WidthDoubleword {
		return ls.executeDoubleword(r, bus, addr)
	}

	if ls.IsLoad {
		value, err := ls.load(bus, addr)
		if err != nil {
			return err
		}
		r.Set(ls.Rd, value)
		return nil
	}

	return ls.store(r, bus, addr)
}

func (ls LoadStoreSingle) load(bus Bus, addr uint32) (uint32, error) {
	switch ls.Width {
	case WidthByte:
		v, err := bus.Read8(addr)
		if err != nil {
			return 0, err
		}
		if ls.SignExtend {
			return bits.SignExtend(uint32(v), 8), nil
		}
		return uint32(v), nil

	case WidthHalfword:
		v, err := bus.Read16(addr)
		if err != nil {
			return 0, err
		}
		if ls.SignExtend {
			return bits.SignExtend(uint32(v), 16), nil
		}
		return uint32(v), nil

	default: // WidthWord
		// a misaligned word read fetches the aligned word and rotates
		// it by 8*(addr mod 4) bits rather than faulting
		v, err := bus.Read32(addr &^ 0x3)
		if err != nil {
			return 0, err
		}
		rot := 8 * (addr & 0x3)
		if rot != 0 {
			v = (v >> rot) | (v << (32 - rot))
		}
		return v, nil
	}
}

func (ls LoadStoreSingle) store(r *Registers, bus Bus, addr uint32) error {
	value := r.Get(ls.Rd)
	switch ls.Width {
	case WidthByte:
		return bus.Write8(addr, uint8(value))
	case WidthHalfword:
		return bus.Write16(addr, uint16(value))
	default:
		return bus.Write32(addr, value)
	}
}

func (ls LoadStoreSingle) executeDoubleword(r *Registers, bus Bus, addr uint32) error {
	if ls.IsLoad {
		lo, err := bus.Read32(addr)
		if err != nil {
			return err
		}
		hi, err := bus.Read32(addr + 4)
		if err != nil {
			return err
		}
		r.Set(ls.Rd, lo)
		r.Set(ls.Rd+1, hi)
		return nil
	}

	if err := bus.Write32(addr, r.Get(ls.Rd)); err != nil {
		return err
	}
	return bus.Write32(addr+4, r.Get(ls.Rd+1))
}
