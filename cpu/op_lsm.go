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

// LoadStoreMultiple is the decoded form of LDM/STM: a base register,
// a 16-bit register bitmap, and the addressing-mode/writeback/S-bit
// flags that govern how the bitmap maps onto consecutive words.
type LoadStoreMultiple struct {
	Cond         Condition
	IsLoad       bool
	Mode         LSMAddressingMode
	Writeback    bool
	UserBank     bool // S bit
	Rn           uint
	RegisterList uint32
}

// DecodeLoadStoreMultiple extracts an LDM/STM instruction's fields.
func DecodeLoadStoreMultiple(instr uint32) LoadStoreMultiple {
	return LoadStoreMultiple{
		Cond:         DecodeCondition(instr),
		IsLoad:       bits.Bit(instr, 20),
		Mode:         DecodeLSMAddressingMode(instr),
		Writeback:    bits.Bit(instr, 21),
		UserBank:     bits.Bit(instr, 22),
		Rn:           uint(bits.Extract(instr, 16, 4)),
		RegisterList: bits.Extract(instr, 0, 16),
	}
}

// Execute performs the multiple-register transfer.
func (lsm LoadStoreMultiple) Execute(r *Registers, bus Bus) error {
	if lsm.UserBank && lsm.IsLoad && bits.Bit(lsm.RegisterList, 15) {
		return &ExecutionError{Kind: ErrUnimplemented, Detail: "load/store multiple SPSR->CPSR transfer on register-15 load under S=1"}
	}

	start, _, writeback := LSMAddresses(lsm.Mode, r.Get(lsm.Rn), lsm.RegisterList)

	bank := r.Mode()
	if lsm.UserBank {
		bank = ModeUSR
	}

	addr := start
	for i := uint(0); i < 16; i++ {
		if !bits.Bit(lsm.RegisterList, i) {
			continue
		}

		if lsm.IsLoad {
			word, err := bus.Read32(addr)
			if err != nil {
				return err
			}
			r.SetInMode(i, bank, word)
		} else {
			word := r.GetInMode(i, bank)
			if err := bus.Write32(addr, word); err != nil {
				return err
			}
		}
		addr += 4
	}

	if lsm.Writeback {
		r.Set(lsm.Rn, writeback)
	}

	return nil
}
