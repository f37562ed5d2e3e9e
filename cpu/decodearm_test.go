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

package cpu_test

import (
	"testing"

	"github.com/aetherarm/arm7tdmi/cpu"
	"github.com/aetherarm/arm7tdmi/test"
)

// TestDecodeARMIsTotal walks every one of the 4096 distinguishing
// indices and requires a non-nil Operation back, proving the table has
// no unpopulated holes (an unpopulated entry would panic on dispatch
// rather than nil-pointer gracefully, so this also guards init()).
func TestDecodeARMIsTotal(t *testing.T) {
	for upper := uint32(0); upper < 256; upper++ {
		for lower := uint32(0); lower < 16; lower++ {
			instr := uint32(0xE0000000) | (upper << 20) | (lower << 4)
			op, err := cpu.DecodeARM(instr)
			test.ExpectSuccess(t, err)
			if op == nil {
				t.Fatalf("nil operation for instruction %08x", instr)
			}
		}
	}
}

func TestDecodeARMRejectsReservedCondition(t *testing.T) {
	_, err := cpu.DecodeARM(0xF3A00005)
	test.ExpectFailure(t, err)

	de, ok := err.(*cpu.DecodeError)
	if !ok {
		t.Fatalf("expected *cpu.DecodeError, got %T", err)
	}
	test.ExpectEquality(t, de.Kind, cpu.ErrReservedCondition)
}

func TestDecodeARMDataProcessing(t *testing.T) {
	op, err := cpu.DecodeARM(0xE3A00005) // MOV R0, #5
	test.ExpectSuccess(t, err)

	dp, ok := op.(cpu.DataProcessing)
	if !ok {
		t.Fatalf("expected cpu.DataProcessing, got %T", op)
	}
	test.ExpectEquality(t, dp.Opcode, cpu.DPMov)
	test.ExpectEquality(t, dp.Rd, uint(0))
}

func TestDecodeARMBranch(t *testing.T) {
	op, err := cpu.DecodeARM(0xEA000002) // B
	test.ExpectSuccess(t, err)

	b, ok := op.(cpu.Branch)
	if !ok {
		t.Fatalf("expected cpu.Branch, got %T", op)
	}
	test.ExpectEquality(t, b.Link, false)
	test.ExpectEquality(t, b.Offset, int32(8))
}

func TestDecodeARMBranchLink(t *testing.T) {
	op, err := cpu.DecodeARM(0xEB000002) // BL
	test.ExpectSuccess(t, err)

	b, ok := op.(cpu.Branch)
	if !ok {
		t.Fatalf("expected cpu.Branch, got %T", op)
	}
	test.ExpectEquality(t, b.Link, true)
}

func TestDecodeARMBranchExchange(t *testing.T) {
	op, err := cpu.DecodeARM(0xE12FFF10) // BX R0
	test.ExpectSuccess(t, err)

	bx, ok := op.(cpu.BranchExchange)
	if !ok {
		t.Fatalf("expected cpu.BranchExchange, got %T", op)
	}
	test.ExpectEquality(t, bx.Rm, uint(0))
}

func TestDecodeARMUnknownReportsInstr(t *testing.T) {
	op, err := cpu.DecodeARM(0xE6000010) // media instruction class: unimplemented
	test.ExpectSuccess(t, err)

	u, ok := op.(cpu.Unknown)
	if !ok {
		t.Fatalf("expected cpu.Unknown, got %T", op)
	}
	test.ExpectEquality(t, u.Instr, uint32(0xE6000010))
}
