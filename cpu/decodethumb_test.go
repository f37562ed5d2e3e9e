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

// TestDecodeThumbIsTotal walks every one of the 256 distinguishing
// indices (bits[15:8]) and requires a non-nil Operation back.
func TestDecodeThumbIsTotal(t *testing.T) {
	for top := uint32(0); top < 256; top++ {
		instr := uint16(top << 8)
		op := cpu.DecodeThumb(instr)
		if op == nil {
			t.Fatalf("nil operation for instruction %04x", instr)
		}
	}
}

func TestDecodeThumbMoveShiftedRegister(t *testing.T) {
	op := cpu.DecodeThumb(0x0040) // LSL R0, R0, #1 -> actually LSLS R0,R0,#1
	dp, ok := op.(cpu.DataProcessing)
	if !ok {
		t.Fatalf("expected cpu.DataProcessing, got %T", op)
	}
	test.ExpectEquality(t, dp.Opcode, cpu.DPMov)
	test.ExpectEquality(t, dp.Operand2.Shift, cpu.ShiftLSL)
}

func TestDecodeThumbAddSubtractImmediate(t *testing.T) {
	// format 2, isImmediate=1 isSub=1 imm3=3 rm=0 rd=1: SUB R1, R0, #3
	instr := uint16(0x1EC1)
	op := cpu.DecodeThumb(instr)
	dp, ok := op.(cpu.DataProcessing)
	if !ok {
		t.Fatalf("expected cpu.DataProcessing, got %T", op)
	}
	test.ExpectEquality(t, dp.Opcode, cpu.DPSub)
	test.ExpectEquality(t, dp.Operand2.Kind, cpu.Op2Immediate)
	test.ExpectEquality(t, dp.Operand2.Immediate, uint32(3))
}

func TestDecodeThumbHiRegisterBX(t *testing.T) {
	// format 5, op=11 (BX/BLX) h1=0 h2=0 rm=1 rd=0
	instr := uint16(0x4708)
	op := cpu.DecodeThumb(instr)
	bx, ok := op.(cpu.BranchExchange)
	if !ok {
		t.Fatalf("expected cpu.BranchExchange, got %T", op)
	}
	test.ExpectEquality(t, bx.Rm, uint(1))
}

func TestDecodeThumbConditionalBranch(t *testing.T) {
	// format 16: cond=EQ(0000), offset8=2
	instr := uint16(0xD002)
	op := cpu.DecodeThumb(instr)
	b, ok := op.(cpu.Branch)
	if !ok {
		t.Fatalf("expected cpu.Branch, got %T", op)
	}
	test.ExpectEquality(t, b.Cond, cpu.EQ)
	test.ExpectEquality(t, b.Offset, int32(4))
}

func TestDecodeThumbUnconditionalBranch(t *testing.T) {
	// format 18: offset11=2
	instr := uint16(0xE002)
	op := cpu.DecodeThumb(instr)
	b, ok := op.(cpu.Branch)
	if !ok {
		t.Fatalf("expected cpu.Branch, got %T", op)
	}
	test.ExpectEquality(t, b.Cond, cpu.AL)
	test.ExpectEquality(t, b.Offset, int32(4))
}

func TestDecodeThumbSWIIsUnknown(t *testing.T) {
	op := cpu.DecodeThumb(0xDF00)
	_, ok := op.(cpu.Unknown)
	if !ok {
		t.Fatalf("expected cpu.Unknown for SWI, got %T", op)
	}
}
