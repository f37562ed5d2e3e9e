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

func TestMRSReadsCPSR(t *testing.T) {
	r := &cpu.Registers{}
	r.Reset()
	r.SetZero(true)

	m := cpu.MRS{Rd: 3}
	test.ExpectSuccess(t, m.Execute(r, nil))
	test.ExpectEquality(t, r.Get(3), r.CPSR())
}

func TestMRSFromSPSRRequiresPrivilegedMode(t *testing.T) {
	r := &cpu.Registers{}
	r.Reset()
	r.SetMode(cpu.ModeUSR)

	m := cpu.MRS{Rd: 0, FromSPSR: true}
	err := m.Execute(r, nil)
	test.ExpectFailure(t, err)
}

func TestMSRRejectsThumbBitOutsideThumbState(t *testing.T) {
	r := &cpu.Registers{}
	r.Reset()

	m := cpu.MSR{FieldMask: 0b0001, Operand: cpu.MSROperand{IsImmediate: true, Immediate: 0x20}}
	err := m.Execute(r, nil)
	test.ExpectFailure(t, err)

	ee, ok := err.(*cpu.ExecutionError)
	if !ok {
		t.Fatalf("expected *cpu.ExecutionError, got %T", err)
	}
	test.ExpectEquality(t, ee.Kind, cpu.ErrMSRThumbBit)
}

func TestMSRRejectsReservedBits(t *testing.T) {
	r := &cpu.Registers{}
	r.Reset()

	m := cpu.MSR{FieldMask: 0b1000, Operand: cpu.MSROperand{IsImmediate: true, Immediate: 0x00FFFF00}}
	err := m.Execute(r, nil)
	test.ExpectFailure(t, err)

	ee, ok := err.(*cpu.ExecutionError)
	if !ok {
		t.Fatalf("expected *cpu.ExecutionError, got %T", err)
	}
	test.ExpectEquality(t, ee.Kind, cpu.ErrMSRReservedBits)
}

func TestMSRUnprivilegedOnlyTouchesFlags(t *testing.T) {
	r := &cpu.Registers{}
	r.Reset()
	r.SetMode(cpu.ModeUSR)

	m := cpu.MSR{
		FieldMask: 0b1001, // flags (f) and control (c)
		Operand:   cpu.MSROperand{IsImmediate: true, Immediate: 0xF0000010},
	}
	test.ExpectSuccess(t, m.Execute(r, nil))

	test.ExpectEquality(t, r.Negative(), true)    // flags lane applied
	test.ExpectEquality(t, r.Mode(), cpu.ModeUSR) // control lane ignored outside privileged mode
}

func TestMSRToSPSRRejectedInUSRMode(t *testing.T) {
	r := &cpu.Registers{}
	r.Reset()
	r.SetMode(cpu.ModeUSR)

	m := cpu.MSR{ToSPSR: true, FieldMask: 0b1000, Operand: cpu.MSROperand{IsImmediate: true, Immediate: 0x80000000}}
	err := m.Execute(r, nil)
	test.ExpectFailure(t, err)

	ee, ok := err.(*cpu.ExecutionError)
	if !ok {
		t.Fatalf("expected *cpu.ExecutionError, got %T", err)
	}
	test.ExpectEquality(t, ee.Kind, cpu.ErrMSRSPSRUnprivileged)
}

func TestDecodeMSRAndMRSRoundTrip(t *testing.T) {
	msr := cpu.DecodeMSR(0xE12FF000 | 0x05) // MSR CPSR_fsxc, R5
	test.ExpectEquality(t, msr.ToSPSR, false)
	test.ExpectEquality(t, msr.Operand.IsImmediate, false)
	test.ExpectEquality(t, msr.Operand.Rm, uint(5))

	mrs := cpu.DecodeMRS(0xE10F0000) // MRS R0, CPSR
	test.ExpectEquality(t, mrs.FromSPSR, false)
	test.ExpectEquality(t, mrs.Rd, uint(0))
}
