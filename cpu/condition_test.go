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

func TestConditionTruthTable(t *testing.T) {
	cases := []struct {
		cond             cpu.Condition
		n, z, c, v, want bool
	}{
		{cpu.EQ, false, true, false, false, true},
		{cpu.EQ, false, false, false, false, false},
		{cpu.NE, false, false, false, false, true},
		{cpu.NE, false, true, false, false, false},
		{cpu.CS, false, false, true, false, true},
		{cpu.CS, false, false, false, false, false},
		{cpu.CC, false, false, false, false, true},
		{cpu.CC, false, false, true, false, false},
		{cpu.MI, true, false, false, false, true},
		{cpu.MI, false, false, false, false, false},
		{cpu.PL, false, false, false, false, true},
		{cpu.PL, true, false, false, false, false},
		{cpu.VS, false, false, false, true, true},
		{cpu.VS, false, false, false, false, false},
		{cpu.VC, false, false, false, false, true},
		{cpu.VC, false, false, false, true, false},
		{cpu.HI, false, false, true, false, true},
		{cpu.HI, false, true, true, false, false},
		{cpu.HI, false, false, false, false, false},
		{cpu.LS, false, false, false, false, true},
		{cpu.LS, false, true, true, false, true},
		{cpu.LS, false, false, true, false, false},
		{cpu.GE, true, false, false, true, true},
		{cpu.GE, false, false, false, false, true},
		{cpu.GE, true, false, false, false, false},
		{cpu.LT, true, false, false, false, true},
		{cpu.LT, true, false, false, true, false},
		{cpu.GT, false, false, false, false, true},
		{cpu.GT, false, true, false, false, false},
		{cpu.GT, true, false, false, false, false},
		{cpu.LE, false, true, false, false, true},
		{cpu.LE, true, false, false, false, true},
		{cpu.LE, false, false, false, false, false},
		{cpu.AL, false, false, false, false, true},
		{cpu.AL, true, true, true, true, true},
	}

	for _, c := range cases {
		got := c.cond.Check(c.n, c.z, c.c, c.v)
		test.ExpectEquality(t, got, c.want)
	}
}

func TestReservedConditionNeverTrue(t *testing.T) {
	test.ExpectEquality(t, cpu.NV.Check(true, true, true, true), false)
	test.ExpectEquality(t, cpu.NV.Check(false, false, false, false), false)
}

func TestDecodeCondition(t *testing.T) {
	got := cpu.DecodeCondition(0xE0000000)
	test.ExpectEquality(t, got, cpu.AL)

	got = cpu.DecodeCondition(0x00000000)
	test.ExpectEquality(t, got, cpu.EQ)

	got = cpu.DecodeCondition(0xF0000000)
	test.ExpectEquality(t, got, cpu.NV)
}
