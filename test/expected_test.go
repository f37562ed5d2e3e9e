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

package test_test

import (
	"errors"
	"testing"

	"github.com/aetherarm/arm7tdmi/test"
)

// the assertions are exercised on their passing side only; a failing
// assertion would fail this test run itself.

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)

	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)

	// the return value reports whether the expectation held
	if !test.ExpectSuccess(t, true) {
		t.Error("ExpectSuccess should report true for a passing check")
	}
}

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("deliberate"))

	if !test.ExpectFailure(t, false) {
		t.Error("ExpectFailure should report true for a passing check")
	}
}

func TestEquality(t *testing.T) {
	test.ExpectEquality(t, 2+2, 4)
	test.ExpectEquality(t, "r15", "r"+"15")
	test.Equate(t, []uint32{1, 2}, []uint32{1, 2})

	test.ExpectInequality(t, uint32(0xDEADBEEF), uint32(0))
	test.ExpectInequality(t, true, false)
}

func TestApproximate(t *testing.T) {
	test.ExpectApproximate(t, 16.78, 16.7, 0.1)
}
