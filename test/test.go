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

// Package test collects the small assertion helpers used throughout
// this module's test files, in place of an external assertion library.
package test

import (
	"math"
	"reflect"
	"testing"
)

// Equate fails the test unless got and want are deeply equal.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("not equal: got %v, wanted %v", got, want)
	}
}

// ExpectEquality is an alias for Equate, kept distinct because some
// callers read better with an Expect-prefixed assertion.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	Equate(t, got, want)
}

// ExpectInequality fails the test if got and want are deeply equal.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("unexpectedly equal: %v", got)
	}
}

// ExpectApproximate fails the test unless got and want are within
// tolerance of one another.
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("not approximately equal: got %v, wanted %v (tolerance %v)", got, want, tolerance)
	}
}

// ExpectSuccess fails the test if result indicates failure. result may
// be a bool (must be true), an error (must be nil), or untyped nil. The
// return value says whether the expectation held, for callers that want
// to skip follow-up checks.
func ExpectSuccess(t *testing.T, result interface{}) bool {
	t.Helper()
	switch v := result.(type) {
	case nil:
	case bool:
		if !v {
			t.Errorf("expected success, got false")
			return false
		}
	case error:
		if v != nil {
			t.Errorf("expected success, got error: %v", v)
			return false
		}
	default:
		t.Errorf("ExpectSuccess: unsupported type %T", result)
		return false
	}
	return true
}

// ExpectFailure fails the test if result indicates success. result may
// be a bool (must be false) or an error (must be non-nil). The return
// value says whether the expectation held.
func ExpectFailure(t *testing.T, result interface{}) bool {
	t.Helper()
	switch v := result.(type) {
	case bool:
		if v {
			t.Errorf("expected failure, got true")
			return false
		}
	case error:
		if v == nil {
			t.Errorf("expected failure, got nil error")
			return false
		}
	default:
		t.Errorf("ExpectFailure: unsupported type %T", result)
		return false
	}
	return true
}
