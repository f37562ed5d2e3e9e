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
	"testing"

	"github.com/aetherarm/arm7tdmi/test"
)

func TestCappedWriter(t *testing.T) {
	c, err := test.NewCappedWriter(8)
	test.ExpectSuccess(t, err)
	test.Equate(t, c.String(), "")

	// writes below the limit accumulate
	c.Write([]byte("head"))
	test.Equate(t, c.String(), "head")

	// a write that straddles the limit is truncated
	c.Write([]byte("tail and more"))
	test.Equate(t, c.String(), "headtail")

	// once full, further writes are discarded entirely
	c.Write([]byte("xyz"))
	test.Equate(t, c.String(), "headtail")

	c.Reset()
	test.Equate(t, c.String(), "")

	// a single oversized write keeps only the leading bytes
	c.Write([]byte("far too long for the cap"))
	test.Equate(t, c.String(), "far too ")
}

func TestCappedWriterBadLimit(t *testing.T) {
	_, err := test.NewCappedWriter(0)
	test.ExpectFailure(t, err)
}
