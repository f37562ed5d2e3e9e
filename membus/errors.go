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

package membus

import "fmt"

// Kind distinguishes the ways a bus access can fail.
type Kind int

const (
	Unmapped Kind = iota
	ReadOnlyViolation
	ByteWriteIntoDisplayMemory
)

func (k Kind) String() string {
	switch k {
	case Unmapped:
		return "unmapped"
	case ReadOnlyViolation:
		return "read-only"
	case ByteWriteIntoDisplayMemory:
		return "byte write into video memory"
	default:
		return "unknown bus error"
	}
}

// Error is the error type returned by every failing bus access. It
// carries the address involved so that a caller (typically the step
// loop) can report it alongside the instruction that caused it.
type Error struct {
	Kind Kind
	Addr uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %08x", e.Kind, e.Addr)
}
