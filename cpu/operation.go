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

// Operation is a fully decoded instruction: pure data produced by the
// decode tables, with no reference back to the CPU that will run it.
// Execute resolves live register/bus state at the point it is called.
type Operation interface {
	Execute(r *Registers, bus Bus) error
	String() string
}

// Unknown is the decode result for any table index that has no
// registered handler. Executing it is always an error; the raw word
// is retained for the error message.
type Unknown struct {
	Instr uint32
}

// Execute always fails: there is no semantics to run for an
// undecoded instruction word.
func (u Unknown) Execute(r *Registers, bus Bus) error {
	return &DecodeError{Kind: ErrUnknownInstruction, Instr: u.Instr}
}

func (u Unknown) String() string {
	return "???"
}
