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

// Bus is the subset of membus.Bus the CPU core needs. Operations
// accept this interface rather than a concrete type so that tests can
// substitute a minimal fake.
type Bus interface {
	Read8(addr uint32) (uint8, error)
	Write8(addr uint32, val uint8) error
	Read16(addr uint32) (uint16, error)
	Write16(addr uint32, val uint16) error
	Read32(addr uint32) (uint32, error)
	Write32(addr uint32, val uint32) error
}
