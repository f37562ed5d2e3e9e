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

// flatBus is a minimal cpu.Bus backed by a single flat byte slice,
// large enough for the small programs these tests exercise. It has no
// access policy of its own: out-of-range accesses panic, which is
// preferable to a silent wraparound masking a test bug.
type flatBus struct {
	mem []byte
}

func newFlatBus(size int) *flatBus {
	return &flatBus{mem: make([]byte, size)}
}

func (b *flatBus) Read8(addr uint32) (uint8, error) {
	return b.mem[addr], nil
}

func (b *flatBus) Write8(addr uint32, val uint8) error {
	b.mem[addr] = val
	return nil
}

func (b *flatBus) Read16(addr uint32) (uint16, error) {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8, nil
}

func (b *flatBus) Write16(addr uint32, val uint16) error {
	b.mem[addr] = uint8(val)
	b.mem[addr+1] = uint8(val >> 8)
	return nil
}

func (b *flatBus) Read32(addr uint32) (uint32, error) {
	return uint32(b.mem[addr]) | uint32(b.mem[addr+1])<<8 |
		uint32(b.mem[addr+2])<<16 | uint32(b.mem[addr+3])<<24, nil
}

func (b *flatBus) Write32(addr uint32, val uint32) error {
	b.mem[addr] = uint8(val)
	b.mem[addr+1] = uint8(val >> 8)
	b.mem[addr+2] = uint8(val >> 16)
	b.mem[addr+3] = uint8(val >> 24)
	return nil
}

func (b *flatBus) putARM(addr uint32, instr uint32) {
	b.mem[addr] = uint8(instr)
	b.mem[addr+1] = uint8(instr >> 8)
	b.mem[addr+2] = uint8(instr >> 16)
	b.mem[addr+3] = uint8(instr >> 24)
}

func (b *flatBus) putThumb(addr uint32, instr uint16) {
	b.mem[addr] = uint8(instr)
	b.mem[addr+1] = uint8(instr >> 8)
}
