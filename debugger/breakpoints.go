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

package debugger

// Breakpoints is a set of addresses that halt a running debugger
// session as soon as the CPU's program counter reaches them. The program
// counter is the only supported breakpoint target.
type Breakpoints struct {
	addrs map[uint32]bool
}

// NewBreakpoints creates an empty breakpoint set.
func NewBreakpoints() *Breakpoints {
	return &Breakpoints{addrs: make(map[uint32]bool)}
}

// Add registers addr as a breakpoint.
func (b *Breakpoints) Add(addr uint32) {
	b.addrs[addr] = true
}

// Remove clears addr as a breakpoint, if set.
func (b *Breakpoints) Remove(addr uint32) {
	delete(b.addrs, addr)
}

// Check reports whether addr is a registered breakpoint.
func (b *Breakpoints) Check(addr uint32) bool {
	return b.addrs[addr]
}

// List returns the registered breakpoint addresses, in no particular
// order.
func (b *Breakpoints) List() []uint32 {
	out := make([]uint32, 0, len(b.addrs))
	for addr := range b.addrs {
		out = append(out, addr)
	}
	return out
}
