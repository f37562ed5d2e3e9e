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

// Package membus implements the byte-addressable memory bus: a table
// of named regions, each with a size, an access policy, and an index
// transform, dispatched by address range. 16- and 32-bit accesses are
// little-endian compositions of byte accesses, as required by the
// architecture.
package membus

import (
	"github.com/aetherarm/arm7tdmi/logger"
	"github.com/aetherarm/arm7tdmi/memorymodel"
)

// Bus is the complete addressable memory space of the core.
type Bus struct {
	model memorymodel.Map

	bios      []byte
	wramBoard []byte
	wramChip  []byte
	io        []byte
	palette   []byte
	vram      []byte
	oam       []byte
	cartROM   []byte
	cartSRAM  []byte

	illegalAccesses map[string]bool
}

// NewBus creates a Bus with the BIOS region populated from bios and
// the cartridge ROM regions populated (and mirrored) from cart. Both
// slices are copied; callers retain ownership of the originals. All
// RAM regions start zeroed.
func NewBus(bios []byte, cart []byte) *Bus {
	b := &Bus{
		model:           memorymodel.NewMap(),
		bios:            make([]byte, memorymodel.BIOSSize),
		wramBoard:       make([]byte, memorymodel.WRAMBoardSize),
		wramChip:        make([]byte, memorymodel.WRAMChipSize),
		io:              make([]byte, memorymodel.IOSize),
		palette:         make([]byte, memorymodel.PaletteSize),
		vram:            make([]byte, memorymodel.VRAMSize),
		oam:             make([]byte, memorymodel.OAMSize),
		cartROM:         make([]byte, memorymodel.CartridgeROMMax),
		cartSRAM:        make([]byte, memorymodel.CartridgeSRAMMax),
		illegalAccesses: make(map[string]bool),
	}

	copy(b.bios, bios)
	copy(b.cartROM, cart)

	logger.Logf("Bus", "bios: %d bytes, cartridge: %d bytes", len(bios), len(cart))

	return b
}

func (b *Bus) backing(region memorymodel.Region) []byte {
	switch region.Base {
	case memorymodel.BIOSBase:
		return b.bios
	case memorymodel.WRAMBoardBase:
		return b.wramBoard
	case memorymodel.WRAMChipBase:
		return b.wramChip
	case memorymodel.IOBase:
		return b.io
	case memorymodel.PaletteBase:
		return b.palette
	case memorymodel.VRAMBase:
		return b.vram
	case memorymodel.OAMBase:
		return b.oam
	case memorymodel.CartridgeROM0Base, memorymodel.CartridgeROM1Base, memorymodel.CartridgeROM2Base:
		return b.cartROM
	case memorymodel.CartridgeSRAMBase:
		return b.cartSRAM
	default:
		return nil
	}
}

func (b *Bus) logIllegalAccess(op string, addr uint32) {
	key := op + addrKey(addr)
	if b.illegalAccesses[key] {
		return
	}
	b.illegalAccesses[key] = true
	logger.Logf("Bus", "%s: unmapped access to %08x", op, addr)
}

func addrKey(addr uint32) string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = hex[addr&0xf]
		addr >>= 4
	}
	return string(buf)
}

// resolve finds the region containing addr, logging an unmapped access
// under the given operation label.
func (b *Bus) resolve(op string, addr uint32) (memorymodel.Region, error) {
	region, ok := b.model.Find(addr)
	if !ok {
		b.logIllegalAccess(op, addr)
		return memorymodel.Region{}, &Error{Kind: Unmapped, Addr: addr}
	}
	return region, nil
}

// contains reports whether addr still falls inside the region's
// address-space window, so a multi-byte access can reuse a resolved
// region for its trailing bytes.
func contains(region memorymodel.Region, addr uint32) bool {
	return addr >= region.Base && addr-region.Base < region.Window()
}

func (b *Bus) readByte(region memorymodel.Region, addr uint32) uint8 {
	mem := b.backing(region)
	return mem[region.Index(addr, region.Window())]
}

// writeByte performs the read-only check shared by every write width,
// without the 8-bit-specific NoByteWrite restriction.
func (b *Bus) writeByte(region memorymodel.Region, addr uint32, val uint8) error {
	if region.Access == memorymodel.ReadOnly {
		return &Error{Kind: ReadOnlyViolation, Addr: addr}
	}

	mem := b.backing(region)
	mem[region.Index(addr, region.Window())] = val
	return nil
}

// Read8 reads one byte from addr.
func (b *Bus) Read8(addr uint32) (uint8, error) {
	region, err := b.resolve("read8", addr)
	if err != nil {
		return 0, err
	}
	return b.readByte(region, addr), nil
}

// Write8 writes one byte to addr. This is the only entry point that
// enforces NoByteWrite: the architecture forbids an 8-bit write from
// reaching palette/VRAM/OAM, but says nothing about the 16- and 32-bit
// writes those regions are otherwise fully read/write for, so Write16
// and Write32 go through writeByte directly, which shares every other
// check with Write8 but skips this one.
func (b *Bus) Write8(addr uint32, val uint8) error {
	region, err := b.resolve("write8", addr)
	if err != nil {
		return err
	}
	if region.NoByteWrite {
		return &Error{Kind: ByteWriteIntoDisplayMemory, Addr: addr}
	}
	return b.writeByte(region, addr, val)
}

// readBytes composes an n-byte little-endian read. The region is
// resolved once and reused for the trailing bytes unless the access
// runs off the end of its window.
func (b *Bus) readBytes(op string, addr uint32, n uint32) (uint32, error) {
	region, err := b.resolve(op, addr)
	if err != nil {
		return 0, err
	}

	var value uint32
	for i := uint32(0); i < n; i++ {
		a := addr + i
		if !contains(region, a) {
			if region, err = b.resolve(op, a); err != nil {
				return 0, err
			}
		}
		value |= uint32(b.readByte(region, a)) << (8 * i)
	}
	return value, nil
}

// writeBytes composes an n-byte little-endian write, bypassing the
// NoByteWrite restriction that only applies to genuine 8-bit accesses.
func (b *Bus) writeBytes(op string, addr uint32, n uint32, val uint32) error {
	region, err := b.resolve(op, addr)
	if err != nil {
		return err
	}

	for i := uint32(0); i < n; i++ {
		a := addr + i
		if !contains(region, a) {
			if region, err = b.resolve(op, a); err != nil {
				return err
			}
		}
		if err := b.writeByte(region, a, uint8(val>>(8*i))); err != nil {
			return err
		}
	}
	return nil
}

// Read16 reads a little-endian halfword from addr, as two byte reads.
func (b *Bus) Read16(addr uint32) (uint16, error) {
	v, err := b.readBytes("read16", addr, 2)
	return uint16(v), err
}

// Write16 writes a little-endian halfword to addr, as two byte writes.
func (b *Bus) Write16(addr uint32, val uint16) error {
	return b.writeBytes("write16", addr, 2, uint32(val))
}

// Read32 reads a little-endian word from addr, as four byte reads.
func (b *Bus) Read32(addr uint32) (uint32, error) {
	return b.readBytes("read32", addr, 4)
}

// Write32 writes a little-endian word to addr, as four byte writes.
func (b *Bus) Write32(addr uint32, val uint32) error {
	return b.writeBytes("write32", addr, 4, val)
}
