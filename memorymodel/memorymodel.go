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

// Package memorymodel describes the address layout the memory bus is
// built from: the base address, size, access policy and index
// transform of every region. The core only ever has one memory model,
// but keeping the layout data-driven (rather than hard-coded switch
// statements in the bus) matches how this project has historically
// handled address-map differences between hardware targets.
package memorymodel

import "github.com/aetherarm/arm7tdmi/logger"

// Access describes whether a region may be read, written, or both.
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
)

// Transform names how an address offset within a region is folded
// into an index into that region's backing storage.
type Transform int

const (
	// Linear is a direct offset with no wraparound; used for regions
	// that are not mirrored.
	Linear Transform = iota

	// Wrap repeats the backing storage across the entire window the
	// region occupies in the address space.
	Wrap

	// VRAMMirror wraps into a 128 KiB window and then folds the top
	// 32 KiB of that window back into the 64..96 KiB range, matching
	// video RAM's address-decode quirk.
	VRAMMirror
)

// Region describes one row of the address-range table.
type Region struct {
	Name        string
	Base        uint32
	Size        uint32
	Access      Access
	Transform   Transform
	NoByteWrite bool
}

// Index computes the byte offset into the region's backing storage
// for the given address, which must already be known to lie within
// [Base, Base+window).
func (r Region) Index(addr uint32, window uint32) uint32 {
	offset := addr - r.Base

	switch r.Transform {
	case Linear:
		return offset
	case Wrap:
		return offset % r.Size
	case VRAMMirror:
		offset %= 0x20000
		if offset >= 0x18000 {
			offset -= 0x8000
		}
		return offset
	default:
		return offset % r.Size
	}
}

// Map is the complete, fixed address-range table for the core. Unlike
// the multi-target ARM coprocessor memory models this project has
// supported historically, the handheld's bus has exactly one layout,
// so Map carries no model-selection switch.
type Map struct {
	Regions []Region
}

const (
	BIOSBase            = 0x00000000
	BIOSSize            = 16 * 1024
	WRAMBoardBase       = 0x02000000
	WRAMBoardWindow     = 0x01000000
	WRAMBoardSize       = 256 * 1024
	WRAMChipBase        = 0x03000000
	WRAMChipWindow      = 0x01000000
	WRAMChipSize        = 32 * 1024
	IOBase              = 0x04000000
	IOSize              = 0x3FF // 0x04000000..0x040003FE inclusive
	PaletteBase         = 0x05000000
	PaletteWindow       = 0x01000000
	PaletteSize         = 1024
	VRAMBase            = 0x06000000
	VRAMWindow          = 0x01000000
	VRAMSize            = 96 * 1024
	OAMBase             = 0x07000000
	OAMWindow           = 0x01000000
	OAMSize             = 1024
	CartridgeROM0Base   = 0x08000000
	CartridgeROM1Base   = 0x0A000000
	CartridgeROM2Base   = 0x0C000000
	CartridgeROMWindow  = 0x02000000
	CartridgeROMMax     = 32 * 1024 * 1024
	CartridgeSRAMBase   = 0x0E000000
	CartridgeSRAMWindow = 0x00010000
	CartridgeSRAMMax    = 64 * 1024
)

// NewMap builds the fixed address-range table described by this
// core's memory map.
func NewMap() Map {
	m := Map{
		Regions: []Region{
			{Name: "BIOS", Base: BIOSBase, Size: BIOSSize, Access: ReadOnly, Transform: Linear},
			{Name: "WRAM on-board", Base: WRAMBoardBase, Size: WRAMBoardSize, Access: ReadWrite, Transform: Wrap},
			{Name: "WRAM on-chip", Base: WRAMChipBase, Size: WRAMChipSize, Access: ReadWrite, Transform: Wrap},
			{Name: "I/O registers", Base: IOBase, Size: IOSize, Access: ReadWrite, Transform: Linear},
			{Name: "Palette RAM", Base: PaletteBase, Size: PaletteSize, Access: ReadWrite, Transform: Wrap, NoByteWrite: true},
			{Name: "Video RAM", Base: VRAMBase, Size: VRAMSize, Access: ReadWrite, Transform: VRAMMirror, NoByteWrite: true},
			{Name: "OAM", Base: OAMBase, Size: OAMSize, Access: ReadWrite, Transform: Wrap, NoByteWrite: true},
			{Name: "Cartridge ROM 0", Base: CartridgeROM0Base, Size: CartridgeROMMax, Access: ReadOnly, Transform: Linear},
			{Name: "Cartridge ROM 1", Base: CartridgeROM1Base, Size: CartridgeROMMax, Access: ReadOnly, Transform: Linear},
			{Name: "Cartridge ROM 2", Base: CartridgeROM2Base, Size: CartridgeROMMax, Access: ReadOnly, Transform: Linear},
			{Name: "Cartridge SRAM", Base: CartridgeSRAMBase, Size: CartridgeSRAMMax, Access: ReadWrite, Transform: Wrap},
		},
	}

	logger.Logf("Memory Map", "%d regions registered", len(m.Regions))

	return m
}

// Window returns the size of the address-space window a region's
// mirroring repeats across, which may differ from the region's
// backing-storage size. The RAM-class regions repeat across the whole
// 16 MiB block their base address selects; the index transform folds
// each access back into the backing store.
func (r Region) Window() uint32 {
	switch r.Base {
	case WRAMBoardBase:
		return WRAMBoardWindow
	case WRAMChipBase:
		return WRAMChipWindow
	case PaletteBase:
		return PaletteWindow
	case VRAMBase:
		return VRAMWindow
	case OAMBase:
		return OAMWindow
	case CartridgeROM0Base, CartridgeROM1Base, CartridgeROM2Base:
		return CartridgeROMWindow
	case CartridgeSRAMBase:
		return CartridgeSRAMWindow
	default:
		return r.Size
	}
}

// Find returns the region containing addr, and whether one was found.
func (m Map) Find(addr uint32) (Region, bool) {
	for _, r := range m.Regions {
		window := r.Window()
		if addr >= r.Base && addr < r.Base+window {
			return r, true
		}
	}
	return Region{}, false
}
