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

// Package cartridgeloader is used to load a cartridge image (and the BIOS
// image it is paired with) so the raw bytes can be handed to
// membus.NewBus.
//
// The loader does not interpret cartridge contents beyond the 192-byte
// header needed to recover the title string at offset 0xA0-0xAC. Mapper
// detection, bank switching, and anything else specific to a cartridge
// format are out of scope for this package and for the core it feeds; the
// bus treats the whole image as one linear ROM mirrored at three bases.
//
// # Hashes
//
// A SHA1 and MD5 hash of the loaded data is computed when the data is
// read: by NewLoaderFromData() at creation, and by Open() for a Loader
// made with NewLoaderFromFilename(). The hashes allow cheap
// integrity checking against an expected hash supplied by a caller (a test
// fixture, a saved-game header) without needing to re-read the file.
package cartridgeloader
