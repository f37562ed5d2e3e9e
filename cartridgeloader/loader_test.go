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

package cartridgeloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aetherarm/arm7tdmi/cartridgeloader"
	"github.com/aetherarm/arm7tdmi/test"
)

func makeCart(title string) []byte {
	cart := make([]byte, cartridgeloader.HeaderSize+16)
	copy(cart[cartridgeloader.TitleOffset:], title)
	return cart
}

func TestNewLoaderFromDataExtractsTitle(t *testing.T) {
	ld, err := cartridgeloader.NewLoaderFromData("test", makeCart("MOONRUNNER"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ld.Open())
	test.ExpectEquality(t, ld.Title(), "MOONRUNNER")
}

func TestNewLoaderFromDataRejectsEmpty(t *testing.T) {
	_, err := cartridgeloader.NewLoaderFromData("test", nil)
	test.ExpectFailure(t, err)
}

func TestNewLoaderFromFilenameRejectsBlank(t *testing.T) {
	_, err := cartridgeloader.NewLoaderFromFilename("   ")
	test.ExpectFailure(t, err)
}

func TestOpenLoadsLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.bin")
	test.ExpectSuccess(t, os.WriteFile(path, makeCart("IRONFALCON"), 0o644))

	ld, err := cartridgeloader.NewLoaderFromFilename(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ld.Open())
	test.ExpectEquality(t, ld.Title(), "IRONFALCON")
	test.ExpectEquality(t, len(ld.HashSHA1), 40)
	test.ExpectEquality(t, len(ld.HashMD5), 32)
}

func TestOpenRejectsOversizedCartridge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.bin")
	test.ExpectSuccess(t, os.WriteFile(path, make([]byte, cartridgeloader.MaxCartridgeSize+1), 0o644))

	ld, err := cartridgeloader.NewLoaderFromFilename(path)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, ld.Open())
}

func TestLoadBIOSRequiresExactSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bios.bin")
	test.ExpectSuccess(t, os.WriteFile(path, make([]byte, cartridgeloader.BIOSSize-1), 0o644))

	_, err := cartridgeloader.LoadBIOS(path)
	test.ExpectFailure(t, err)
}

func TestLoadBIOSAcceptsExactSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bios.bin")
	test.ExpectSuccess(t, os.WriteFile(path, make([]byte, cartridgeloader.BIOSSize), 0o644))

	data, err := cartridgeloader.LoadBIOS(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(data), cartridgeloader.BIOSSize)
}
