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

package cartridgeloader

import (
	"path/filepath"
	"slices"
	"strings"
)

// decideOnName chooses how code outside the package should refer to the
// cartridge. Embedded data has no real filename so its given name is used
// directly.
func decideOnName(ld Loader) string {
	if ld.embedded {
		return ld.Filename
	}

	if len(strings.TrimSpace(ld.Filename)) == 0 {
		return ""
	}

	return NameFromFilename(ld.Filename)
}

// NameFromFilename converts a filename to a shortened version suitable for
// display. A recognised cartridge-image extension is dropped; any other
// extension is kept, on the grounds that it may be meaningful.
func NameFromFilename(filename string) string {
	name := filepath.Base(filename)
	ext := strings.ToUpper(filepath.Ext(filename))
	if slices.Contains(FileExtensions, ext) {
		name = strings.TrimSuffix(name, filepath.Ext(filename))
	}
	return name
}
