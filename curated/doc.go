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

// Package curated wraps the plain Go language error type with a pattern
// string that can be matched on later.
//
// Errors are created with Errorf(), which looks like fmt.Errorf() but keeps
// the formatting pattern alongside the formatted values:
//
//	e := curated.Errorf("loader: %v", err)
//
// The pattern doubles as the error's identity. Is() checks whether an error
// was created with a specific pattern, and Has() checks whether the pattern
// occurs anywhere in a chain of curated errors:
//
//	if curated.Is(e, "loader: %v") {
//		...
//	}
//
// IsAny() answers the broader question of whether the error came from
// Errorf() at all. Errors that did can be thought of as expected - something
// the program knows how to present to the user - as opposed to an unexpected
// error from deeper in the runtime or a third-party package.
//
// The Error() function normalises the message chain by dropping the first
// part when it repeats the second, so that wrapping an error in one more
// layer with the same prefix does not make the message stutter. Only that
// leading pair is compared:
//
//	---> cartridge error: cartridge error: file not found
//
// becomes
//
//	---> cartridge error: file not found
package curated
