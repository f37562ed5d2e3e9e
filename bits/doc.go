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

// Package bits implements the bit-level primitives that the rest of the
// ARMv4T core is built on: field extraction/insertion, sign extension,
// shifts, and the carry/overflow-producing add and subtract variants
// used by the status flags. No other package in this module is allowed
// to reimplement these rules; they appear here exactly once.
package bits
