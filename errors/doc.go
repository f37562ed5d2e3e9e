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

// Package errors catalogues the error numbers (Errno) raised outside of
// the cpu package, and the message format registered for each in
// messages.go. Unlike curated.Errorf, which wraps an arbitrary format
// string, errors.New takes a fixed Errno so callers can match on the
// category with Is() rather than on message text, and so the wording in
// messages.go can be reworded without breaking any Is() call site. Has()
// matches on the formatted message text, so it does depend on that wording.
//
// cpu's own DecodeError/ExecutionError types (see cpu/errors.go) are kept
// separate from this catalogue: the step loop's callers need the faulting
// instruction word and PC back as typed fields, not parsed out of a
// formatted string.
package errors
