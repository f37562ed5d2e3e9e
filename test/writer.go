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

package test

import "strings"

// Writer is an unbounded io.Writer accumulator, useful for comparing
// the entirety of what was written against an expected string.
type Writer struct {
	b strings.Builder
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// Compare reports whether everything written so far equals s.
func (w *Writer) Compare(s string) bool {
	return w.b.String() == s
}

// Clear empties the writer.
func (w *Writer) Clear() {
	w.b.Reset()
}
