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

import "fmt"

// CappedWriter is an io.Writer that retains at most limit bytes of
// everything ever written to it. Bytes written once the limit has
// been reached are silently discarded.
type CappedWriter struct {
	limit int
	buf   []byte
}

// NewCappedWriter creates a CappedWriter with the given byte limit.
func NewCappedWriter(limit int) (*CappedWriter, error) {
	if limit < 1 {
		return nil, fmt.Errorf("test: capped writer limit must be at least one")
	}
	return &CappedWriter{
		limit: limit,
		buf:   make([]byte, 0, limit),
	}, nil
}

// Write implements io.Writer.
func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.limit - len(c.buf)
	if room <= 0 {
		return len(p), nil
	}
	if room > len(p) {
		room = len(p)
	}
	c.buf = append(c.buf, p[:room]...)
	return len(p), nil
}

// String returns everything retained so far.
func (c *CappedWriter) String() string {
	return string(c.buf)
}

// Reset empties the writer.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}
