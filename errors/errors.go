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

package errors

import (
	"fmt"
	"strings"
)

// Errno identifies an error category. The formatted message for an Errno is
// looked up in the messages table.
type Errno int

// CatalogueError marks an error as having originated from this package's New()/
// NewFormattedError(), as opposed to a plain fmt.Errorf. commandline's
// validation path uses this to avoid re-wrapping an already-curated error
// from a nested command definition.
type CatalogueError interface {
	error
	Errno() Errno
}

// curated pairs an Errno with the formatted message built from it.
type curated struct {
	errno   Errno
	message string
}

// New creates an error for the given Errno, formatting values into the
// message registered for that Errno in messages.go. Multiple values are
// joined before being substituted into the message's single %v verb.
func New(number Errno, values ...interface{}) error {
	return curated{
		errno:   number,
		message: fmt.Sprintf(messageText[number], joinValues(values)),
	}
}

// NewFormattedError is an alias for New, kept because some call sites
// in debugger/commandline spell it out for readability at the point a
// user-facing parse error is raised.
func NewFormattedError(number Errno, values ...interface{}) error {
	return New(number, values...)
}

func joinValues(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if err, ok := v.(error); ok {
			parts[i] = err.Error()
		} else {
			parts[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(parts, ": ")
}

// Error implements the go language error interface.
func (er curated) Error() string {
	return er.message
}

// Errno implements CatalogueError.
func (er curated) Errno() Errno {
	return er.errno
}

// IsAny reports whether err originated from this package.
func IsAny(err error) bool {
	_, ok := err.(curated)
	return ok
}

// Is reports whether err was created with the given Errno.
func Is(err error, number Errno) bool {
	er, ok := err.(curated)
	return ok && er.errno == number
}

// Has reports whether msg appears anywhere in the formatted message of
// an error that originated from this package.
func Has(err error, msg string) bool {
	if !IsAny(err) {
		return false
	}
	return strings.Contains(err.Error(), msg)
}
