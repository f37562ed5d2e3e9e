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

// Package logger implements a small ring-buffer event log. Entries are
// tagged with a short identifier (eg. the component that raised them)
// and a detail value, which is rendered according to its type: errors
// print their Error() text, fmt.Stringer values print their String(),
// and everything else falls back to the %v verb.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Permission gates whether a call to Log/Logf actually records an
// entry. The package-level functions always log with Allow.
type Permission interface {
	AllowLogging() bool
}

// Allow is a Permission that always allows logging.
var Allow = allowPermission{}

type allowPermission struct{}

func (allowPermission) AllowLogging() bool { return true }

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s\n", e.tag, e.detail)
}

// Logger is a fixed-capacity ring buffer of log entries. The oldest
// entry is dropped once the buffer is full.
type Logger struct {
	crit    sync.Mutex
	entries []entry
	limit   int
}

// NewLogger creates a Logger that retains at most limit entries.
func NewLogger(limit int) *Logger {
	if limit < 1 {
		limit = 1
	}
	return &Logger{
		entries: make([]entry, 0, limit),
		limit:   limit,
	}
}

func render(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Log adds an entry to the log, provided permission allows it.
func (l *Logger) Log(permission Permission, tag string, detail interface{}) {
	if permission == nil || !permission.AllowLogging() {
		return
	}

	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) == l.limit {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, entry{tag: tag, detail: render(detail)})
}

// Logf is like Log but formats detail with fmt.Sprintf.
func (l *Logger) Logf(permission Permission, tag string, format string, args ...interface{}) {
	l.Log(permission, tag, fmt.Sprintf(format, args...))
}

// Write renders every retained entry to w, oldest first.
func (l *Logger) Write(w io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()

	for _, e := range l.entries {
		_, _ = io.WriteString(w, e.String())
	}
}

// Tail renders at most n of the most recently retained entries to w,
// oldest first. n may exceed the number of stored entries.
func (l *Logger) Tail(w io.Writer, n int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	for _, e := range l.entries[len(l.entries)-n:] {
		_, _ = io.WriteString(w, e.String())
	}
}

// Clear empties the log.
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
}

// def is the package-level logger used by the free functions below,
// for callers that don't need a dedicated Logger instance.
var def = NewLogger(1000)

// Log adds an entry to the default log.
func Log(tag string, detail interface{}) {
	def.Log(Allow, tag, detail)
}

// Logf is like Log but formats detail with fmt.Sprintf.
func Logf(tag string, format string, args ...interface{}) {
	def.Logf(Allow, tag, format, args...)
}

// Write renders the default log's entries to w.
func Write(w io.Writer) {
	def.Write(w)
}

// Tail renders the default log's n most recent entries to w.
func Tail(w io.Writer, n int) {
	def.Tail(w, n)
}

// Clear empties the default log.
func Clear() {
	def.Clear()
}
