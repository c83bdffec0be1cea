// This file is part of GoAdvance.
//
// GoAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoAdvance.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is a small, dependency-free central log used by the CPU core
// to record its warnings and curiosities: unpredictable register
// combinations, structurally undefined opcodes, coprocessor no-ops. It is
// not a general purpose logging facade - there's no level filtering beyond
// the Permission gate - because the core has exactly one consumer (the host
// emulator) and that consumer decides what to do with the tail of the log.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission is consulted before an entry is appended to the log. It allows a
// caller to suppress noisy, expected log entries (for example while running a
// decode-only disassembly pass) without threading a boolean through every
// call site.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool { return true }

// Allow is the Permission value to use when there is no reason to suppress
// logging.
var Allow Permission = allow{}

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.detail)
}

// Logger is a capped, in-memory ring of log entries. The zero value is not
// usable; construct one with NewLogger.
type Logger struct {
	mu       sync.Mutex
	entries  []entry
	capacity int
}

// NewLogger creates a Logger that retains at most capacity entries, discarding
// the oldest entry once that limit is reached.
func NewLogger(capacity int) *Logger {
	return &Logger{
		capacity: capacity,
	}
}

func detailString(detail interface{}) string {
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

// Log appends a new entry built from tag and detail, subject to perm allowing
// it. detail is rendered specially for errors and fmt.Stringer implementations
// so that the common case (logging a returned error) reads naturally.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if perm != nil && !perm.AllowLogging() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry{tag: tag, detail: detailString(detail)})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Logf is Log with the detail formatted via fmt.Sprintf.
func (l *Logger) Logf(perm Permission, tag string, format string, args ...interface{}) {
	l.Log(perm, tag, fmt.Sprintf(format, args...))
}

// Clear empties the log.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Write renders every retained entry, one per line, to w.
func (l *Logger) Write(w io.Writer) {
	l.Tail(w, -1)
}

// Tail renders the most recent n entries, one per line, to w. A negative n
// means "all of them".
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	entries := l.entries
	if n >= 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	l.mu.Unlock()

	var s strings.Builder
	for _, e := range entries {
		s.WriteString(e.String())
		s.WriteRune('\n')
	}
	_, _ = io.WriteString(w, s.String())
}

// central is the package-level log used by the convenience functions below.
// The CPU core itself only ever logs through this instance; a host that wants
// an isolated log for, say, a headless conformance run can construct its own
// Logger instead and never touch these functions.
var central = NewLogger(1000)

// Log appends an entry to the central log. Equivalent to central.Log(Allow, tag, detail).
func Log(tag string, detail interface{}) {
	central.Log(Allow, tag, detail)
}

// Logf appends a formatted entry to the central log.
func Logf(tag string, format string, args ...interface{}) {
	central.Logf(Allow, tag, format, args...)
}

// Write renders the central log to w.
func Write(w io.Writer) {
	central.Write(w)
}

// Tail renders the most recent n entries of the central log to w.
func Tail(w io.Writer, n int) {
	central.Tail(w, n)
}

// Clear empties the central log. Mostly useful for tests.
func Clear() {
	central.Clear()
}
