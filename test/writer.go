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

package test

import "strings"

// Writer is an io.Writer that accumulates everything written to it, for
// comparison against an expected string in tests. Principally used to
// capture logger output.
type Writer struct {
	s strings.Builder
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.s.Write(p)
}

// Clear empties the writer's buffer.
func (w *Writer) Clear() {
	w.s.Reset()
}

// Compare returns true if s equals everything written to the buffer so far.
func (w *Writer) Compare(s string) bool {
	return w.s.String() == s
}

// String returns everything written to the buffer so far.
func (w *Writer) String() string {
	return w.s.String()
}
