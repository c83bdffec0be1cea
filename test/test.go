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

// Package test collects the handful of assertion helpers used throughout the
// rest of the module's test suites. It is deliberately small: it exists so
// that test failures are reported with a consistent, readable format rather
// than because the standard testing package is inadequate.
package test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
)

// Equate fails the test if got and want are not equal, as judged by
// reflect.DeepEqual. On failure it reports the specific fields that differ
// (via go-test/deep) followed by a full spew dump of both sides, so that
// nested structs (register banks, decoded instructions) are readable instead
// of being printed as a single %v blob.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		diff := deep.Equal(got, want)
		t.Errorf("unexpected value\ndiff: %v\ngot:  %s\nwant: %s", diff, spew.Sdump(got), spew.Sdump(want))
	}
}

// ExpectedSuccess fails the test unless v is a true bool or a nil error.
func ExpectedSuccess(t *testing.T, v interface{}) {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("expected success but got false")
		}
	case error:
		if v != nil {
			t.Errorf("expected success but got error: %v", v)
		}
	default:
		if v != nil {
			t.Errorf("expected success but got: %v", v)
		}
	}
}

// ExpectedFailure fails the test unless v is a false bool or a non-nil error.
func ExpectedFailure(t *testing.T, v interface{}) {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("expected failure but got true")
		}
	case error:
		if v == nil {
			t.Errorf("expected failure but got nil error")
		}
	default:
		if v == nil {
			t.Errorf("expected failure but got nil")
		}
	}
}
