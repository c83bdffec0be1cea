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

package instructions_test

import (
	"fmt"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/retrogo/goadvance/hardware/cpu/instructions"
)

// armCase and thumbCase mirror the [[arm]] and [[thumb]] tables in
// testdata/decode_corpus.toml. Keeping the corpus as data rather than Go
// literals means new decode cases can be added without touching this file.
type armCase struct {
	Name      string `toml:"name"`
	Opcode    uint32 `toml:"opcode"`
	Condition string `toml:"condition"`
	Variant   string `toml:"variant"`
}

type thumbCase struct {
	Name    string `toml:"name"`
	Opcode  uint16 `toml:"opcode"`
	Variant string `toml:"variant"`
}

type decodeCorpus struct {
	ARM   []armCase   `toml:"arm"`
	Thumb []thumbCase `toml:"thumb"`
}

func loadDecodeCorpus(t *testing.T) decodeCorpus {
	t.Helper()
	var c decodeCorpus
	if _, err := toml.DecodeFile("testdata/decode_corpus.toml", &c); err != nil {
		t.Fatalf("loading decode corpus: %v", err)
	}
	return c
}

// variantName reports the unqualified type name of a decoded ARMVariant or
// ThumbVariant, e.g. "BranchAndExchange".
func variantName(v interface{}) string {
	return fmt.Sprintf("%T", v)[len("instructions."):]
}

// TestDecodeARMCorpus walks every [[arm]] entry in the corpus and checks
// that DecodeARM classifies it into the named condition and variant shape.
func TestDecodeARMCorpus(t *testing.T) {
	corpus := loadDecodeCorpus(t)
	for _, c := range corpus.ARM {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			decoded := instructions.DecodeARM(c.Opcode, 4)
			if got := decoded.Condition.String(); got != c.Condition {
				t.Errorf("opcode 0x%08X: condition = %s, want %s", c.Opcode, got, c.Condition)
			}
			if got := variantName(decoded.Variant); got != c.Variant {
				t.Errorf("opcode 0x%08X: variant = %s, want %s", c.Opcode, got, c.Variant)
			}
		})
	}
}

// TestDecodeThumbCorpus walks every [[thumb]] entry in the corpus and checks
// that DecodeThumb classifies it into the named variant shape.
func TestDecodeThumbCorpus(t *testing.T) {
	corpus := loadDecodeCorpus(t)
	for _, c := range corpus.Thumb {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			decoded := instructions.DecodeThumb(c.Opcode)
			if got := variantName(decoded.Variant); got != c.Variant {
				t.Errorf("opcode 0x%04X: variant = %s, want %s", c.Opcode, got, c.Variant)
			}
		})
	}
}
