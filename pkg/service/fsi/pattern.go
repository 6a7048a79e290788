// Copyright 2026 The hostctl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//


// Package fsi bit-bangs FSI messages over a data/clock GPIO pair.
//
// The messages are fixed bit patterns defined by the hardware design.
// They are transmitted most significant position first, one bit per
// clock cycle, and must never be reordered.
package fsi

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/openbmc/hostctl/model"
)

// Symbol is a single bit of an FSI message.
type Symbol bool

const (
	Zero Symbol = false
	One  Symbol = true
)

// Char returns the symbol as '0' or '1'.
func (s Symbol) Char() byte {
	if s {
		return '1'
	}
	return '0'
}

// Pattern is an ordered, immutable FSI message.
type Pattern struct {
	name    string
	symbols []Symbol
}

// mustParsePattern builds a pattern from a string of '0' and '1'.
func mustParsePattern(name, bits string) Pattern {
	p, err := ParsePattern(name, bits)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePattern builds a pattern from a string of '0' and '1'.
func ParsePattern(name, bits string) (Pattern, error) {
	symbols := make([]Symbol, 0, len(bits))
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			symbols = append(symbols, Zero)
		case '1':
			symbols = append(symbols, One)
		default:
			return Pattern{}, errors.Errorf("invalid symbol '%c' at position %d in pattern '%s'", bits[i], i, name)
		}
	}
	return Pattern{name: name, symbols: symbols}, nil
}

// Name of the pattern
func (p Pattern) Name() string { return p.name }

// Len returns the number of symbols in the pattern.
func (p Pattern) Len() int { return len(p.symbols) }

// At returns the symbol at given position.
func (p Pattern) At(i int) Symbol { return p.symbols[i] }

// Symbols returns a copy of all symbols in order.
func (p Pattern) Symbols() []Symbol {
	return append([]Symbol(nil), p.symbols...)
}

// String returns the pattern as a string of '0' and '1'.
func (p Pattern) String() string {
	var sb strings.Builder
	sb.Grow(len(p.symbols))
	for _, s := range p.symbols {
		sb.WriteByte(s.Char())
	}
	return sb.String()
}

var (
	// putcfam 0x281c 0x30000000
	primarySide = mustParsePattern("primary", "000011111111110101111000111001100111111111111111111111111111101111111111")
	// putcfam 0x281c 0x30900000
	goldenSide = mustParsePattern("golden", "000011111111110101111000111001100111101101111111111111111111101001111111")
	// putcfam 0x281c 0xB0000000
	goPattern = mustParsePattern("go", "000011111111110101111000111000100111111111111111111111111111101101111111")

	// putcfam 0x081c 0x20000000
	attentionA = mustParsePattern("attention-a", "000011111111111101111110001001101111111111111111111111111111110001111111")
	// putcfam 0x100d 0x40000000
	attentionB = mustParsePattern("attention-b", "000011111111111011111100101001011111111111111111111111111111110001111111")
	// putcfam 0x100b 0xFFFFFFFF
	attentionC = mustParsePattern("attention-c", "000011111111111011111101001000000000000000000000000000000000001011111111")
)

// PrimarySide selects the primary BIOS flash side.
func PrimarySide() Pattern { return primarySide }

// GoldenSide selects the golden BIOS flash side.
func GoldenSide() Pattern { return goldenSide }

// Go starts execution on the host.
func Go() Pattern { return goPattern }

// AttentionA arms the first attention line.
func AttentionA() Pattern { return attentionA }

// AttentionB arms the second attention line.
func AttentionB() Pattern { return attentionB }

// AttentionC arms the third attention line.
func AttentionC() Pattern { return attentionC }

// PatternFor returns the FSI message that performs the given register write.
// Returns false when no such message is known.
func PatternFor(w model.RegisterWrite) (Pattern, bool) {
	switch w {
	case model.AttentionA:
		return attentionA, true
	case model.AttentionB:
		return attentionB, true
	case model.AttentionC:
		return attentionC, true
	case model.PrimarySideWrite:
		return primarySide, true
	case model.GoldenSideWrite:
		return goldenSide, true
	case model.GoWrite:
		return goPattern, true
	default:
		return Pattern{}, false
	}
}
