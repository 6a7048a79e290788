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


package fsi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbmc/hostctl/model"
)

// recorder implements DataLine and ClockLine, logging every call.
type recorder struct {
	calls  []string
	failAt int
}

func (r *recorder) add(call string) error {
	r.calls = append(r.calls, call)
	if r.failAt > 0 && len(r.calls) == r.failAt {
		return errors.New("injected")
	}
	return nil
}

func (r *recorder) Write(value bool) error {
	return r.add(fmt.Sprintf("write:%v", value))
}

func (r *recorder) WriteBit(bit byte) error {
	return r.add("bit:" + string(bit))
}

func (r *recorder) ClockPulse(count int) error {
	return r.add(fmt.Sprintf("clk:%d", count))
}

func TestTransmitAlternatesDataAndClock(t *testing.T) {
	p, err := ParsePattern("test", "0110")
	require.NoError(t, err)
	r := &recorder{}
	require.NoError(t, Transmit(r, r, p))
	assert.Equal(t, []string{
		"bit:0", "clk:1",
		"bit:1", "clk:1",
		"bit:1", "clk:1",
		"bit:0", "clk:1",
	}, r.calls)
}

func TestTransmitGoPattern(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Transmit(r, r, Go()))
	require.Len(t, r.calls, 2*Go().Len())
	bits := make([]byte, 0, Go().Len())
	for i := 0; i < len(r.calls); i += 2 {
		bits = append(bits, r.calls[i][len("bit:")])
		assert.Equal(t, "clk:1", r.calls[i+1])
	}
	assert.Equal(t, Go().String(), string(bits))
}

func TestTransmitStopsAtFirstFailure(t *testing.T) {
	// Fail on the clock pulse of the third bit
	r := &recorder{failAt: 6}
	err := Transmit(r, r, PrimarySide())
	require.Error(t, err)
	assert.Len(t, r.calls, 6)

	// Fail on a data write
	r = &recorder{failAt: 3}
	require.Error(t, Transmit(r, r, PrimarySide()))
	assert.Len(t, r.calls, 3)
}

func TestStandby(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Standby(r, r))
	assert.Equal(t, []string{"write:true", fmt.Sprintf("clk:%d", StandbyCycles)}, r.calls)

	r = &recorder{failAt: 1}
	require.Error(t, Standby(r, r))
	assert.Len(t, r.calls, 1)
}

func TestPatterns(t *testing.T) {
	for _, p := range []Pattern{PrimarySide(), GoldenSide(), Go(), AttentionA(), AttentionB(), AttentionC()} {
		assert.Equal(t, 72, p.Len(), p.Name())
	}
	assert.Equal(t, "000011111111110101111000111000100111111111111111111111111111101101111111", Go().String())

	// Symbols returns a copy
	s := Go().Symbols()
	s[0] = One
	assert.Equal(t, Zero, Go().At(0))

	_, err := ParsePattern("bad", "01x")
	assert.Error(t, err)
}

func TestPatternFor(t *testing.T) {
	p, ok := PatternFor(model.AttentionB)
	require.True(t, ok)
	assert.Equal(t, AttentionB().String(), p.String())
	p, ok = PatternFor(model.GoldenSideWrite)
	require.True(t, ok)
	assert.Equal(t, "golden", p.Name())
	_, ok = PatternFor(model.RegisterWrite{Address: 1, Value: 2})
	assert.False(t, ok)
}
