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

package sequencer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/service/bridge"
	"github.com/openbmc/hostctl/pkg/service/fsi"
)

const (
	pinClk    = 1
	pinData   = 2
	pinEnable = 3
	pinSide   = 4
	pinOpt    = 5
)

func testLines() model.LineConfiguration {
	return model.LineConfiguration{
		Lines: map[string]model.Pin{
			model.LineNameClock:      {Pin: pinClk},
			model.LineNameData:       {Pin: pinData},
			model.LineNameEnable:     {Pin: pinEnable},
			model.LineNameSideSelect: {Pin: pinSide},
		},
		Optionals: []model.OptionalPin{
			{Name: "opt", Pin: model.Pin{Pin: pinOpt}, Polarity: true},
		},
	}
}

// harness records bridge operations and register writes in a single log.
type harness struct {
	bridge *bridge.Virtual
	seq    *Sequencer
	events []string
	writes []model.RegisterWrite
	failOp func(bridge.Op) error
	failW  func(model.RegisterWrite) error
}

func (h *harness) PutCFAM(w model.RegisterWrite) error {
	h.events = append(h.events, "reg:"+w.String())
	h.writes = append(h.writes, w)
	if h.failW != nil {
		return h.failW(w)
	}
	return nil
}

func opString(op bridge.Op) string {
	return fmt.Sprintf("%s:%d:%v", op.Kind, op.Pin, op.Value)
}

func newHarness(t *testing.T, conf Config) *harness {
	h := &harness{
		bridge: bridge.NewVirtualBridge(false),
	}
	h.bridge.FailWhen(func(op bridge.Op) error {
		h.events = append(h.events, opString(op))
		if h.failOp != nil {
			return h.failOp(op)
		}
		return nil
	})
	conf.Lines = testLines()
	seq, err := New(conf, Dependencies{
		Log:       zerolog.Nop(),
		Bridge:    h.bridge,
		Registers: h,
	})
	require.NoError(t, err)
	h.seq = seq
	return h
}

func (h *harness) indexOf(event string) int {
	for i, e := range h.events {
		if e == event {
			return i
		}
	}
	return -1
}

func (h *harness) countOf(kind bridge.OpKind, pin int) int {
	result := 0
	prefix := fmt.Sprintf("%s:%d:", kind, pin)
	for _, e := range h.events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			result++
		}
	}
	return result
}

func pulses(n int) []string {
	var result []string
	for i := 0; i < n; i++ {
		result = append(result, "write:1:false", "write:1:true")
	}
	return result
}

func TestBootPrimary(t *testing.T) {
	h := newHarness(t, Config{})
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})

	assert.False(t, r.Outcome.Failed(), r.Outcome.String())
	assert.True(t, r.Booted)
	assert.Equal(t, StageClosed, r.Stage)
	assert.Equal(t, StageSettling, r.Reached)
	assert.Equal(t, 0, h.bridge.OpenPins())

	assert.Equal(t, []model.RegisterWrite{
		{Address: 0x081C, Value: 0x20000000},
		{Address: 0x100D, Value: 0x40000000},
		{Address: 0x100B, Value: 0xFFFFFFFF},
		{Address: 0x281C, Value: 0x30000000},
		{Address: 0x281C, Value: 0xB0000000},
	}, h.writes)

	// Opening & configuring
	assert.Equal(t, []string{
		"open:1:false", "open:2:false", "open:3:false", "open:4:false", "open:5:false",
		"write:4:true", "write:3:true", "write:1:true", "write:5:true",
		"write:2:true",
	}, h.events[:10])

	// Every register write is followed by a standby
	for _, w := range h.writes[:4] {
		idx := h.indexOf("reg:" + w.String())
		require.True(t, idx >= 0)
		assert.Equal(t, "write:2:true", h.events[idx+1])
	}

	// Go pattern, settling and close
	idx := h.indexOf("reg:" + model.GoWrite.String())
	require.True(t, idx >= 0)
	var expected []string
	for _, s := range fsi.Go().Symbols() {
		expected = append(expected, fmt.Sprintf("write:2:%v", bool(s)), "write:1:false", "write:1:true")
	}
	expected = append(expected, "write:2:true")
	expected = append(expected, pulses(2)...)
	expected = append(expected, "write:1:false", "write:3:false")
	expected = append(expected, pulses(16)...)
	expected = append(expected, "write:1:false")
	expected = append(expected, "close:5:false", "close:4:false", "close:3:false", "close:2:false", "close:1:false")
	assert.Equal(t, expected, h.events[idx+1:])

	assert.False(t, h.bridge.Level(pinEnable))
	assert.False(t, h.bridge.Level(pinClk))
	assert.True(t, h.bridge.Level(pinOpt))
}

func TestBootClockPulseCounts(t *testing.T) {
	h := newHarness(t, Config{})
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	require.False(t, r.Outcome.Failed())
	// 5 standbys, clear pipes, go pattern and settling pulses,
	// each pulse is 2 writes, plus 3 explicit clock writes.
	pulses := 5*fsi.StandbyCycles + 256 + 50 + fsi.Go().Len() + 2 + 16
	assert.Equal(t, 2*pulses+3, h.countOf(bridge.OpWrite, pinClk))
}

func TestBootGolden(t *testing.T) {
	h := newHarness(t, Config{})
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSideGolden})
	assert.False(t, r.Outcome.Failed())
	require.Len(t, h.writes, 5)
	assert.Equal(t, model.GoldenSideWrite, h.writes[3])
}

func TestBootUnknownFlashSide(t *testing.T) {
	h := newHarness(t, Config{})
	r := h.seq.Boot(model.BootConfiguration{FlashSide: "unknown"})

	assert.True(t, r.Outcome.Failed())
	assert.True(t, r.Outcome.IsHard())
	assert.Equal(t, CodeInvalidFlashSide, r.Outcome.Code())
	assert.Equal(t, StageSelectingFlashSide, r.Reached)
	assert.True(t, r.Booted)
	assert.Equal(t, model.AttentionWrites(), h.writes)
	assert.Equal(t, 0, h.bridge.OpenPins())
}

func TestBootDebugMode(t *testing.T) {
	h := newHarness(t, Config{})
	r := h.seq.Boot(model.BootConfiguration{DebugMode: true, FlashSide: model.FlashSidePrimary})

	assert.False(t, r.Outcome.Failed())
	assert.False(t, r.Booted)
	assert.Equal(t, StageDebugShortcut, r.Stage)
	assert.Empty(t, h.writes)
	assert.Equal(t, []string{
		"open:3:false", "open:4:false",
		"write:3:true", "write:4:false",
		"close:4:false", "close:3:false",
	}, h.events)
	assert.True(t, h.bridge.Level(pinEnable))
	assert.False(t, h.bridge.Level(pinSide))
}

func TestBootReopenKeepsLevels(t *testing.T) {
	h := newHarness(t, Config{})
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	require.False(t, r.Outcome.Failed())
	require.True(t, h.bridge.Level(pinOpt))

	h.events = nil
	r = h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	require.False(t, r.Outcome.Failed())
	// Opening leaves every line at the level of the previous attempt.
	assert.Equal(t, []string{
		"open:1:false", "open:2:true", "open:3:false", "open:4:true", "open:5:true",
		"write:4:true", "write:3:true", "write:1:true", "write:5:true",
	}, h.events[:9])
	assert.Equal(t, 1, h.countOf(bridge.OpWrite, pinOpt))
}

func TestBootOpenFailureClosesOpenedLines(t *testing.T) {
	h := newHarness(t, Config{})
	h.failOp = func(op bridge.Op) error {
		if op.Kind == bridge.OpOpen && op.Pin == pinData {
			return errors.New("busy")
		}
		return nil
	}
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})

	assert.True(t, r.Outcome.Failed())
	assert.False(t, r.Outcome.IsHard())
	assert.Equal(t, 1, r.Outcome.Failures())
	assert.Equal(t, StageOpening, r.Reached)
	assert.True(t, r.Booted)
	assert.Empty(t, h.writes)
	// All other lines are still opened, then closed.
	assert.Equal(t, []string{
		"open:1:false", "open:2:false", "open:3:false", "open:4:false", "open:5:false",
		"close:5:false", "close:4:false", "close:3:false", "close:1:false",
	}, h.events)
	assert.Equal(t, 0, h.bridge.OpenPins())
}

func TestBootFailureInClearingPipes(t *testing.T) {
	h := newHarness(t, Config{})
	clkWrites := 0
	h.failOp = func(op bridge.Op) error {
		if op.Kind == bridge.OpWrite && op.Pin == pinClk {
			clkWrites++
			// Configuring writes once, standby pulses 5000 times.
			if clkWrites == 1+2*fsi.StandbyCycles+10 {
				return errors.New("stuck")
			}
		}
		return nil
	}
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	assert.True(t, r.Outcome.Failed())
	assert.Equal(t, StageClearingPipes, r.Reached)
	assert.Empty(t, h.writes)
	assert.True(t, r.Booted)
	assert.Equal(t, 0, h.bridge.OpenPins())
}

func TestBootGoTransmissionFailure(t *testing.T) {
	h := newHarness(t, Config{})
	goSeen := false
	dataWrites := 0
	h.failW = func(w model.RegisterWrite) error {
		if w == model.GoWrite {
			goSeen = true
		}
		return nil
	}
	h.failOp = func(op bridge.Op) error {
		if goSeen && op.Kind == bridge.OpWrite && op.Pin == pinData {
			dataWrites++
			if dataWrites == 5 {
				return errors.New("glitch")
			}
		}
		return nil
	}
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	assert.True(t, r.Outcome.Failed())
	assert.Equal(t, StageSettling, r.Reached)
	// 4 bits sent, 5th failed; settling still writes data high once.
	assert.Equal(t, 6, dataWrites)
	assert.Equal(t, 0, h.bridge.OpenPins())
}

func TestHelperFailureBestEffort(t *testing.T) {
	h := newHarness(t, Config{HelperPolicy: HelperPolicyBestEffort})
	h.failW = func(w model.RegisterWrite) error {
		if w == model.AttentionB {
			return errors.New("pdbg failed")
		}
		return nil
	}
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	assert.False(t, r.Outcome.Failed())
	assert.Len(t, h.writes, 5)
	assert.Equal(t, StageSettling, r.Reached)
}

func TestHelperFailureStrict(t *testing.T) {
	h := newHarness(t, Config{HelperPolicy: HelperPolicyStrict})
	h.failW = func(w model.RegisterWrite) error {
		if w == model.AttentionB {
			return errors.New("pdbg failed")
		}
		return nil
	}
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSidePrimary})
	assert.True(t, r.Outcome.Failed())
	assert.Equal(t, StageArmingAttentions, r.Reached)
	// All attentions are attempted before the checkpoint.
	assert.Equal(t, model.AttentionWrites(), h.writes)
	assert.True(t, r.Booted)
	assert.Equal(t, 0, h.bridge.OpenPins())
}

func TestRegisterTransportFSI(t *testing.T) {
	h := newHarness(t, Config{RegisterTransport: RegisterTransportFSI})
	r := h.seq.Boot(model.BootConfiguration{FlashSide: model.FlashSideGolden})
	assert.False(t, r.Outcome.Failed())
	// Only the go write uses the helper.
	assert.Equal(t, []model.RegisterWrite{model.GoWrite}, h.writes)
	// Standbys, clearing pipes, 5 patterns and settling
	expected := 5 + 2 +
		fsi.AttentionA().Len() + fsi.AttentionB().Len() + fsi.AttentionC().Len() +
		fsi.GoldenSide().Len() + fsi.Go().Len() + 1
	assert.Equal(t, expected, h.countOf(bridge.OpWrite, pinData))
	assert.Equal(t, 0, h.bridge.OpenPins())
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Lines: model.LineConfiguration{}}, Dependencies{Log: zerolog.Nop()})
	assert.Error(t, err)

	_, err = New(Config{Lines: testLines(), HelperPolicy: "sometimes"}, Dependencies{Log: zerolog.Nop()})
	assert.True(t, model.IsValidation(err))

	_, err = New(Config{Lines: testLines(), RegisterTransport: "pigeon"}, Dependencies{Log: zerolog.Nop()})
	assert.True(t, model.IsValidation(err))

	s, err := New(Config{Lines: testLines()}, Dependencies{Log: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, HelperPolicyBestEffort, s.HelperPolicy)
	assert.Equal(t, RegisterTransportHelper, s.RegisterTransport)
}
