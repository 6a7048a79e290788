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
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/service/bridge"
	"github.com/openbmc/hostctl/pkg/service/fsi"
	"github.com/openbmc/hostctl/pkg/service/line"
)

// HelperPolicy determines how failed register writes affect the outcome.
type HelperPolicy string

const (
	// HelperPolicyBestEffort logs failed register writes but continues
	// as if they succeeded.
	HelperPolicyBestEffort HelperPolicy = "best-effort"
	// HelperPolicyStrict merges failed register writes into the outcome.
	HelperPolicyStrict HelperPolicy = "strict"
)

// RegisterTransport determines how attention and flash side registers are written.
type RegisterTransport string

const (
	// RegisterTransportHelper writes registers through the external helper.
	RegisterTransportHelper RegisterTransport = "helper"
	// RegisterTransportFSI writes registers by bit-banging their FSI message.
	RegisterTransportFSI RegisterTransport = "fsi"
)

const (
	clearPipesLowCycles  = 256
	clearPipesHighCycles = 50
	settleDataCycles     = 2
	settleMuxCycles      = 16
)

// RegisterWriter performs privileged CFAM register writes.
type RegisterWriter interface {
	PutCFAM(model.RegisterWrite) error
}

// Config of the sequencer.
type Config struct {
	Lines             model.LineConfiguration
	HelperPolicy      HelperPolicy
	RegisterTransport RegisterTransport
}

// Dependencies of the sequencer.
type Dependencies struct {
	Log       zerolog.Logger
	Bridge    bridge.API
	Registers RegisterWriter
}

// Result of a single boot attempt.
type Result struct {
	// Accumulated outcome
	Outcome Outcome
	// Last stage reached before lines were closed
	Reached Stage
	// Final stage
	Stage Stage
	// If set, a booted event must be emitted for this attempt
	Booted bool
	// Configuration used for the attempt
	Configuration model.BootConfiguration
	// Time the attempt started
	Started time.Time
	// Duration of the attempt
	Duration time.Duration
}

// Sequencer runs the host bring-up sequence.
type Sequencer struct {
	Config
	Dependencies
}

// New creates a new sequencer.
func New(conf Config, deps Dependencies) (*Sequencer, error) {
	if err := conf.Lines.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid GPIO configuration")
	}
	switch conf.HelperPolicy {
	case "":
		conf.HelperPolicy = HelperPolicyBestEffort
	case HelperPolicyBestEffort, HelperPolicyStrict:
	default:
		return nil, errors.Wrapf(model.ValidationError, "invalid helper policy '%s'", conf.HelperPolicy)
	}
	switch conf.RegisterTransport {
	case "":
		conf.RegisterTransport = RegisterTransportHelper
	case RegisterTransportHelper, RegisterTransportFSI:
	default:
		return nil, errors.Wrapf(model.ValidationError, "invalid register transport '%s'", conf.RegisterTransport)
	}
	deps.Log = deps.Log.With().Str("component", "sequencer").Logger()
	return &Sequencer{
		Config:       conf,
		Dependencies: deps,
	}, nil
}

// Boot runs a single boot attempt with given configuration.
// Every line opened during the attempt is closed before Boot returns.
func (s *Sequencer) Boot(cfg model.BootConfiguration) Result {
	result := Result{
		Configuration: cfg,
		Started:       time.Now(),
	}
	log := s.Log
	set, err := line.NewSet(s.Lines, s.Bridge)
	if err != nil {
		log.Error().Err(err).Msg("Invalid GPIO configuration, will not boot")
		result.Outcome = result.Outcome.Merge(err)
		result.Stage = StageFailed
		result.Duration = time.Since(result.Started)
		return result
	}

	if cfg.DebugMode {
		log.Info().Msg("Enabling debug mode; not booting host")
		result.Outcome = s.debugShortcut(set)
		if result.Outcome.Failed() {
			log.Error().Str("outcome", result.Outcome.String()).Msg("Enabling debug mode failed")
		}
		result.Reached = StageDebugShortcut
		result.Stage = StageDebugShortcut
		result.Duration = time.Since(result.Started)
		return result
	}

	log.Info().Str("flash-side", string(cfg.FlashSide)).Msg("Booting host")
	a := &attempt{
		Sequencer: s,
		log:       log,
		set:       set,
	}
	a.run(cfg)

	// Closed
	if err := set.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close GPIO lines")
	}
	if a.outcome.Failed() {
		log.Error().
			Str("stage", a.stage.String()).
			Int("rc", a.outcome.Code()).
			Err(a.outcome.Err()).
			Msg("GPIO sequence failed")
	}
	result.Outcome = a.outcome
	result.Reached = a.stage
	result.Stage = StageClosed
	result.Booted = true
	result.Duration = time.Since(result.Started)
	observeResult(result)
	return result
}

// debugShortcut holds the host in reset for external debug tooling.
func (s *Sequencer) debugShortcut(set *line.Set) Outcome {
	defer func() {
		if err := set.Close(); err != nil {
			s.Log.Warn().Err(err).Msg("Failed to close GPIO lines")
		}
	}()
	var o Outcome
	o = o.Merge(set.Open(set.Enable))
	o = o.Merge(set.Open(set.SideSelect))
	o = o.Merge(set.Enable.Write(true))
	o = o.Merge(set.SideSelect.Write(false))
	debugModeTotal.Inc()
	return o
}

// attempt holds the state of a single boot attempt.
type attempt struct {
	*Sequencer
	log     zerolog.Logger
	set     *line.Set
	outcome Outcome
	stage   Stage
}

func (a *attempt) enter(stage Stage) {
	a.stage = stage
	a.log.Debug().Str("stage", stage.String()).Msg("Entering stage")
}

func (a *attempt) merge(err error) {
	if err != nil {
		a.log.Debug().Err(err).Str("stage", a.stage.String()).Msg("Operation failed")
	}
	a.outcome = a.outcome.Merge(err)
}

// checkpoint returns true when the remaining stages must be skipped.
func (a *attempt) checkpoint() bool {
	return a.outcome.Failed()
}

func (a *attempt) standby() error {
	return fsi.Standby(a.set.Data, a.set.Clock)
}

// run all stages from Opening up to and including Settling.
func (a *attempt) run(cfg model.BootConfiguration) {
	set := a.set
	data, clk := set.Data, set.Clock

	a.enter(StageOpening)
	a.merge(set.Open(clk))
	a.merge(set.Open(data))
	a.merge(set.Open(set.Enable))
	a.merge(set.Open(set.SideSelect))
	for _, o := range set.Optionals {
		a.merge(set.Open(o.Line))
	}
	if a.checkpoint() {
		return
	}

	a.enter(StageConfiguring)
	a.merge(set.SideSelect.Write(true))
	a.merge(set.Enable.Write(true))
	a.merge(clk.Write(true))
	for _, o := range set.Optionals {
		a.merge(o.Write(o.Polarity))
	}
	if a.checkpoint() {
		return
	}

	a.enter(StageStandbyInit)
	a.merge(a.standby())

	a.enter(StageClearingPipes)
	a.merge(data.Write(false))
	a.merge(clk.ClockPulse(clearPipesLowCycles))
	a.merge(data.Write(true))
	a.merge(clk.ClockPulse(clearPipesHighCycles))
	if a.checkpoint() {
		return
	}

	a.enter(StageArmingAttentions)
	for _, w := range model.AttentionWrites() {
		a.putRegister(w, a.RegisterTransport)
		a.merge(a.standby())
	}
	if a.checkpoint() {
		return
	}

	a.enter(StageSelectingFlashSide)
	a.log.Info().Msgf("Using %s side of the bios flash", cfg.FlashSide)
	if w, ok := model.FlashSideWrite(cfg.FlashSide); ok {
		a.putRegister(w, a.RegisterTransport)
	} else {
		a.log.Error().Str("flash-side", string(cfg.FlashSide)).Msg("Invalid flash side")
		a.merge(errors.Wrapf(ErrInvalidFlashSide, "'%s'", cfg.FlashSide))
	}
	a.merge(a.standby())
	if a.checkpoint() {
		return
	}

	a.enter(StageTriggering)
	a.putRegister(model.GoWrite, RegisterTransportHelper)
	a.merge(fsi.Transmit(data, clk, fsi.Go()))

	a.enter(StageSettling)
	a.merge(data.Write(true))
	a.merge(clk.ClockPulse(settleDataCycles))
	// Hold clock low for the clock mux
	a.merge(clk.Write(false))
	a.merge(set.Enable.Write(false))
	a.merge(clk.ClockPulse(settleMuxCycles))
	a.merge(clk.Write(false))
}

// putRegister writes a register using the given transport.
func (a *attempt) putRegister(w model.RegisterWrite, transport RegisterTransport) {
	if transport == RegisterTransportFSI {
		if p, ok := fsi.PatternFor(w); ok {
			a.merge(fsi.Transmit(a.set.Data, a.set.Clock, p))
			return
		}
	}
	if err := a.Registers.PutCFAM(w); err != nil {
		a.log.Error().Err(err).Str("write", w.String()).Msg("Register write failed")
		registerWriteFailuresTotal.WithLabelValues(string(a.HelperPolicy)).Inc()
		if a.HelperPolicy == HelperPolicyStrict {
			a.merge(err)
		}
	}
}
