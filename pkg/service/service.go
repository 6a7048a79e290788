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

package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/service/sequencer"
)

var (
	// ErrShuttingDown is returned by Boot once the service is stopping.
	ErrShuttingDown = errors.New("service is shutting down")
)

// Sequencer runs a single boot attempt.
type Sequencer interface {
	Boot(model.BootConfiguration) sequencer.Result
}

type Config struct {
	// Boot configuration the service starts with
	Initial model.BootConfiguration
}

type Dependencies struct {
	Logger    zerolog.Logger
	Sequencer Sequencer
	// Semaphore used to guard from running multiple boot attempts
	// concurrently. Defaults to a fresh semaphore of weight 1.
	BootSem *semaphore.Weighted
}

// Service owns the boot configuration and schedules boot attempts.
type Service struct {
	Config
	Dependencies

	mutex    sync.Mutex
	conf     model.BootConfiguration
	running  bool
	pending  int
	attempts int
	last     *model.AttemptSummary
	shutdown bool
	active   sync.WaitGroup
	booted   bootedSubscribers
	// Held while delivering booted events, taken before the boot
	// semaphore is released.
	deliverMutex sync.Mutex
}

// NewService creates a Service instance and returns it.
func NewService(conf Config, deps Dependencies) (*Service, error) {
	if deps.Sequencer == nil {
		return nil, errors.Wrap(model.ValidationError, "sequencer missing")
	}
	if conf.Initial.FlashSide == "" {
		conf.Initial.FlashSide = model.DefaultFlashSide
	}
	if deps.BootSem == nil {
		deps.BootSem = semaphore.NewWeighted(1)
	}
	deps.Logger = deps.Logger.With().Str("component", "service").Logger()
	return &Service{
		Config:       conf,
		Dependencies: deps,
		conf:         conf.Initial,
	}, nil
}

// Run the service until the given context is cancelled.
// On return, all acknowledged boot attempts have completed.
func (s *Service) Run(ctx context.Context) error {
	log := s.Logger
	cfg := s.GetConfiguration(ctx)
	log.Info().
		Bool("debug-mode", cfg.DebugMode).
		Str("flash-side", string(cfg.FlashSide)).
		Msg("Host control ready")

	<-ctx.Done()

	s.mutex.Lock()
	s.shutdown = true
	s.mutex.Unlock()
	log.Debug().Msg("Waiting for boot attempts to finish")
	s.active.Wait()
	log.Info().Msg("Host control stopped")
	return nil
}

// boot runs one acknowledged boot attempt.
// Booted events are delivered in attempt order, without holding
// up the next attempt.
func (s *Service) boot() {
	defer s.active.Done()
	// Attempts are never cancelled once acknowledged.
	if err := s.BootSem.Acquire(context.Background(), 1); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to acquire boot semaphore")
		return
	}
	summary, booted := s.attempt()

	s.deliverMutex.Lock()
	defer s.deliverMutex.Unlock()
	s.BootSem.Release(1)

	if booted {
		bootedEventsTotal.Inc()
		s.booted.publish(model.BootedEvent{AttemptSummary: summary})
	}
}

// attempt runs the sequencer once and records the result.
// The boot semaphore must be held.
func (s *Service) attempt() (model.AttemptSummary, bool) {
	// Read the configuration exactly once
	s.mutex.Lock()
	cfg := s.conf
	s.pending--
	s.running = true
	s.mutex.Unlock()
	bootPendingGauge.Dec()

	result := s.Sequencer.Boot(cfg)
	summary := summarize(result)

	s.mutex.Lock()
	s.running = false
	s.attempts++
	s.last = &summary
	s.mutex.Unlock()

	log := s.Logger.With().
		Str("stage", summary.Stage).
		Dur("duration", summary.Duration).
		Logger()
	if summary.Success {
		log.Info().Msg("Boot attempt completed")
	} else {
		log.Warn().Int("rc", summary.Code).Str("error", summary.Error).Msg("Boot attempt completed with failures")
	}
	return summary, result.Booted
}

func summarize(r sequencer.Result) model.AttemptSummary {
	summary := model.AttemptSummary{
		Started:       r.Started,
		Duration:      r.Duration,
		Configuration: r.Configuration,
		Booted:        r.Booted,
		Success:       !r.Outcome.Failed(),
		Code:          r.Outcome.Code(),
		Stage:         r.Reached.String(),
	}
	if r.Stage == sequencer.StageFailed || r.Stage == sequencer.StageDebugShortcut {
		summary.Stage = r.Stage.String()
	}
	if err := r.Outcome.Err(); err != nil {
		summary.Error = err.Error()
	}
	return summary
}
