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

	"github.com/pkg/errors"

	"github.com/openbmc/hostctl/model"
)

// API of the control surface, as exposed by the servers.
type API interface {
	// Acknowledge an initialization request. No side effects.
	Init(ctx context.Context) error
	// Schedule a boot attempt. Returns as soon as the attempt is accepted.
	Boot(ctx context.Context) error
	// Set the debug mode used by subsequent boot attempts
	SetDebugMode(ctx context.Context, enabled bool) error
	// Set the flash side used by subsequent boot attempts
	SetFlashSide(ctx context.Context, side model.FlashSide) error
	// Get the current boot configuration
	GetConfiguration(ctx context.Context) model.BootConfiguration
	// Get the current status
	Status(ctx context.Context) model.Status
	// Register a receiver of booted events
	SubscribeBooted(cb func(model.BootedEvent)) context.CancelFunc
}

var _ API = &Service{}

// Init acknowledges an initialization request.
func (s *Service) Init(ctx context.Context) error {
	requestsTotal.WithLabelValues("init").Inc()
	s.Logger.Info().Msg("Init requested")
	return nil
}

// Boot acknowledges the request and runs the attempt in the background.
// Attempts are serialized; queued attempts read the configuration
// when they start.
func (s *Service) Boot(ctx context.Context) error {
	requestsTotal.WithLabelValues("boot").Inc()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.shutdown {
		return errors.WithStack(ErrShuttingDown)
	}
	s.pending++
	bootPendingGauge.Inc()
	s.active.Add(1)
	go s.boot()
	s.Logger.Info().Int("pending", s.pending).Msg("Boot requested")
	return nil
}

// SetDebugMode sets the debug mode used by subsequent boot attempts.
func (s *Service) SetDebugMode(ctx context.Context, enabled bool) error {
	requestsTotal.WithLabelValues("set-debug-mode").Inc()
	s.mutex.Lock()
	s.conf.DebugMode = enabled
	s.mutex.Unlock()
	s.Logger.Info().Bool("debug-mode", enabled).Msg("Debug mode changed")
	return nil
}

// SetFlashSide sets the flash side used by subsequent boot attempts.
// The side is validated when an attempt starts.
func (s *Service) SetFlashSide(ctx context.Context, side model.FlashSide) error {
	requestsTotal.WithLabelValues("set-flash-side").Inc()
	s.mutex.Lock()
	s.conf.FlashSide = side
	s.mutex.Unlock()
	log := s.Logger.With().Str("flash-side", string(side)).Logger()
	if err := side.Validate(); err != nil {
		log.Warn().Msg("Unknown flash side; boot attempts will fail")
	} else {
		log.Info().Msg("Flash side changed")
	}
	return nil
}

// GetConfiguration returns the current boot configuration.
func (s *Service) GetConfiguration(ctx context.Context) model.BootConfiguration {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.conf
}

// Status returns the current status.
func (s *Service) Status(ctx context.Context) model.Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	result := model.Status{
		Configuration: s.conf,
		Running:       s.running,
		Pending:       s.pending,
		Attempts:      s.attempts,
	}
	if s.last != nil {
		last := *s.last
		result.Last = &last
	}
	return result
}

// SubscribeBooted registers a receiver of booted events.
// Receivers are called on the attempt goroutine, one event at a time,
// so they must not block for long.
// Call the returned function to unsubscribe.
func (s *Service) SubscribeBooted(cb func(model.BootedEvent)) context.CancelFunc {
	return s.booted.add(cb)
}
