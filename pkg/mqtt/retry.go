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

package mqtt

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	minRetryDelay = time.Millisecond * 10
	maxRetryDelay = time.Second * 5
)

// untilSucceeded calls the given callback until it succeeds.
// Returns the context error when the context is canceled first.
func untilSucceeded(ctx context.Context, log zerolog.Logger, description string, cb func() error) error {
	delay := minRetryDelay
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := cb()
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Dur("retry-in", delay).Msgf("%s failed", description)
		select {
		case <-ctx.Done():
			log.Info().Msgf("Stopping %s; context canceled", description)
			return ctx.Err()
		case <-time.After(delay):
			// Continue
		}
		delay = time.Duration(float64(delay) * 1.5)
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}
