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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openbmc/hostctl/pkg/metrics"
)

const (
	subSystem = "sequencer"
)

var (
	// Total number of completed boot attempts per result
	bootAttemptsTotal = metrics.MustRegisterCounterVec(subSystem,
		"boot_attempts_total",
		"Total number of completed boot attempts per result",
		"result")
	// Total number of failed boot attempts per stage reached
	bootFailuresTotal = metrics.MustRegisterCounterVec(subSystem,
		"boot_failures_total",
		"Total number of failed boot attempts per stage reached",
		"stage")
	// Total number of times debug mode was entered
	debugModeTotal = metrics.MustRegisterCounter(subSystem,
		"debug_mode_total",
		"Total number of times debug mode was entered")
	// Total number of failed register writes per helper policy
	registerWriteFailuresTotal = metrics.MustRegisterCounterVec(subSystem,
		"register_write_failures_total",
		"Total number of failed register writes per helper policy",
		"policy")
	// Duration of boot attempts
	bootDuration = metrics.MustRegisterHistogram(subSystem,
		"boot_duration_seconds",
		"Duration of boot attempts",
		prometheus.ExponentialBuckets(0.05, 2, 12))
)

func observeResult(r Result) {
	bootDuration.Observe(r.Duration.Seconds())
	if r.Outcome.Failed() {
		bootAttemptsTotal.WithLabelValues("failed").Inc()
		bootFailuresTotal.WithLabelValues(r.Reached.String()).Inc()
	} else {
		bootAttemptsTotal.WithLabelValues("success").Inc()
	}
}
