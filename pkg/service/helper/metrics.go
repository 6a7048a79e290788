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


package helper

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openbmc/hostctl/pkg/metrics"
)

const (
	subSystem = "helper"
)

var (
	// Total number of helper invocations per result
	helperInvocationsTotal = metrics.MustRegisterCounterVec(subSystem,
		"invocations_total",
		"Total number of helper invocations per result",
		"result")
	// Duration of helper invocations
	helperDuration = metrics.MustRegisterHistogram(subSystem,
		"duration_seconds",
		"Duration of helper invocations",
		prometheus.ExponentialBuckets(0.01, 2, 12))
	// Total number of register writes per result
	registerWritesTotal = metrics.MustRegisterCounterVec(subSystem,
		"register_writes_total",
		"Total number of register writes per result",
		"result")
)
