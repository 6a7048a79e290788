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
	"github.com/openbmc/hostctl/pkg/metrics"
)

const (
	subSystem = "service"
)

var (
	// Total number of control plane requests per method
	requestsTotal = metrics.MustRegisterCounterVec(subSystem,
		"requests_total",
		"Total number of control plane requests per method",
		"method")
	// Number of acknowledged boot requests waiting to run
	bootPendingGauge = metrics.MustRegisterGauge(subSystem,
		"boot_pending",
		"Number of acknowledged boot requests waiting to run")
	// Total number of booted events published
	bootedEventsTotal = metrics.MustRegisterCounter(subSystem,
		"booted_events_total",
		"Total number of booted events published")
)
