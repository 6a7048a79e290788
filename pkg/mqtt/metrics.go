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
	"github.com/openbmc/hostctl/pkg/metrics"
)

const (
	subSystem = "mqtt"
)

var (
	// Total number of published messages per topic
	publishTotal = metrics.MustRegisterCounterVec(subSystem,
		"publish_total",
		"Total number of published messages per topic",
		"topic")
	// Total number of failed publications per topic
	publishErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"publish_errors_total",
		"Total number of failed publications per topic",
		"topic")
)
