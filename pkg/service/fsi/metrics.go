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
	"github.com/openbmc/hostctl/pkg/metrics"
)

const (
	subSystem = "fsi"
)

var (
	// Total number of pattern transmissions per pattern
	transmitTotal = metrics.MustRegisterCounterVec(subSystem,
		"transmit_total",
		"Total number of pattern transmissions",
		"pattern")
	// Total number of failed pattern transmissions per pattern
	transmitErrorTotal = metrics.MustRegisterCounterVec(subSystem,
		"transmit_error_total",
		"Total number of failed pattern transmissions",
		"pattern")
)
