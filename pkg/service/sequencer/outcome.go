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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidFlashSide is the hard failure for an unknown flash side.
	ErrInvalidFlashSide = errors.New("invalid flash side")
)

const (
	// CodeOK is the code of a successful outcome.
	CodeOK = 0
	// CodeFailed is the code merged for an ordinary failure.
	CodeFailed = 0x01
	// CodeInvalidFlashSide is the code merged for an unknown flash side.
	CodeInvalidFlashSide = 0xff
)

// Outcome accumulates the results of the operations of a boot attempt.
// Once failed, an outcome stays failed.
type Outcome struct {
	code     int
	first    error
	failures int
}

// Merge returns the outcome combined with the given result.
// A nil error leaves the outcome unchanged.
func (o Outcome) Merge(err error) Outcome {
	if err == nil {
		return o
	}
	if o.first == nil {
		o.first = err
	}
	o.failures++
	if errors.Cause(err) == ErrInvalidFlashSide {
		o.code |= CodeInvalidFlashSide
	} else {
		o.code |= CodeFailed
	}
	return o
}

// Failed returns true when at least one failure has been merged.
func (o Outcome) Failed() bool { return o.code != CodeOK }

// IsHard returns true when an invalid flash side has been merged.
func (o Outcome) IsHard() bool { return o.code&CodeInvalidFlashSide == CodeInvalidFlashSide }

// Code returns the combined failure code.
func (o Outcome) Code() int { return o.code }

// Failures returns the number of failures merged.
func (o Outcome) Failures() int { return o.failures }

// Err returns the first failure, or nil when the outcome is successful.
func (o Outcome) Err() error { return o.first }

func (o Outcome) String() string {
	if !o.Failed() {
		return "ok"
	}
	return fmt.Sprintf("failed (rc=%d, %d failures): %s", o.code, o.failures, o.first)
}
