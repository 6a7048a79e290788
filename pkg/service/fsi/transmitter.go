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

const (
	// StandbyCycles is the number of clock cycles data is held high
	// to let the target settle.
	StandbyCycles = 5000
)

// DataLine is the FSI data output.
type DataLine interface {
	Write(value bool) error
	WriteBit(bit byte) error
}

// ClockLine is the FSI clock output.
type ClockLine interface {
	ClockPulse(count int) error
}

// Transmit sends the given pattern, one symbol per clock cycle.
// It stops at the first failing operation and returns its error.
func Transmit(data DataLine, clk ClockLine, p Pattern) error {
	transmitTotal.WithLabelValues(p.Name()).Inc()
	for _, s := range p.symbols {
		if err := data.WriteBit(s.Char()); err != nil {
			transmitErrorTotal.WithLabelValues(p.Name()).Inc()
			return err
		}
		if err := clk.ClockPulse(1); err != nil {
			transmitErrorTotal.WithLabelValues(p.Name()).Inc()
			return err
		}
	}
	return nil
}

// Standby puts the link in its idle state: data high for StandbyCycles
// clock cycles.
func Standby(data DataLine, clk ClockLine) error {
	if err := data.Write(true); err != nil {
		return err
	}
	return clk.ClockPulse(StandbyCycles)
}
