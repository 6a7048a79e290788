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


package line

import (
	"github.com/pkg/errors"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/service/bridge"
)

var (
	// ErrClosed is returned when a line is used while it is not open.
	ErrClosed = errors.New("line not open")
	// ErrInvalidBit is returned by WriteBit for characters other than '0' and '1'.
	ErrInvalidBit = errors.New("invalid bit")
)

// Line is a named GPIO output line.
type Line struct {
	name   string
	pin    model.Pin
	bridge bridge.API
	out    bridge.OutputPin
	level  bool
}

// New creates a closed line for the given pin.
func New(name string, pin model.Pin, api bridge.API) *Line {
	return &Line{
		name:   name,
		pin:    pin,
		bridge: api,
	}
}

// Name of the line
func (l *Line) Name() string { return l.name }

// Pin number of the line
func (l *Line) Pin() int { return l.pin.Pin }

// IsOpen returns true when the line has been opened and not yet closed.
func (l *Line) IsOpen() bool { return l.out != nil }

// Level returns the last level driven onto the line.
func (l *Line) Level() bool { return l.level }

// Open the line as an output.
// A pin opened for the first time starts low, a pin opened before
// keeps its level. Opening an open line is a no-op.
func (l *Line) Open() error {
	if l.out != nil {
		return nil
	}
	out, err := l.bridge.Output(l.pin.Pin, l.pin.ActiveLow, false)
	if err != nil {
		return errors.Wrapf(err, "Open '%s' failed", l.name)
	}
	l.out = out
	return nil
}

// Close the line. Closing a closed line is a no-op.
func (l *Line) Close() error {
	out := l.out
	if out == nil {
		return nil
	}
	l.out = nil
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "Close '%s' failed", l.name)
	}
	return nil
}

// Write drives the line to the given level.
func (l *Line) Write(value bool) error {
	if l.out == nil {
		return errors.Wrapf(ErrClosed, "Write '%s'", l.name)
	}
	if err := l.out.Write(value); err != nil {
		return errors.Wrapf(err, "Write '%s' failed", l.name)
	}
	l.level = value
	return nil
}

// WriteBit drives the line to the level given as '0' or '1'.
func (l *Line) WriteBit(bit byte) error {
	switch bit {
	case '0':
		return l.Write(false)
	case '1':
		return l.Write(true)
	default:
		return errors.Wrapf(ErrInvalidBit, "'%c' on '%s'", bit, l.name)
	}
}

// ClockPulse drives the line low then high, count times.
func (l *Line) ClockPulse(count int) error {
	if l.out == nil {
		return errors.Wrapf(ErrClosed, "ClockPulse '%s'", l.name)
	}
	for i := 0; i < count; i++ {
		if err := l.Write(false); err != nil {
			return err
		}
		if err := l.Write(true); err != nil {
			return err
		}
	}
	return nil
}
