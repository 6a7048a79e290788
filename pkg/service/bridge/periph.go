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

package bridge

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	// ErrUnknownPin is returned when the GPIO driver does not know the pin.
	ErrUnknownPin = errors.New("unknown pin")
)

type periphBridge struct {
	mutex  sync.Mutex
	levels map[int]bool
}

// NewPeriphBridge initializes the periph.io host drivers and
// implements the bridge on top of them.
func NewPeriphBridge() (API, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host initialization failed")
	}
	return &periphBridge{levels: make(map[int]bool)}, nil
}

// Name of the bridge type
func (b *periphBridge) Name() string {
	return TypePeriph
}

// Output initializes a GPIO output pin with the given pin number.
// Pins set up before are driven to their last written level.
func (b *periphBridge) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	outputCounters.WithLabelValues(TypePeriph).Inc()
	name := fmt.Sprintf("GPIO%d", pinNumber)
	p := gpioreg.ByName(name)
	if p == nil {
		outputErrorCounters.WithLabelValues(TypePeriph).Inc()
		return nil, errors.Wrapf(ErrUnknownPin, "Output[%d] failed", pinNumber)
	}
	result := &periphPin{
		bridge:    b,
		number:    pinNumber,
		pin:       p,
		activeLow: activeLow,
	}
	value, found := b.levels[pinNumber]
	if !found {
		value = initialValue
	}
	if err := result.write(value); err != nil {
		outputErrorCounters.WithLabelValues(TypePeriph).Inc()
		return nil, errors.Wrapf(err, "Output[%d] failed", pinNumber)
	}
	return result, nil
}

// Close the bridge.
func (b *periphBridge) Close() error {
	return nil
}

type periphPin struct {
	mutex     sync.Mutex
	bridge    *periphBridge
	number    int
	pin       gpio.PinIO
	activeLow bool
	closed    bool
}

// level converts a logical value to the electrical level.
func level(value, activeLow bool) gpio.Level {
	return gpio.Level(value != activeLow)
}

// Write the given logical value to the pin.
func (p *periphPin) Write(value bool) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return errors.Wrapf(ErrPinClosed, "pin %s", p.pin.Name())
	}
	p.bridge.mutex.Lock()
	defer p.bridge.mutex.Unlock()
	return p.write(value)
}

// write drives the pin and remembers its level.
// The bridge mutex must be held.
func (p *periphPin) write(value bool) error {
	if err := p.pin.Out(level(value, p.activeLow)); err != nil {
		return err
	}
	p.bridge.levels[p.number] = value
	return nil
}

// Close the pin, releasing it to the driver.
func (p *periphPin) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.pin.Halt()
}
