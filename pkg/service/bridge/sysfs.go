//    Copyright 2026 The hostctl Authors
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.


package bridge

import (
	"io"
	"sync"

	"github.com/ecc1/gpio"
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
)

type sysfsBridge struct {
	mutex sync.Mutex
	pins  map[int]gpio.OutputPin
}

// NewSysfsBridge implements the bridge for boards that expose
// their GPIO controller through /sys/class/gpio.
func NewSysfsBridge() (API, error) {
	return &sysfsBridge{
		pins: make(map[int]gpio.OutputPin),
	}, nil
}

// Name of the bridge type
func (b *sysfsBridge) Name() string {
	return TypeSysfs
}

// Output initializes a GPIO output pin with the given pin number.
// Exported pins are kept by the bridge, so repeated boot attempts
// do not re-export them and do not change their level.
func (b *sysfsBridge) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	outputCounters.WithLabelValues(TypeSysfs).Inc()
	p, found := b.pins[pinNumber]
	if !found {
		var err error
		p, err = gpio.Output(pinNumber, activeLow, initialValue)
		if err != nil {
			outputErrorCounters.WithLabelValues(TypeSysfs).Inc()
			return nil, errors.Wrapf(err, "Output[%d] failed", pinNumber)
		}
		b.pins[pinNumber] = p
	}
	return &sysfsPin{pin: p}, nil
}

// Close releases all exported pins.
func (b *sysfsBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var ae aerr.AggregateError
	for nr, p := range b.pins {
		if c, ok := p.(io.Closer); ok {
			ae.Add(errors.Wrapf(c.Close(), "Close[%d] failed", nr))
		}
	}
	b.pins = make(map[int]gpio.OutputPin)
	return ae.AsError()
}

// sysfsPin is a handle to a pin owned by the sysfs bridge.
type sysfsPin struct {
	mutex  sync.Mutex
	pin    gpio.OutputPin
	closed bool
}

// Write the given logical value to the pin.
func (p *sysfsPin) Write(value bool) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return errors.Wrap(ErrPinClosed, "Write failed")
	}
	return p.pin.Write(value)
}

// Close releases the handle. The underlying pin stays exported.
func (p *sysfsPin) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.closed = true
	return nil
}
