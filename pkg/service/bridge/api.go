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

// API of the bridge, the GPIO controller that the host control lines
// (FSI clock, data, enable, side-select and optionals) are connected to.
type API interface {
	// Name of the bridge type
	Name() string
	// Output initializes a GPIO output pin with the given pin number.
	// The initial logical value is driven only when the pin is set up
	// for the first time. A pin that was set up before keeps its level.
	Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error)
	// Close releases all resources of the bridge.
	Close() error
}

// OutputPin is the interface satisfied by GPIO output pins.
type OutputPin interface {
	// Write the given logical value to the pin.
	Write(bool) error
	// Close releases the pin. The pin must not be written after close.
	Close() error
}

const (
	// TypeSysfs is the bridge type using the Linux sysfs GPIO interface.
	TypeSysfs = "sysfs"
	// TypePeriph is the bridge type using the periph.io host drivers.
	TypePeriph = "periph"
	// TypeVirtual is the bridge type that does not touch any hardware.
	TypeVirtual = "virtual"
)
