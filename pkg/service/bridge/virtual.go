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
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrPinClosed is returned when writing to a closed pin.
	ErrPinClosed = errors.New("pin closed")
)

// OpKind identifies the kind of operation performed on a virtual pin.
type OpKind string

const (
	OpOpen  OpKind = "open"
	OpWrite OpKind = "write"
	OpClose OpKind = "close"
)

// Op is a single operation performed on a virtual pin.
type Op struct {
	Kind  OpKind
	Pin   int
	Value bool
}

// Virtual is a bridge that does not touch any hardware.
// It keeps the level of every pin and optionally records all operations.
type Virtual struct {
	mutex  sync.Mutex
	record bool
	ops    []Op
	levels map[int]bool
	open   map[int]int
	writes int
	failOn func(Op) error
}

var _ API = &Virtual{}

// NewVirtualBridge implements the bridge for running without hardware.
// When record is set, all operations are kept and available through Ops.
func NewVirtualBridge(record bool) *Virtual {
	return &Virtual{
		record: record,
		levels: make(map[int]bool),
		open:   make(map[int]int),
	}
}

// FailWhen installs a callback that is invoked before every operation.
// When it returns an error, the operation fails with that error.
func (v *Virtual) FailWhen(cb func(Op) error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.failOn = cb
}

// Name of the bridge type
func (v *Virtual) Name() string {
	return TypeVirtual
}

// Output initializes a GPIO output pin with the given pin number.
// The recorded open operation carries the level of the pin after opening.
func (v *Virtual) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	outputCounters.WithLabelValues(TypeVirtual).Inc()
	if err := v.apply(Op{Kind: OpOpen, Pin: pinNumber, Value: initialValue}); err != nil {
		outputErrorCounters.WithLabelValues(TypeVirtual).Inc()
		return nil, err
	}
	return &virtualPin{bridge: v, pin: pinNumber}, nil
}

// Close the bridge.
func (v *Virtual) Close() error {
	return nil
}

// Ops returns a copy of all recorded operations.
func (v *Virtual) Ops() []Op {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return append([]Op(nil), v.ops...)
}

// Level returns the logical level last written to the given pin.
func (v *Virtual) Level(pin int) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.levels[pin]
}

// OpenPins returns the number of currently open handles.
func (v *Virtual) OpenPins() int {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	result := 0
	for _, n := range v.open {
		result += n
	}
	return result
}

// Writes returns the total number of successful writes.
func (v *Virtual) Writes() int {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.writes
}

// Reset clears recorded operations and counters.
func (v *Virtual) Reset() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.ops = nil
	v.writes = 0
}

func (v *Virtual) apply(op Op) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if op.Kind == OpOpen {
		if lvl, found := v.levels[op.Pin]; found {
			op.Value = lvl
		}
	}
	if cb := v.failOn; cb != nil {
		if err := cb(op); err != nil {
			return err
		}
	}
	switch op.Kind {
	case OpOpen:
		v.open[op.Pin]++
		v.levels[op.Pin] = op.Value
	case OpWrite:
		v.levels[op.Pin] = op.Value
		v.writes++
	case OpClose:
		v.open[op.Pin]--
	}
	if v.record {
		v.ops = append(v.ops, op)
	}
	return nil
}

type virtualPin struct {
	bridge *Virtual
	pin    int
	closed bool
}

// Write the given logical value to the pin.
func (p *virtualPin) Write(value bool) error {
	if p.closed {
		return errors.Wrapf(ErrPinClosed, "pin %d", p.pin)
	}
	return p.bridge.apply(Op{Kind: OpWrite, Pin: p.pin, Value: value})
}

// Close the pin.
func (p *virtualPin) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.bridge.apply(Op{Kind: OpClose, Pin: p.pin})
}
