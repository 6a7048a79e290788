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
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/service/bridge"
)

// Optional is a line that is driven to a fixed polarity during bring-up.
type Optional struct {
	*Line
	Polarity bool
}

// Set holds all lines used during a single boot attempt.
// It remembers which lines it opened and closes exactly those.
type Set struct {
	Clock      *Line
	Data       *Line
	Enable     *Line
	SideSelect *Line
	Optionals  []Optional

	opened []*Line
}

// NewSet builds a closed line set from the given configuration.
func NewSet(conf model.LineConfiguration, api bridge.API) (*Set, error) {
	get := func(name string) (*Line, error) {
		pin, err := conf.Get(name)
		if err != nil {
			return nil, errors.Wrap(model.ValidationError, err.Error())
		}
		return New(name, pin, api), nil
	}
	s := &Set{}
	var err error
	if s.Clock, err = get(model.LineNameClock); err != nil {
		return nil, err
	}
	if s.Data, err = get(model.LineNameData); err != nil {
		return nil, err
	}
	if s.Enable, err = get(model.LineNameEnable); err != nil {
		return nil, err
	}
	if s.SideSelect, err = get(model.LineNameSideSelect); err != nil {
		return nil, err
	}
	for _, o := range conf.Optionals {
		s.Optionals = append(s.Optionals, Optional{
			Line:     New(o.Name, o.Pin, api),
			Polarity: o.Polarity,
		})
	}
	return s, nil
}

// Open the given line and remember it for Close.
func (s *Set) Open(l *Line) error {
	if l.IsOpen() {
		return nil
	}
	if err := l.Open(); err != nil {
		return err
	}
	s.opened = append(s.opened, l)
	return nil
}

// Opened returns the number of lines opened by this set that are still open.
func (s *Set) Opened() int {
	result := 0
	for _, l := range s.opened {
		if l.IsOpen() {
			result++
		}
	}
	return result
}

// Close all lines opened through this set, in reverse order.
// All lines are closed, even when some of them fail.
func (s *Set) Close() error {
	var ae aerr.AggregateError
	for i := len(s.opened) - 1; i >= 0; i-- {
		ae.Add(s.opened[i].Close())
	}
	s.opened = nil
	return ae.AsError()
}
