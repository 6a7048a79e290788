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

package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/openbmc/hostctl/model"
)

type fakeService struct {
	conf  model.BootConfiguration
	boots int
	last  *model.AttemptSummary
}

func (f *fakeService) Init(context.Context) error { return nil }
func (f *fakeService) Boot(context.Context) error {
	f.boots++
	return nil
}
func (f *fakeService) SetDebugMode(_ context.Context, enabled bool) error {
	f.conf.DebugMode = enabled
	return nil
}
func (f *fakeService) SetFlashSide(_ context.Context, side model.FlashSide) error {
	f.conf.FlashSide = side
	return nil
}
func (f *fakeService) GetConfiguration(context.Context) model.BootConfiguration { return f.conf }
func (f *fakeService) Status(context.Context) model.Status {
	return model.Status{Configuration: f.conf, Attempts: f.boots, Last: f.last}
}
func (f *fakeService) SubscribeBooted(func(model.BootedEvent)) context.CancelFunc {
	return func() {}
}

type fakeLogs []string

func (f fakeLogs) Lines() []string { return f }

func press(m tea.Model, k string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return m
}

func TestRootKeys(t *testing.T) {
	svc := &fakeService{conf: model.DefaultBootConfiguration()}
	var m tea.Model = NewRoot(svc, fakeLogs{"line one", "line two"}, 80, 40)

	m = press(m, "b")
	assert.Equal(t, 1, svc.boots)
	assert.Contains(t, m.View(), "Boot requested")

	m = press(m, "d")
	assert.True(t, svc.conf.DebugMode)
	m = press(m, "d")
	assert.False(t, svc.conf.DebugMode)

	m = press(m, "f")
	assert.Equal(t, model.FlashSideGolden, svc.conf.FlashSide)
	m = press(m, "f")
	assert.Equal(t, model.FlashSidePrimary, svc.conf.FlashSide)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if assert.NotNil(t, cmd) {
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestRootView(t *testing.T) {
	svc := &fakeService{
		conf: model.DefaultBootConfiguration(),
		last: &model.AttemptSummary{
			Started:  time.Now().Add(-time.Minute),
			Duration: time.Second * 3,
			Code:     0xff,
			Stage:    "selecting-flash-side",
		},
	}
	r := NewRoot(svc, fakeLogs{"Using golden side of the bios flash"}, 100, 40)
	view := r.View()
	assert.Contains(t, view, "Host control")
	assert.Contains(t, view, "primary")
	assert.Contains(t, view, "rc=255")
	assert.Contains(t, view, "selecting-flash-side")
	assert.Contains(t, view, "1 minute ago")
	assert.Contains(t, view, "Using golden side of the bios flash")
}
