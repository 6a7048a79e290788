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
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/openbmc/hostctl/pkg/service"
)

// UI serves the terminal UI over SSH sessions.
type UI struct {
	svc  service.API
	logs LogSource
}

// New creates a terminal UI for the given service.
func New(svc service.API, logs LogSource) *UI {
	return &UI{
		svc:  svc,
		logs: logs,
	}
}

// Handler creates a model for the given SSH session.
func (u *UI) Handler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := s.Pty()
	root := NewRoot(u.svc, u.logs, pty.Window.Width, pty.Window.Height)
	return root, []tea.ProgramOption{tea.WithAltScreen()}
}
