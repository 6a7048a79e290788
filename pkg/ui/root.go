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
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/service"
)

const (
	refreshInterval = time.Second
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	logStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true)
)

// LogSource provides recent log lines.
type LogSource interface {
	Lines() []string
}

// Root is the top level model of the terminal UI.
type Root struct {
	svc    service.API
	logs   LogSource
	keys   keyMap
	help   help.Model
	width  int
	height int

	status  model.Status
	message string
	logView viewport.Model
}

var _ tea.Model = Root{}

// NewRoot creates the top level model.
func NewRoot(svc service.API, logs LogSource, width, height int) Root {
	r := Root{
		svc:    svc,
		logs:   logs,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	r.logView = viewport.New(width, r.logHeight())
	return r.refresh()
}

type refreshMsg time.Time

func doRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Init is the first function that will be called.
func (r Root) Init() tea.Cmd {
	return doRefresh()
}

// Update is called when a message is received.
func (r Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg := msg.(type) {
	case refreshMsg:
		return r.refresh(), doRefresh()
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.logView.Width = msg.Width
		r.logView.Height = r.logHeight()
		return r.refresh(), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.Quit):
			return r, tea.Quit
		case key.Matches(msg, r.keys.Boot):
			r.message = resultMessage("Boot requested", r.svc.Boot(ctx))
		case key.Matches(msg, r.keys.DebugMode):
			enabled := !r.status.Configuration.DebugMode
			r.message = resultMessage(fmt.Sprintf("Debug mode set to %v", enabled), r.svc.SetDebugMode(ctx, enabled))
		case key.Matches(msg, r.keys.FlashSide):
			side := model.FlashSideGolden
			if r.status.Configuration.FlashSide == model.FlashSideGolden {
				side = model.FlashSidePrimary
			}
			r.message = resultMessage(fmt.Sprintf("Flash side set to %s", side), r.svc.SetFlashSide(ctx, side))
		}
		return r.refresh(), nil
	}

	var cmd tea.Cmd
	r.logView, cmd = r.logView.Update(msg)
	return r, cmd
}

func resultMessage(msg string, err error) string {
	if err != nil {
		return failStyle.Render(err.Error())
	}
	return msg
}

// refresh the status and the log view.
func (r Root) refresh() Root {
	r.status = r.svc.Status(context.Background())
	if r.logs != nil {
		r.logView.SetContent(strings.Join(r.logs.Lines(), "\n"))
		r.logView.GotoBottom()
	}
	return r
}

// View renders the UI.
func (r Root) View() string {
	parts := []string{
		r.headerView(),
		r.statusView(),
	}
	if r.message != "" {
		parts = append(parts, r.message)
	}
	parts = append(parts, logStyle.Render(r.logView.View()), r.help.View(r.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r Root) headerView() string {
	return titleStyle.Render("Host control")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func (r Root) statusView() string {
	st := r.status
	state := "idle"
	if st.Running {
		state = "booting"
	}
	if st.Pending > 0 {
		state += fmt.Sprintf(" (%d queued)", st.Pending)
	}
	rows := []string{
		row("Debug mode", fmt.Sprintf("%v", st.Configuration.DebugMode)),
		row("Flash side", string(st.Configuration.FlashSide)),
		row("State", state),
		row("Attempts", humanize.Comma(int64(st.Attempts))),
	}
	if last := st.Last; last != nil {
		result := okStyle.Render("ok")
		if !last.Success {
			result = failStyle.Render(fmt.Sprintf("failed (rc=%d) at %s", last.Code, last.Stage))
		}
		rows = append(rows,
			row("Last boot", fmt.Sprintf("%s, took %s", humanize.Time(last.Started), last.Duration.Round(time.Millisecond))),
			row("Last result", result),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// logHeight returns the number of lines available for logs.
func (r Root) logHeight() int {
	h := r.height - 12
	if h < 3 {
		h = 3
	}
	return h
}
