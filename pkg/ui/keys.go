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

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Boot      key.Binding
	DebugMode key.Binding
	FlashSide key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Boot: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "boot host"),
		),
		DebugMode: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle debug mode"),
		),
		FlashSide: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle flash side"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "disconnect"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Boot, k.DebugMode, k.FlashSide, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
