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

package logging

import (
	"bytes"
	"sync"
)

const (
	// DefaultRingSize is the default number of lines kept by a Ring.
	DefaultRingSize = 256
)

// Ring is a writer that keeps the most recent log lines.
type Ring struct {
	mutex   sync.Mutex
	lines   []string
	next    int
	full    bool
	partial []byte
}

// NewRing creates a ring that keeps the given number of lines.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{
		lines: make([]string, size),
	}
}

// Write adds all complete lines in p to the ring.
func (r *Ring) Write(p []byte) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data := append(r.partial, p...)
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		r.add(string(data[:idx]))
		data = data[idx+1:]
	}
	r.partial = append([]byte(nil), data...)
	return len(p), nil
}

func (r *Ring) add(line string) {
	r.lines[r.next] = line
	r.next++
	if r.next == len(r.lines) {
		r.next = 0
		r.full = true
	}
}

// Lines returns the kept lines, oldest first.
func (r *Ring) Lines() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.full {
		return append([]string(nil), r.lines[:r.next]...)
	}
	result := make([]string, 0, len(r.lines))
	result = append(result, r.lines[r.next:]...)
	return append(result, r.lines[:r.next]...)
}
