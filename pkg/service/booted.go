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

package service

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/openbmc/hostctl/model"
)

// bootedSubscribers holds the receivers of booted events.
// Every subscription has its own id, so cancelling one leaves the others.
type bootedSubscribers struct {
	mutex  sync.Mutex
	nextID int
	subs   map[int]func(model.BootedEvent)
}

// add registers the given receiver and returns its cancel function.
func (b *bootedSubscribers) add(cb func(model.BootedEvent)) context.CancelFunc {
	b.mutex.Lock()
	id := b.nextID
	b.nextID++
	if b.subs == nil {
		b.subs = make(map[int]func(model.BootedEvent))
	}
	b.subs[id] = cb
	b.mutex.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mutex.Lock()
			delete(b.subs, id)
			b.mutex.Unlock()
		})
	}
}

// publish delivers the event to all receivers, in subscription order,
// on the calling goroutine. Returns the number of receivers.
func (b *bootedSubscribers) publish(evt model.BootedEvent) int {
	b.mutex.Lock()
	ids := lo.Keys(b.subs)
	sort.Ints(ids)
	receivers := make([]func(model.BootedEvent), 0, len(ids))
	for _, id := range ids {
		receivers = append(receivers, b.subs[id])
	}
	b.mutex.Unlock()

	for _, cb := range receivers {
		cb(evt)
	}
	return len(receivers)
}
