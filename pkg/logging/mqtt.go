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
	"context"
	"io"
	"sync"
	"time"
)

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// MQTTWriter forwards log lines to an MQTT topic.
type MQTTWriter interface {
	io.Writer
	Enable(enable bool)
	SetDestination(topic string, publisher Publisher)
}

type mqttLogger struct {
	mutex     sync.Mutex
	queue     chan []byte
	topic     string
	publisher Publisher
	enable    bool
}

const (
	mqttQueueSize = 512
)

// NewMQTTWriter creates a new MQTT output for logs.
// The MQTT sender is closed when the given context is canceled.
func NewMQTTWriter(ctx context.Context) MQTTWriter {
	l := &mqttLogger{
		queue: make(chan []byte, mqttQueueSize),
	}
	go l.run(ctx)
	return l
}

// Write queues a copy of the given line.
// When the queue is full, the oldest lines are dropped.
func (l *mqttLogger) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	msg := append([]byte(nil), p...)
	for attempt := 0; attempt < 10; attempt++ {
		select {
		case l.queue <- msg:
			return len(p), nil
		default:
			// Queue full; Take 1 out and try again
			select {
			case <-l.queue:
			default:
			}
		}
	}
	// Ignore errors
	return len(p), nil
}

func (l *mqttLogger) Enable(enable bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.enable = enable
}

func (l *mqttLogger) SetDestination(topic string, publisher Publisher) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.topic = topic
	l.publisher = publisher
}

type logMsg struct {
	Message string `json:"message"`
}

func (l *mqttLogger) run(ctx context.Context) {
	for {
		l.mutex.Lock()
		publisher := l.publisher
		topic := l.topic
		enabled := l.enable
		l.mutex.Unlock()

		if enabled && topic != "" && publisher != nil {
			select {
			case msg := <-l.queue:
				// Errors are not logged, since that would feed back into this writer.
				publisher.Publish(ctx, topic, logMsg{Message: string(msg)})
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
				// Recheck destination
			}
		} else {
			select {
			case <-time.After(time.Second):
				// Continue
			case <-ctx.Done():
				return
			}
		}
	}
}
