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

package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	mqttapi "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/openbmc/hostctl/model"
)

const (
	// QosDefault is the quality of service used for all messages.
	QosDefault = byte(1)

	publishTimeout = time.Second * 5
)

// Config of the MQTT publisher.
type Config struct {
	// Address (host:port) of the MQTT broker
	BrokerAddress string
	// Client ID to connect with
	ClientID string
	// Prefix of all topics
	TopicPrefix string
}

// BootedSource provides booted events.
type BootedSource interface {
	SubscribeBooted(cb func(model.BootedEvent)) context.CancelFunc
}

// Publisher publishes booted events and log lines to an MQTT broker.
type Publisher struct {
	Config
	log    zerolog.Logger
	mutex  sync.Mutex
	client mqttapi.Client
}

// NewPublisher prepares a publisher. It does not connect yet.
func NewPublisher(conf Config, log zerolog.Logger) *Publisher {
	if conf.TopicPrefix == "" {
		conf.TopicPrefix = "hostctl"
	}
	if conf.ClientID == "" {
		conf.ClientID = "hostctl"
	}
	return &Publisher{
		Config: conf,
		log:    log.With().Str("component", "mqtt").Logger(),
	}
}

// BootedTopic returns the topic booted events are published on.
func (p *Publisher) BootedTopic() string {
	return p.topic("booted")
}

// LogTopic returns the topic log lines are published on.
func (p *Publisher) LogTopic() string {
	return p.topic("log")
}

func (p *Publisher) topic(name string) string {
	return strings.TrimSuffix(p.TopicPrefix, "/") + "/" + name
}

// connect to the broker.
func (p *Publisher) connect() error {
	opts := mqttapi.NewClientOptions().
		AddBroker("tcp://" + p.BrokerAddress).
		SetClientID(p.ClientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(c mqttapi.Client) {
		p.log.Debug().Msg("Connected to MQTT")
	})
	opts.SetConnectionLostHandler(func(c mqttapi.Client, err error) {
		p.log.Warn().Err(err).Msg("Lost connection to MQTT")
	})

	client := mqttapi.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error(), "failed to connect to mqtt")
	}
	p.mutex.Lock()
	p.client = client
	p.mutex.Unlock()
	return nil
}

// Publish the given payload as JSON on the given topic.
func (p *Publisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	p.mutex.Lock()
	client := p.client
	p.mutex.Unlock()
	if client == nil {
		return errors.New("not connected")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode payload")
	}
	token := client.Publish(topic, QosDefault, false, encoded)
	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		publishErrorsTotal.WithLabelValues(topic).Inc()
		return errors.Errorf("publish to '%s' timed out", topic)
	}
	if err := token.Error(); err != nil {
		publishErrorsTotal.WithLabelValues(topic).Inc()
		return errors.Wrapf(err, "publish to '%s' failed", topic)
	}
	publishTotal.WithLabelValues(topic).Inc()
	return nil
}

// Run connects to the broker and publishes all booted events of the
// given source, until the given context is canceled.
func (p *Publisher) Run(ctx context.Context, source BootedSource) error {
	log := p.log.With().Str("broker", p.BrokerAddress).Logger()
	if err := untilSucceeded(ctx, log, "Connect to MQTT", p.connect); err != nil {
		return err
	}
	log.Info().Str("topic", p.BootedTopic()).Msg("Publishing booted events")
	cancel := source.SubscribeBooted(func(evt model.BootedEvent) {
		if err := p.Publish(ctx, p.BootedTopic(), evt); err != nil {
			log.Warn().Err(err).Msg("Failed to publish booted event")
		}
	})
	defer cancel()

	<-ctx.Done()
	p.mutex.Lock()
	c := p.client
	p.client = nil
	p.mutex.Unlock()
	if c != nil {
		c.Disconnect(250)
	}
	return nil
}
