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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/environment"
	"github.com/openbmc/hostctl/pkg/logging"
	"github.com/openbmc/hostctl/pkg/mqtt"
	"github.com/openbmc/hostctl/pkg/server"
	"github.com/openbmc/hostctl/pkg/service"
	"github.com/openbmc/hostctl/pkg/service/bridge"
	"github.com/openbmc/hostctl/pkg/service/helper"
	"github.com/openbmc/hostctl/pkg/service/sequencer"
	"github.com/openbmc/hostctl/pkg/ui"
)

const (
	projectName     = "OpenBMC Host Control"
	defaultHTTPPort = 7129
	defaultGRPCPort = 7130
	defaultSSHPort  = 7122
	defaultLines    = "/etc/hostctl/lines.yaml"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
	maskAny        = errors.WithStack
)

func main() {
	var levelFlag string
	var bridgeType string
	var linesPath string
	var serverHost string
	var httpPort, grpcPort, sshPort int
	var helperConf = helper.DefaultConfig()
	var helperPolicy string
	var registerTransport string
	var mqttBroker, mqttTopic string
	var debugMode bool
	var flashSide string
	var serverAddress string

	pflag.StringVarP(&levelFlag, "level", "l", "info", "Set log level")
	pflag.StringVarP(&bridgeType, "bridge", "b", "", "Type of GPIO bridge to use (sysfs|periph|virtual), auto-detected when empty")
	pflag.StringVar(&linesPath, "lines", defaultLines, "Path of the GPIO line configuration file (YAML)")
	pflag.StringVar(&serverHost, "host", "0.0.0.0", "Host address the servers will listen on")
	pflag.IntVar(&httpPort, "http-port", defaultHTTPPort, "Port the HTTP server will listen on")
	pflag.IntVar(&grpcPort, "grpc-port", defaultGRPCPort, "Port the GRPC server will listen on")
	pflag.IntVar(&sshPort, "ssh-port", defaultSSHPort, "Port the SSH server will listen on (0 to disable)")
	pflag.StringVar(&helperConf.Path, "helper", helperConf.Path, "Path of the register access helper")
	pflag.StringVar(&helperConf.Backend, "helper-backend", helperConf.Backend, "Backend of the register access helper")
	pflag.IntVar(&helperConf.Processor, "helper-processor", helperConf.Processor, "Processor index of the register access helper")
	pflag.StringVar(&helperPolicy, "helper-policy", string(sequencer.HelperPolicyBestEffort), "Effect of failed register writes (best-effort|strict)")
	pflag.StringVar(&registerTransport, "register-transport", string(sequencer.RegisterTransportHelper), "Transport of attention & flash side register writes (helper|fsi)")
	pflag.StringVar(&mqttBroker, "mqtt-broker", "", "Address (host:port) of the MQTT broker to publish events & logs to")
	pflag.StringVar(&mqttTopic, "mqtt-topic", "hostctl", "Prefix of all MQTT topics")
	pflag.BoolVar(&debugMode, "debug-mode", false, "Start with debug mode enabled")
	pflag.StringVar(&flashSide, "flash-side", string(model.DefaultFlashSide), "Initial flash side (primary|golden)")
	pflag.StringVar(&serverAddress, "server", "", "Run as client of the GRPC server at this address (host:port)")
	pflag.Parse()

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		Exitf("Invalid log level '%s': %v\n", levelFlag, err)
	}
	ring := logging.NewRing(logging.DefaultRingSize)
	mqttWriter := logging.NewMQTTWriter(ctx)
	logger := zerolog.New(zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr},
		zerolog.ConsoleWriter{Out: ring, NoColor: true},
		mqttWriter,
	)).Level(level).With().Timestamp().Logger()

	if serverAddress != "" {
		if err := runClient(ctx, serverAddress, pflag.Args()); err != nil {
			Exitf("%s failed: %v\n", pflag.Arg(0), err)
		}
		return
	}

	if bridgeType == "" {
		bridgeType = environment.AutoDetectBridgeType(logger)
	}
	var br bridge.API
	switch bridgeType {
	case bridge.TypeSysfs:
		br, err = bridge.NewSysfsBridge()
		if err != nil {
			Exitf("Failed to initialize sysfs bridge: %v\n", err)
		}
	case bridge.TypePeriph:
		br, err = bridge.NewPeriphBridge()
		if err != nil {
			Exitf("Failed to initialize periph bridge: %v\n", err)
		}
	case bridge.TypeVirtual:
		logger.Warn().Msg("Using virtual GPIO bridge; no hardware will be touched")
		br = bridge.NewVirtualBridge(false)
	default:
		Exitf("Unknown bridge type '%s' (sysfs|periph|virtual)\n", bridgeType)
	}
	defer br.Close()

	lines, err := model.LoadLineConfiguration(linesPath)
	if err != nil {
		Exitf("Failed to load GPIO line configuration: %v\n", err)
	}

	helperConf.Name = filepath.Base(helperConf.Path)
	registers := helper.NewRegisterWriter(helperConf, helper.NewRunner(logger), logger)
	seq, err := sequencer.New(sequencer.Config{
		Lines:             lines,
		HelperPolicy:      sequencer.HelperPolicy(helperPolicy),
		RegisterTransport: sequencer.RegisterTransport(registerTransport),
	}, sequencer.Dependencies{
		Log:       logger,
		Bridge:    br,
		Registers: registers,
	})
	if err != nil {
		Exitf("Failed to initialize sequencer: %v\n", err)
	}

	svc, err := service.NewService(service.Config{
		Initial: model.BootConfiguration{
			DebugMode: debugMode,
			FlashSide: model.FlashSide(flashSide),
		},
	}, service.Dependencies{
		Logger:    logger,
		Sequencer: seq,
	})
	if err != nil {
		Exitf("Failed to initialize Service: %v\n", err)
	}

	srv, err := server.New(server.Config{
		Host:     serverHost,
		HTTPPort: httpPort,
		GRPCPort: grpcPort,
		SSHPort:  sshPort,
	}, logger, ui.New(svc, ring), svc, ring)
	if err != nil {
		Exitf("Failed to initialize Server: %v\n", err)
	}

	var publisher *mqtt.Publisher
	if mqttBroker != "" {
		publisher = mqtt.NewPublisher(mqtt.Config{
			BrokerAddress: mqttBroker,
			TopicPrefix:   mqttTopic,
		}, logger)
		mqttWriter.SetDestination(publisher.LogTopic(), publisher)
		mqttWriter.Enable(true)
	}

	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	fmt.Printf("Starting %s (version %s build %s)\n", projectName, projectVersion, projectBuild)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx) })
	if publisher != nil {
		g.Go(func() error {
			if err := publisher.Run(ctx, svc); err != nil && ctx.Err() == nil {
				return maskAny(err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		Exitf("Service run failed: %v\n", err)
	}
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
