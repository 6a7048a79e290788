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

package server

import (
	"context"
	"net"
	"net/http"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/openbmc/hostctl/pkg/api"
	"github.com/openbmc/hostctl/pkg/service"
)

// Config for the servers.
type Config struct {
	// Host interface to listen on
	Host string
	// Port to listen on for HTTP requests
	HTTPPort int
	// Port to listen on for SSH requests. 0 disables SSH.
	SSHPort int
	// Port to listen on for GRPC requests
	GRPCPort int
	// Path of the SSH host key
	SSHHostKeyPath string
}

// Server runs the HTTP, GRPC & SSH servers for the service.
type Server struct {
	Config
	log     zerolog.Logger
	ui      UI
	service service.API
	logs    LogSource
}

type UI interface {
	// Handler creates a Bubble Tea model for an incoming ssh.Session.
	Handler(s ssh.Session) (tea.Model, []tea.ProgramOption)
}

// LogSource provides recent log lines.
type LogSource interface {
	Lines() []string
}

// New configures a new Server.
func New(cfg Config, log zerolog.Logger, ui UI, svc service.API, logs LogSource) (*Server, error) {
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/id_ed25519"
	}
	return &Server{
		Config:  cfg,
		log:     log.With().Str("component", "server").Logger(),
		ui:      ui,
		service: svc,
		logs:    logs,
	}, nil
}

// Run the server until the given context is canceled.
func (s *Server) Run(ctx context.Context) error {
	log := s.log

	// Prepare HTTP listener
	httpAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on address %s", httpAddr)
	}
	httpSrv := http.Server{
		Handler: s.newHTTPRouter(),
	}

	// Prepare GRPC listener
	grpcAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.GRPCPort))
	grpcLis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		httpLis.Close()
		return errors.Wrapf(err, "failed to listen on address %s", grpcAddr)
	}
	grpcSrv := s.newGRPCServer()

	// Prepare SSH server
	var sshServer *ssh.Server
	sshAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.SSHPort))
	if s.SSHPort > 0 && s.ui != nil {
		sshServer, err = wish.NewServer(
			wish.WithAddress(sshAddr),
			// Creates a keypair in the given path if it doesn't exist yet.
			wish.WithHostKeyPath(s.SSHHostKeyPath),
			wish.WithMiddleware(
				bubbletea.Middleware(s.ui.Handler),
				// The last item in the chain is the first to be called.
				activeterm.Middleware(),
				logging.Middleware(),
			),
		)
		if err != nil {
			httpLis.Close()
			grpcLis.Close()
			return errors.Wrap(err, "could not start SSH server")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	log.Debug().Str("address", httpAddr).Msg("Serving HTTP")
	g.Go(func() error {
		if err := httpSrv.Serve(httpLis); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "failed to serve HTTP server")
		}
		log.Debug().Str("address", httpAddr).Msg("Done Serving HTTP")
		return nil
	})
	log.Debug().Str("address", grpcAddr).Msg("Serving GRPC")
	g.Go(func() error {
		if err := grpcSrv.Serve(grpcLis); err != nil {
			return errors.Wrap(err, "failed to serve GRPC server")
		}
		log.Debug().Str("address", grpcAddr).Msg("Done Serving GRPC")
		return nil
	})
	if sshServer != nil {
		log.Debug().Str("address", sshAddr).Msg("Serving SSH")
		g.Go(func() error {
			if err := sshServer.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
				return errors.Wrap(err, "failed to serve SSH server")
			}
			log.Debug().Str("address", sshAddr).Msg("Done Serving SSH")
			return nil
		})
	}
	g.Go(func() error {
		// Wait until context closed
		<-ctx.Done()

		log.Info().Msg("Closing servers")
		httpSrv.Shutdown(context.Background())
		grpcSrv.GracefulStop()
		if sshServer != nil {
			sshServer.Shutdown(context.Background())
		}
		return nil
	})
	return g.Wait()
}

// newGRPCServer creates a GRPC server serving the HostControl service.
func (s *Server) newGRPCServer() *grpc.Server {
	grpcSrv := grpc.NewServer(
		grpc.StreamInterceptor(grpc_prometheus.StreamServerInterceptor),
		grpc.UnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
	)
	api.RegisterHostControlServer(grpcSrv, &grpcService{log: s.log, service: s.service})
	grpc_prometheus.Register(grpcSrv)
	return grpcSrv
}
