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

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/api"
	"github.com/openbmc/hostctl/pkg/service"
)

const (
	watchQueueSize = 16
)

// grpcService implements the HostControl GRPC service on top of the service API.
type grpcService struct {
	log     zerolog.Logger
	service service.API
}

var _ api.HostControlServer = &grpcService{}

// toStatus converts service errors to GRPC status errors.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	switch cause := errors.Cause(err); {
	case cause == service.ErrShuttingDown:
		return status.Error(codes.Unavailable, err.Error())
	case model.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func (s *grpcService) Init(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	return &api.Empty{}, toStatus(s.service.Init(ctx))
}

func (s *grpcService) Boot(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	return &api.Empty{}, toStatus(s.service.Boot(ctx))
}

func (s *grpcService) SetDebugMode(ctx context.Context, req *api.SetDebugModeRequest) (*api.Empty, error) {
	return &api.Empty{}, toStatus(s.service.SetDebugMode(ctx, req.Enabled))
}

func (s *grpcService) SetFlashSide(ctx context.Context, req *api.SetFlashSideRequest) (*api.Empty, error) {
	if req.FlashSide == "" {
		return nil, status.Error(codes.InvalidArgument, "flash side missing")
	}
	return &api.Empty{}, toStatus(s.service.SetFlashSide(ctx, req.FlashSide))
}

func (s *grpcService) GetStatus(ctx context.Context, _ *api.Empty) (*model.Status, error) {
	st := s.service.Status(ctx)
	return &st, nil
}

// WatchBooted streams booted events until the client goes away.
// Events are dropped for clients that cannot keep up.
func (s *grpcService) WatchBooted(_ *api.Empty, stream api.WatchBootedServer) error {
	events := make(chan model.BootedEvent, watchQueueSize)
	cancel := s.service.SubscribeBooted(func(evt model.BootedEvent) {
		select {
		case events <- evt:
		default:
			s.log.Warn().Msg("Dropping booted event for slow watcher")
		}
	})
	defer cancel()

	ctx := stream.Context()
	for {
		select {
		case evt := <-events:
			if err := stream.Send(&evt); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
