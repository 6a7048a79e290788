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

package api

import (
	"context"
	"io"
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"github.com/openbmc/hostctl/model"
)

// DialConn prepares a connection to the HostControl service at given address.
func DialConn(address string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	callOpts := []grpc_retry.CallOption{
		grpc_retry.WithBackoff(grpc_retry.BackoffExponential(50 * time.Millisecond)),
		grpc_retry.WithMax(3),
		grpc_retry.WithCodes(codes.Unavailable),
	}
	opts = append([]grpc.DialOption{grpc.WithInsecure()}, opts...)
	opts = append(opts,
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
		grpc.WithStreamInterceptor(grpc_retry.StreamClientInterceptor(callOpts...)),
		grpc.WithUnaryInterceptor(grpc_retry.UnaryClientInterceptor(callOpts...)),
	)
	conn, err := grpc.Dial(address, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to dial %s", address)
	}
	return conn, nil
}

// Client of the HostControl service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a HostControl client on the given connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}) error {
	return c.cc.Invoke(ctx, method, in, out, grpc.CallContentSubtype(CodecName))
}

// Init acknowledges initialization of the host.
func (c *Client) Init(ctx context.Context) error {
	return c.invoke(ctx, MethodInit, &Empty{}, &Empty{})
}

// Boot schedules a boot attempt.
func (c *Client) Boot(ctx context.Context) error {
	return c.invoke(ctx, MethodBoot, &Empty{}, &Empty{})
}

// SetDebugMode sets the debug mode of subsequent boot attempts.
func (c *Client) SetDebugMode(ctx context.Context, enabled bool) error {
	return c.invoke(ctx, MethodSetDebugMode, &SetDebugModeRequest{Enabled: enabled}, &Empty{})
}

// SetFlashSide sets the flash side of subsequent boot attempts.
func (c *Client) SetFlashSide(ctx context.Context, side model.FlashSide) error {
	return c.invoke(ctx, MethodSetFlashSide, &SetFlashSideRequest{FlashSide: side}, &Empty{})
}

// GetStatus returns the current status of the service.
func (c *Client) GetStatus(ctx context.Context) (model.Status, error) {
	var result model.Status
	if err := c.invoke(ctx, MethodGetStatus, &Empty{}, &result); err != nil {
		return model.Status{}, err
	}
	return result, nil
}

// WatchBooted calls the given callback for every booted event,
// until the context is canceled or the server ends the stream.
func (c *Client) WatchBooted(ctx context.Context, cb func(model.BootedEvent)) error {
	stream, err := c.cc.NewStream(ctx, &HostControlServiceDesc.Streams[0], MethodWatchBooted, grpc.CallContentSubtype(CodecName))
	if err != nil {
		return err
	}
	if err := stream.SendMsg(&Empty{}); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}
	for {
		var evt model.BootedEvent
		if err := stream.RecvMsg(&evt); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		cb(evt)
	}
}
