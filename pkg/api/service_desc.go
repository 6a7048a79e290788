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

	"google.golang.org/grpc"

	"github.com/openbmc/hostctl/model"
)

const (
	// ServiceName is the full name of the HostControl service.
	ServiceName = "hostctl.v1.HostControl"

	MethodInit         = "/" + ServiceName + "/Init"
	MethodBoot         = "/" + ServiceName + "/Boot"
	MethodSetDebugMode = "/" + ServiceName + "/SetDebugMode"
	MethodSetFlashSide = "/" + ServiceName + "/SetFlashSide"
	MethodGetStatus    = "/" + ServiceName + "/GetStatus"
	MethodWatchBooted  = "/" + ServiceName + "/WatchBooted"
)

// HostControlServer is the server API of the HostControl service.
type HostControlServer interface {
	// Acknowledge initialization
	Init(context.Context, *Empty) (*Empty, error)
	// Schedule a boot attempt
	Boot(context.Context, *Empty) (*Empty, error)
	// Set the debug mode of subsequent boot attempts
	SetDebugMode(context.Context, *SetDebugModeRequest) (*Empty, error)
	// Set the flash side of subsequent boot attempts
	SetFlashSide(context.Context, *SetFlashSideRequest) (*Empty, error)
	// Get the current status
	GetStatus(context.Context, *Empty) (*model.Status, error)
	// Stream booted events until the client disconnects
	WatchBooted(*Empty, WatchBootedServer) error
}

// WatchBootedServer is the server side of a WatchBooted stream.
type WatchBootedServer interface {
	Send(*model.BootedEvent) error
	grpc.ServerStream
}

type watchBootedServer struct {
	grpc.ServerStream
}

func (x *watchBootedServer) Send(m *model.BootedEvent) error {
	return x.ServerStream.SendMsg(m)
}

type unaryHandler = func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error)

// unary builds the handler of a unary method.
func unary[Req any, Resp any](fullMethod string, call func(HostControlServer, context.Context, *Req) (*Resp, error)) unaryHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HostControlServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(HostControlServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchBootedHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(HostControlServer).WatchBooted(m, &watchBootedServer{stream})
}

// HostControlServiceDesc describes the HostControl service.
var HostControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HostControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Init",
			Handler:    unary(MethodInit, HostControlServer.Init),
		},
		{
			MethodName: "Boot",
			Handler:    unary(MethodBoot, HostControlServer.Boot),
		},
		{
			MethodName: "SetDebugMode",
			Handler:    unary(MethodSetDebugMode, HostControlServer.SetDebugMode),
		},
		{
			MethodName: "SetFlashSide",
			Handler:    unary(MethodSetFlashSide, HostControlServer.SetFlashSide),
		},
		{
			MethodName: "GetStatus",
			Handler:    unary(MethodGetStatus, HostControlServer.GetStatus),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchBooted",
			Handler:       watchBootedHandler,
			ServerStreams: true,
		},
	},
	Metadata: "hostctl/v1/hostctl.json",
}

// RegisterHostControlServer registers the given implementation on the gRPC server.
func RegisterHostControlServer(s *grpc.Server, srv HostControlServer) {
	s.RegisterService(&HostControlServiceDesc, srv)
}
