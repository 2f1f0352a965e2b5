// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Handler executes one literal query. Returning an *EngineQueryError keeps its
// kind and code intact across the wire.
type Handler func(ctx context.Context, query, graph string, timeout time.Duration) (string, error)

type cypherService interface {
	call(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error)
}

type cypherServer struct {
	handler Handler
}

// RegisterCypherService serves h as /tugraph.rpc.CypherService/Call.
func RegisterCypherService(s grpc.ServiceRegistrar, h Handler) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*cypherService)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Call", Handler: callHandler},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "tugraph/rpc/cypher.proto",
	}, &cypherServer{handler: h})
}

func callHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	svc := srv.(cypherService)
	if interceptor == nil {
		return svc.call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: callMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return svc.call(ctx, req.(*structpb.Struct))
	})
}

func (s *cypherServer) call(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	fields := in.GetFields()
	query := fields[fieldQuery].GetStringValue()
	graph := fields[fieldGraph].GetStringValue()
	timeout := time.Duration(fields[fieldTimeout].GetNumberValue() * float64(time.Second))

	out, err := s.handler(ctx, query, graph, timeout)
	if err != nil {
		var eq *EngineQueryError
		if errors.As(err, &eq) {
			_ = grpc.SetTrailer(ctx, metadata.Pairs(engineCodeKey, eq.Code))
			return nil, status.Error(grpcCodeFor(eq.Kind), eq.Message)
		}
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, status.Error(grpcCodeFor(KindDatabase), err.Error())
	}
	return wrapperspb.String(out), nil
}

// NewHTTPHandler serves h as the gateway endpoint POST /cypher.
func NewHTTPHandler(h Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cypher", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeHTTPError(w, &EngineQueryError{Kind: KindClient, Code: "MethodNotAllowed", Message: "use POST"})
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeHTTPError(w, &EngineQueryError{Kind: KindClient, Code: "InvalidRequest", Message: err.Error()})
			return
		}
		var req cypherRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeHTTPError(w, &EngineQueryError{Kind: KindClient, Code: "InvalidRequest", Message: err.Error()})
			return
		}

		out, err := h(r.Context(), req.Script, req.Graph, time.Duration(req.Timeout*float64(time.Second)))
		if err != nil {
			var eq *EngineQueryError
			if !errors.As(err, &eq) {
				eq = &EngineQueryError{Kind: KindDatabase, Code: "InternalError", Message: err.Error()}
			}
			writeHTTPError(w, eq)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, out)
	})
	return mux
}

func writeHTTPError(w http.ResponseWriter, e *EngineQueryError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusFor(e.Kind))
	_ = json.NewEncoder(w).Encode(errorBody{Code: e.Code, Message: e.Message})
}
