/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx adapts normalized error records to gRPC.
//
// The server interceptor converts handler errors into gRPC statuses whose
// code is resolved by an apis.Mapper and whose details carry the record as
// a google.protobuf.Struct. Clients read it back with ExtractRecord.
package grpcx

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errnotation"
	"dirpx.dev/errnotation/adapter"
	"dirpx.dev/errnotation/apis"
)

// EnrichFn returns extra fields merged into the record last (request IDs,
// trace IDs, tenant). It may return nil.
type EnrichFn func(ctx context.Context, err error) map[string]any

type config struct {
	enrich EnrichFn
	logger *slog.Logger
	opts   []errnotation.Option
}

// Option configures UnaryServerInterceptor.
type Option func(*config)

// WithEnrich sets the enrichment callback.
func WithEnrich(fn EnrichFn) Option {
	return func(c *config) { c.enrich = fn }
}

// WithLogger logs every converted error at Error level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithNormalizeOptions forwards options to errnotation.Normalize.
func WithNormalizeOptions(opts ...errnotation.Option) Option {
	return func(c *config) { c.opts = append(c.opts, opts...) }
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that
// normalizes handler errors and maps them to gRPC statuses.
//
// Errors that already carry a gRPC status are returned untouched. For the
// rest, the status code comes from m.GRPCStatus(record name) and the
// message from the record message. The record is attached as a
// structpb.Struct detail; if that fails the bare status is returned.
func UnaryServerInterceptor(m apis.Mapper, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := gstatus.FromError(err); ok {
			return nil, err
		}

		var enrichment map[string]any
		if cfg.enrich != nil {
			enrichment = cfg.enrich(ctx, err)
		}
		rec := errnotation.Normalize(err, enrichment, cfg.opts...)

		code := gcodes.Internal
		if m != nil {
			code = m.GRPCStatus(rec.Name())
		}

		if cfg.logger != nil {
			method := ""
			if info != nil {
				method = info.FullMethod
			}
			cfg.logger.ErrorContext(ctx, "grpc request failed",
				slog.String("method", method),
				slog.String("code", code.String()),
				slog.Any("error", rec),
			)
		}

		base := gstatus.New(code, rec.Message())
		st, convErr := adapter.ToStruct(rec)
		if convErr != nil {
			return nil, base.Err()
		}
		with, detErr := base.WithDetails(st)
		if detErr != nil {
			return nil, base.Err()
		}
		return nil, with.Err()
	}
}

// ExtractRecord pulls the normalized record out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractRecord(err error) (errnotation.Record, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Proto().GetDetails() {
		if !d.MessageIs(&structpb.Struct{}) {
			continue
		}
		var s structpb.Struct
		if err := d.UnmarshalTo(&s); err != nil {
			continue
		}
		return adapter.FromStruct(&s), true
	}
	return nil, false
}
