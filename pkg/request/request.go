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

package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kraklabs/tgbridge/internal/contract"
	"github.com/kraklabs/tgbridge/pkg/cypher"
	"github.com/kraklabs/tgbridge/pkg/model"
	"github.com/kraklabs/tgbridge/pkg/response"
	"github.com/kraklabs/tgbridge/pkg/rpc"
)

const tracerName = "github.com/kraklabs/tgbridge/pkg/request"

// Result shapes, used as metric labels and span names.
const (
	ShapeGraph    = "graph"
	ShapeRow      = "row"
	ShapeGraphRow = "graph-row"
	ShapeRest     = "rest"
)

// Request executes statements against one engine client. It holds no
// mutable state and is safe for concurrent use.
type Request struct {
	client  rpc.Client
	convert ParameterConverter
	modify  func(string) string
	graph   string
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Request.
type Option func(*Request)

// WithLogger sets the logger. Statements are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Request) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGraph selects the engine graph; rpc.DefaultGraph by default.
func WithGraph(graph string) Option {
	return func(r *Request) {
		if graph != "" {
			r.graph = graph
		}
	}
}

// WithTimeout sets the per-call timeout; rpc.DefaultTimeout by default.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Request) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithParameterConverter replaces ConvertParameters.
func WithParameterConverter(c ParameterConverter) Option {
	return func(r *Request) {
		if c != nil {
			r.convert = c
		}
	}
}

// WithCypherModification applies fn to every statement text before rewriting.
func WithCypherModification(fn func(string) string) Option {
	return func(r *Request) {
		if fn != nil {
			r.modify = fn
		}
	}
}

// WithTracer sets the tracer; the global provider is used by default.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Request) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// New creates a Request that sends statements through client.
func New(client rpc.Client, opts ...Option) *Request {
	r := &Request{
		client:  client,
		convert: ParameterConverterFunc(ConvertParameters),
		modify:  func(s string) string { return s },
		graph:   rpc.DefaultGraph,
		timeout: rpc.DefaultTimeout,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExecuteGraph runs req and decodes graph models.
func (r *Request) ExecuteGraph(ctx context.Context, req GraphModelRequest) (response.Response[*model.GraphModel], error) {
	if req.IsEmpty() {
		recordSkipped()
		return response.Empty[*model.GraphModel](), nil
	}
	var resp *response.GraphResponse
	err := r.run(ctx, ShapeGraph, req.Statement, func(raw string) (err error) {
		resp, err = response.NewGraphResponse(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ExecuteRow runs req and decodes rows.
func (r *Request) ExecuteRow(ctx context.Context, req RowModelRequest) (response.Response[*model.RowModel], error) {
	if req.IsEmpty() {
		recordSkipped()
		return response.Empty[*model.RowModel](), nil
	}
	resp, err := r.rows(ctx, req.Statement)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ExecuteGraphRow runs req and decodes graph/row pairs.
func (r *Request) ExecuteGraphRow(ctx context.Context, req GraphRowListModelRequest) (response.Response[*model.GraphRowListModel], error) {
	if req.IsEmpty() {
		recordSkipped()
		return response.Empty[*model.GraphRowListModel](), nil
	}
	var resp *response.GraphRowResponse
	err := r.run(ctx, ShapeGraphRow, req.Statement, func(raw string) (err error) {
		resp, err = response.NewGraphRowResponse(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ExecuteRest runs req and decodes generic maps and statistics.
func (r *Request) ExecuteRest(ctx context.Context, req RestModelRequest) (*response.RestResponse, error) {
	if req.IsEmpty() {
		recordSkipped()
		return response.EmptyRestResponse(), nil
	}
	var resp *response.RestResponse
	err := r.run(ctx, ShapeRest, req.Statement, func(raw string) (err error) {
		resp, err = response.NewRestResponse(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ExecuteDefault runs every statement in order and concatenates their rows.
// The merged response reports the columns of the first statement that runs,
// even when later statements return different ones. Empty statements are
// skipped and never supply columns.
func (r *Request) ExecuteDefault(ctx context.Context, req DefaultRequest) (response.Response[*model.RowModel], error) {
	columns := []string{}
	ran := false
	var rows []*model.RowModel
	for i, stmt := range req.Statements {
		if stmt.IsEmpty() {
			recordSkipped()
			continue
		}
		resp, err := r.rows(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		if !ran {
			columns = resp.Columns()
			ran = true
		}
		rows = append(rows, response.Collect[*model.RowModel](resp)...)
	}
	return response.NewMultiStatementResponse(columns, rows), nil
}

func (r *Request) rows(ctx context.Context, stmt model.Statement) (*response.RowResponse, error) {
	var resp *response.RowResponse
	err := r.run(ctx, ShapeRow, stmt, func(raw string) (err error) {
		resp, err = response.NewRowResponse(raw)
		return err
	})
	return resp, err
}

// run executes stmt and hands the raw result to decode, recording the span
// and metrics for the whole exchange.
func (r *Request) run(ctx context.Context, shape string, stmt model.Statement, decode func(raw string) error) error {
	ctx, span := r.tracer.Start(ctx, "tgbridge.execute."+shape, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	recordRequest(shape)
	raw, err := r.call(ctx, span, stmt)
	if err == nil {
		start := time.Now()
		err = decode(raw)
		observeDecode(time.Since(start))
	}
	if err != nil {
		recordFailure(shape, errorKind(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *Request) call(ctx context.Context, span trace.Span, stmt model.Statement) (string, error) {
	params, err := r.convert.ConvertParameters(stmt.Parameters)
	if err != nil {
		return "", fmt.Errorf("convert parameters: %w", err)
	}
	text := r.modify(stmt.Text)
	kind := cypher.Classify(text)
	recordRewrite(kind.String())

	query, err := cypher.Rewrite(text, params)
	if err != nil {
		return "", err
	}
	if res := contract.ValidateQuery(query); !res.OK {
		return "", &cypher.TranslationError{Kind: kind, Reason: res.Message}
	}

	id := rpc.RequestID(ctx)
	if res := contract.ValidateRequestID(id); !res.OK {
		r.logger.Warn("replacing invalid request id", "reason", res.Message)
		id = rpc.RequestID(context.Background())
	}
	ctx = rpc.WithRequestID(ctx, id)
	span.SetAttributes(
		attribute.String("tgbridge.request_id", id),
		attribute.String("tgbridge.statement.kind", kind.String()),
		attribute.String("db.namespace", r.graph),
	)

	if r.logger.Enabled(ctx, slog.LevelDebug) {
		r.logger.Debug("request", "request_id", id, "statement", text, "params", params, "query", query)
	}
	if unbound := cypher.UnboundPlaceholders(query); len(unbound) > 0 {
		r.logger.Warn("query has unbound placeholders", "request_id", id, "placeholders", unbound)
	}

	start := time.Now()
	raw, err := r.client.CallCypher(ctx, query, r.graph, r.timeout)
	elapsed := time.Since(start)
	observeRPC(elapsed)
	if err != nil {
		r.logger.Warn("engine call failed", "request_id", id, "duration", elapsed, "error", err)
		return "", err
	}
	r.logger.Debug("response", "request_id", id, "duration", elapsed, "bytes", len(raw))
	return raw, nil
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	var eq *rpc.EngineQueryError
	switch {
	case errors.As(err, &eq):
		return eq.Kind.String()
	case errors.Is(err, response.ErrDecode):
		return "decode"
	case errors.Is(err, cypher.ErrMissingLabel), errors.Is(err, cypher.ErrInvalidIdentifier), errors.Is(err, cypher.ErrTranslation):
		return "translation"
	default:
		return "other"
	}
}
