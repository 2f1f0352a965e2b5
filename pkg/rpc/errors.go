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
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind classifies engine failures.
type ErrorKind int

const (
	KindClient ErrorKind = iota + 1
	KindDatabase
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindDatabase:
		return "database"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Sentinels matched by EngineQueryError.Is according to Kind.
var (
	ErrClient    = errors.New("engine rejected the query")
	ErrDatabase  = errors.New("engine failed to execute the query")
	ErrTransient = errors.New("engine temporarily unavailable")
)

// EngineQueryError is the single error type returned by transports. Code is
// the engine's own error code when it sent one, otherwise a transport code.
type EngineQueryError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *EngineQueryError) Error() string {
	return fmt.Sprintf("%s error %s: %s", e.Kind, e.Code, e.Message)
}

func (e *EngineQueryError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind.
func (e *EngineQueryError) Is(target error) bool {
	switch target {
	case ErrClient:
		return e.Kind == KindClient
	case ErrDatabase:
		return e.Kind == KindDatabase
	case ErrTransient:
		return e.Kind == KindTransient
	}
	return false
}

// Temporary reports whether the call may succeed if repeated.
func (e *EngineQueryError) Temporary() bool {
	return e.Kind == KindTransient
}

// kindFromCode honors engine codes that name their class, such as
// "TuGraph.ClientError.Statement.SyntaxError".
func kindFromCode(code string) (ErrorKind, bool) {
	switch {
	case strings.Contains(code, "ClientError"):
		return KindClient, true
	case strings.Contains(code, "TransientError"):
		return KindTransient, true
	case strings.Contains(code, "DatabaseError"):
		return KindDatabase, true
	}
	return 0, false
}

func kindFromGRPC(c codes.Code) ErrorKind {
	switch c {
	case codes.InvalidArgument, codes.NotFound, codes.AlreadyExists, codes.PermissionDenied,
		codes.Unauthenticated, codes.FailedPrecondition, codes.OutOfRange, codes.Unimplemented:
		return KindClient
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted, codes.Canceled:
		return KindTransient
	default:
		return KindDatabase
	}
}

func grpcCodeFor(k ErrorKind) codes.Code {
	switch k {
	case KindClient:
		return codes.InvalidArgument
	case KindTransient:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func kindFromHTTP(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusRequestTimeout, statusCode == http.StatusTooManyRequests,
		statusCode == http.StatusBadGateway, statusCode == http.StatusServiceUnavailable,
		statusCode == http.StatusGatewayTimeout:
		return KindTransient
	case statusCode >= 400 && statusCode < 500:
		return KindClient
	default:
		return KindDatabase
	}
}

func httpStatusFor(k ErrorKind) int {
	switch k {
	case KindClient:
		return http.StatusBadRequest
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fromGRPC converts a failed Invoke. engineCode comes from the response
// trailer and may be empty.
func fromGRPC(err error, engineCode string) *EngineQueryError {
	st, ok := status.FromError(err)
	if !ok {
		return fromTransport(err)
	}
	e := &EngineQueryError{
		Kind:    kindFromGRPC(st.Code()),
		Code:    st.Code().String(),
		Message: st.Message(),
		Err:     err,
	}
	if engineCode != "" {
		e.Code = engineCode
		if k, ok := kindFromCode(engineCode); ok {
			e.Kind = k
		}
	}
	return e
}

// errorBody is the gateway's error payload.
type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
}

func fromHTTP(statusCode int, body []byte) *EngineQueryError {
	e := &EngineQueryError{
		Kind:    kindFromHTTP(statusCode),
		Code:    fmt.Sprintf("HTTP_%d", statusCode),
		Message: strings.TrimSpace(string(body)),
	}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && (eb.Code != "" || eb.Message != "") {
		if eb.Code != "" {
			e.Code = eb.Code
			if k, ok := kindFromCode(eb.Code); ok {
				e.Kind = k
			}
		}
		e.Message = eb.Message
	}
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}
	return e
}

// fromTransport wraps failures that never reached the engine.
func fromTransport(err error) *EngineQueryError {
	code := "ConnectionFailed"
	if errors.Is(err, context.DeadlineExceeded) {
		code = "Timeout"
	} else if errors.Is(err, context.Canceled) {
		code = "Canceled"
	}
	return &EngineQueryError{Kind: KindTransient, Code: code, Message: err.Error(), Err: err}
}
