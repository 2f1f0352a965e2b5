// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kraklabs/tgbridge/pkg/cypher"
	"github.com/kraklabs/tgbridge/pkg/driver"
	"github.com/kraklabs/tgbridge/pkg/response"
	"github.com/kraklabs/tgbridge/pkg/rpc"
)

func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want string
	}{
		{
			name: "with underlying error",
			err:  &UserError{Message: "Cannot reach the engine", Err: fmt.Errorf("connection refused")},
			want: "Cannot reach the engine: connection refused",
		},
		{
			name: "without underlying error",
			err:  &UserError{Message: "Invalid input"},
			want: "Invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UserError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCodes_Uniqueness(t *testing.T) {
	codes := []int{ExitSuccess, ExitConfig, ExitDatabase, ExitNetwork, ExitInput, ExitNotFound, ExitInternal}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}

func TestConstructors(t *testing.T) {
	inner := fmt.Errorf("inner")
	tests := []struct {
		name     string
		err      *UserError
		wantCode int
		wantErr  error
	}{
		{"config", NewConfigError("m", "c", "f", inner), ExitConfig, inner},
		{"database", NewDatabaseError("m", "c", "f", inner), ExitDatabase, inner},
		{"network", NewNetworkError("m", "c", "f", inner), ExitNetwork, inner},
		{"input", NewInputError("m", "c", "f"), ExitInput, nil},
		{"not found", NewNotFoundError("m", "c", "f"), ExitNotFound, nil},
		{"internal", NewInternalError("m", "c", "f", inner), ExitInternal, inner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", tt.err.ExitCode, tt.wantCode)
			}
			if tt.err.Err != tt.wantErr {
				t.Errorf("Err = %v, want %v", tt.err.Err, tt.wantErr)
			}
			if tt.err.Message != "m" || tt.err.Cause != "c" || tt.err.Fix != "f" {
				t.Errorf("fields not copied: %+v", tt.err)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing label",
			err:      &cypher.MissingLabelError{Statement: "CREATE (n)"},
			wantCode: ExitInput,
			wantMsg:  "Statement has no node label",
		},
		{
			name:     "invalid id",
			err:      &cypher.InvalidIdentifierError{Param: "nodeId", Row: 0, Value: int64(-1)},
			wantCode: ExitInput,
			wantMsg:  "Invalid entity id in parameters",
		},
		{
			name:     "translation",
			err:      &cypher.TranslationError{Kind: cypher.KindCreate, Reason: "rows missing"},
			wantCode: ExitInput,
			wantMsg:  "Cannot translate statement",
		},
		{
			name:     "engine client error",
			err:      fmt.Errorf("statement 0: %w", &rpc.EngineQueryError{Kind: rpc.KindClient, Code: "SyntaxError", Message: "bad"}),
			wantCode: ExitDatabase,
			wantMsg:  "Query rejected by the engine",
		},
		{
			name:     "engine database error",
			err:      &rpc.EngineQueryError{Kind: rpc.KindDatabase, Message: "graph missing"},
			wantCode: ExitDatabase,
			wantMsg:  "Engine failed to run the query",
		},
		{
			name:     "transient",
			err:      &rpc.EngineQueryError{Kind: rpc.KindTransient, Code: "ConnectionFailed", Message: "refused"},
			wantCode: ExitNetwork,
			wantMsg:  "Cannot reach the engine",
		},
		{
			name:     "decode",
			err:      &response.DecodeError{Shape: "row", Err: errors.New("eof")},
			wantCode: ExitInternal,
			wantMsg:  "Cannot read engine result",
		},
		{
			name:     "config",
			err:      &driver.ConfigError{Field: "uri", Reason: "is required"},
			wantCode: ExitConfig,
			wantMsg:  "Invalid engine configuration",
		},
		{
			name:     "closed driver",
			err:      driver.ErrClosed,
			wantCode: ExitInternal,
			wantMsg:  "Driver used after close",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			wantCode: ExitInternal,
			wantMsg:  "Unexpected error",
		},
		{
			name:     "user error passes through",
			err:      fmt.Errorf("wrapped: %w", NewNotFoundError("No such file", "", "")),
			wantCode: ExitNotFound,
			wantMsg:  "No such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			if got.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", got.ExitCode, tt.wantCode)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
			if !errors.Is(got, tt.err) && got.Err != nil {
				t.Errorf("classified error does not wrap the original")
			}
		})
	}

	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestFromError_EngineCause(t *testing.T) {
	ue := FromError(&rpc.EngineQueryError{Kind: rpc.KindClient, Code: "SyntaxError", Message: "unexpected RETURN"})
	if ue.Cause != "SyntaxError: unexpected RETURN" {
		t.Errorf("Cause = %q", ue.Cause)
	}
	if !errors.Is(ue, rpc.ErrClient) {
		t.Error("expected errors.Is(ue, rpc.ErrClient)")
	}
}

func TestUserError_Format(t *testing.T) {
	tests := []struct {
		name      string
		err       *UserError
		wantLines []string
		notWant   []string
	}{
		{
			name:      "all fields",
			err:       &UserError{Message: "Cannot reach the engine", Cause: "refused", Fix: "Start it"},
			wantLines: []string{"Error: Cannot reach the engine", "Cause: refused", "Fix:   Start it"},
		},
		{
			name:      "message only",
			err:       &UserError{Message: "Unexpected error"},
			wantLines: []string{"Error: Unexpected error"},
			notWant:   []string{"Cause:", "Fix:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(true)
			for _, s := range tt.wantLines {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\nGot: %s", s, got)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\nGot: %s", s, got)
				}
			}
		})
	}
}

func TestUserError_Format_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	got := NewInputError("Bad", "", "").Format(false)
	if strings.Contains(got, "\x1b[") {
		t.Errorf("Format() emitted ANSI codes with NO_COLOR set: %q", got)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	code := Report(&buf, &rpc.EngineQueryError{Kind: rpc.KindTransient, Code: "Timeout", Message: "deadline"}, true, true)
	if code != ExitNetwork {
		t.Errorf("code = %d, want %d", code, ExitNetwork)
	}

	var got ErrorJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.ExitCode != ExitNetwork || got.Cause != "Timeout: deadline" {
		t.Errorf("unexpected JSON: %+v", got)
	}

	buf.Reset()
	if code := Report(&buf, nil, false, true); code != ExitSuccess || buf.Len() != 0 {
		t.Errorf("Report(nil) = %d, wrote %q", code, buf.String())
	}

	buf.Reset()
	Report(&buf, errors.New("boom"), false, true)
	if !strings.HasPrefix(buf.String(), "Error: Unexpected error") {
		t.Errorf("plain output = %q", buf.String())
	}
}
