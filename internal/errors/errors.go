// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors turns library failures into messages a tgbridge user can
// act on.
//
// A UserError says what went wrong, why, and how to fix it, and carries the
// process exit code for its category:
//
//	Error: Query rejected by the engine
//	Cause: SyntaxError: unexpected token RETURN
//	Fix:   Check the statement text and parameters
//
// FromError classifies errors from pkg/cypher, pkg/rpc, pkg/response and
// pkg/driver. Anything it does not recognise is reported as internal.
//
// # Exit Codes
//
//   - ExitSuccess (0)
//   - ExitConfig (1): missing or invalid configuration
//   - ExitDatabase (2): the engine rejected the query
//   - ExitNetwork (3): engine unreachable or timed out
//   - ExitInput (4): the statement could not be translated
//   - ExitNotFound (6): a file named on the command line does not exist
//   - ExitInternal (10): undecodable engine output or a bug
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/tgbridge/pkg/cypher"
	"github.com/kraklabs/tgbridge/pkg/driver"
	"github.com/kraklabs/tgbridge/pkg/response"
	"github.com/kraklabs/tgbridge/pkg/rpc"
)

// Exit codes for different error categories.
const (
	ExitSuccess  = 0
	ExitConfig   = 1
	ExitDatabase = 2
	ExitNetwork  = 3
	ExitInput    = 4
	ExitNotFound = 6

	// ExitInternal signals "this is a bug that should be reported", or an
	// engine answer the decoders cannot read.
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
type UserError struct {
	// Message describes what went wrong.
	Message string

	// Cause explains why, usually the underlying engine or parser message.
	Cause string

	// Fix is an actionable suggestion. Optional.
	Fix string

	ExitCode int

	// Err is the wrapped error, kept for errors.Is/As.
	Err error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: code, Err: err}
}

// NewConfigError creates an error with exit code ExitConfig.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewDatabaseError creates an error with exit code ExitDatabase.
func NewDatabaseError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitDatabase, msg, cause, fix, err)
}

// NewNetworkError creates an error with exit code ExitNetwork.
func NewNetworkError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitNetwork, msg, cause, fix, err)
}

// NewInputError creates an error with exit code ExitInput. Input errors
// usually stand alone, so nothing is wrapped.
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewNotFoundError creates an error with exit code ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newUserError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

// FromError classifies err. A *UserError anywhere in the chain is returned
// as is.
func FromError(err error) *UserError {
	if err == nil {
		return nil
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}

	var (
		missing *cypher.MissingLabelError
		badID   *cypher.InvalidIdentifierError
		trans   *cypher.TranslationError
		engine  *rpc.EngineQueryError
		decode  *response.DecodeError
		cfg     *driver.ConfigError
	)
	switch {
	case errors.As(err, &missing):
		return &UserError{
			Message:  "Statement has no node label",
			Cause:    missing.Error(),
			Fix:      "Write the label as (n:Label) or (n:`Label`) in the CREATE or MERGE pattern",
			ExitCode: ExitInput,
			Err:      err,
		}
	case errors.As(err, &badID):
		return &UserError{
			Message:  "Invalid entity id in parameters",
			Cause:    badID.Error(),
			Fix:      "Pass non-negative integer ids",
			ExitCode: ExitInput,
			Err:      err,
		}
	case errors.As(err, &trans):
		return &UserError{
			Message:  "Cannot translate statement",
			Cause:    trans.Error(),
			Fix:      "Check that the parameters match the placeholders used in the statement",
			ExitCode: ExitInput,
			Err:      err,
		}
	case errors.As(err, &engine):
		return fromEngine(engine, err)
	case errors.As(err, &decode):
		return &UserError{
			Message:  "Cannot read engine result",
			Cause:    decode.Error(),
			Fix:      "Run with --json to see the raw answer, or pick a different --shape",
			ExitCode: ExitInternal,
			Err:      err,
		}
	case errors.As(err, &cfg):
		return &UserError{
			Message:  "Invalid engine configuration",
			Cause:    cfg.Error(),
			Fix:      "Edit .tgbridge/config.yaml or rerun: tgbridge init --force",
			ExitCode: ExitConfig,
			Err:      err,
		}
	case errors.Is(err, driver.ErrClosed):
		return NewInternalError("Driver used after close", err.Error(), "", err)
	}

	return NewInternalError("Unexpected error", err.Error(), "", err)
}

func fromEngine(e *rpc.EngineQueryError, err error) *UserError {
	cause := e.Message
	if e.Code != "" {
		cause = e.Code + ": " + e.Message
	}
	switch e.Kind {
	case rpc.KindClient:
		return NewDatabaseError("Query rejected by the engine", cause,
			"Check the statement text and parameters", err)
	case rpc.KindDatabase:
		return NewDatabaseError("Engine failed to run the query", cause,
			"Check the engine logs; the graph may be missing or unhealthy", err)
	default:
		return NewNetworkError("Cannot reach the engine", cause,
			"Check that the engine is running and the URI in .tgbridge/config.yaml is correct, then retry", err)
	}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns the error as colored terminal text. Empty Cause or Fix
// lines are omitted. NO_COLOR is honored.
//
// Note: color.NoColor is global; it is restored before returning.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON is the --json rendering of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Report classifies err, writes it to w and returns the exit code.
func Report(w io.Writer, err error, jsonOutput, noColor bool) int {
	if err == nil {
		return ExitSuccess
	}
	ue := FromError(err)
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(ue.ToJSON())
	} else {
		fmt.Fprint(w, ue.Format(noColor))
	}
	return ue.ExitCode
}
