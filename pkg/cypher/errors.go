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

package cypher

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	ErrTranslation       = errors.New("statement cannot be translated")
	ErrMissingLabel      = errors.New("statement has no label")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// TranslationError reports a statement or parameter that cannot be turned
// into literal query text.
type TranslationError struct {
	Kind   Kind
	Reason string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate %s statement: %s", e.Kind, e.Reason)
}

// Is matches ErrTranslation.
func (e *TranslationError) Is(target error) bool {
	return target == ErrTranslation
}

// MissingLabelError reports a write statement without a recognizable label.
type MissingLabelError struct {
	Statement string
}

func (e *MissingLabelError) Error() string {
	return fmt.Sprintf("no label found in statement %q", e.Statement)
}

// Is matches ErrMissingLabel.
func (e *MissingLabelError) Is(target error) bool {
	return target == ErrMissingLabel
}

// InvalidIdentifierError reports a negative or non-integer id parameter.
// Row is -1 for top-level parameters.
type InvalidIdentifierError struct {
	Param string
	Row   int
	Value any
}

func (e *InvalidIdentifierError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s must be a non-negative integer id, got %v", e.Param, e.Value)
	}
	return fmt.Sprintf("%s must be a non-negative integer id, got %v (row %d)", e.Param, e.Value, e.Row)
}

// Is matches ErrInvalidIdentifier.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}
