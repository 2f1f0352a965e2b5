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

package driver

import (
	"errors"
	"sync"
)

// TxType is the access mode a transaction was opened with.
type TxType int

const (
	ReadWrite TxType = iota
	ReadOnly
)

func (t TxType) String() string {
	if t == ReadOnly {
		return "read_only"
	}
	return "read_write"
}

// TxStatus is the lifecycle state of a Transaction.
type TxStatus int

const (
	TxOpen TxStatus = iota
	TxCommitted
	TxRolledBack
)

func (s TxStatus) String() string {
	switch s {
	case TxCommitted:
		return "committed"
	case TxRolledBack:
		return "rolled_back"
	default:
		return "open"
	}
}

// ErrTransactionClosed is returned when committing or rolling back a
// transaction that already finished.
var ErrTransactionClosed = errors.New("transaction already closed")

// Transaction tracks commit and rollback calls. Statements run through it go
// straight to the engine; nothing is buffered or undone.
type Transaction struct {
	typ TxType

	mu     sync.Mutex
	status TxStatus
}

// Type returns the access mode.
func (t *Transaction) Type() TxType { return t.typ }

// Status returns the current state.
func (t *Transaction) Status() TxStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Commit marks the transaction committed.
func (t *Transaction) Commit() error {
	return t.finish(TxCommitted)
}

// Rollback marks the transaction rolled back. Writes already sent stay.
func (t *Transaction) Rollback() error {
	return t.finish(TxRolledBack)
}

func (t *Transaction) finish(s TxStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TxOpen {
		return ErrTransactionClosed
	}
	t.status = s
	return nil
}
