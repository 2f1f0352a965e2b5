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

import "regexp"

var (
	quotedLabelPattern = regexp.MustCompile(":`(\\w+)`\\s*(?:\\)|\\]|\\{)")
	plainLabelPattern  = regexp.MustCompile(`:(\w+)\s*(?:\)|\]|\{)`)
)

// ExtractLabel returns the first label or relationship type in text,
// preferring the backtick-quoted form.
func ExtractLabel(text string) (string, error) {
	if m := quotedLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}
	if m := plainLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}
	return "", &MissingLabelError{Statement: text}
}
