// SPDX-License-Identifier: Apache-2.0

package mosxml

import "errors"

var (
	// ErrInvalidXML classifies byte-level parse failures. Check with
	// errors.Is instead of string matching.
	ErrInvalidXML = errors.New("invalid XML")

	// ErrNotAChild is returned when a node to remove or replace is not a
	// current child of the given parent.
	ErrNotAChild = errors.New("node is not a child of parent")
)
