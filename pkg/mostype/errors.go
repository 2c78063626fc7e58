// SPDX-License-Identifier: Apache-2.0

package mostype

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType classifies well-formed XML whose top-level shape
	// matches no recognised MOS message type. Distinct from a byte-level
	// parse failure (mosxml.ErrInvalidXML).
	ErrUnknownType = errors.New("unknown MOS message type")

	// ErrIgnoredType classifies structurally valid MOS messages that carry
	// no merge semantics (roItemStat, roList, roAck). Callers skip these
	// silently rather than warning.
	ErrIgnoredType = errors.New("ignored MOS message type")

	// ErrMalformedMessage classifies a recognised message missing a
	// required field such as messageID.
	ErrMalformedMessage = errors.New("malformed MOS message")

	// ErrCompletedMerge is returned for any merge attempted after a
	// terminal roDelete has been applied.
	ErrCompletedMerge = errors.New("cannot merge into completed running order")

	// ErrMerge is the class all fatal merge failures wrap; check with
	// errors.Is. The concrete value is always a *MergeError.
	ErrMerge = errors.New("merge failed")
)

// MergeError is a fatal merge failure: a required reference was missing and
// the message kind defines no partial-success behaviour. The running order
// is left unchanged.
type MergeError struct {
	Kind      Kind
	MessageID int
	Reason    string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%s error in %d - %s", e.Kind, e.MessageID, e.Reason)
}

func (e *MergeError) Unwrap() error { return ErrMerge }
