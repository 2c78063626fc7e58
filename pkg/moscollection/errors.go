// SPDX-License-Identifier: Apache-2.0

package moscollection

import "errors"

// ErrInvalidCollection marks a batch whose shape rules out a meaningful
// merge: wrong roCreate or roDelete counts, or mixed running order IDs.
var ErrInvalidCollection = errors.New("invalid collection")
