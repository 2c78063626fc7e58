// SPDX-License-Identifier: Apache-2.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldMessageID = "message_id"
	FieldRoID      = "ro_id"
	FieldStoryID   = "story_id"
	FieldItemID    = "item_id"

	// Classification fields
	FieldKind      = "kind"
	FieldComponent = "component"
	FieldSource    = "source"

	// Retrieval fields
	FieldPath   = "path"
	FieldBucket = "bucket"
	FieldPrefix = "prefix"
	FieldKey    = "key"

	// Batch fields
	FieldCount = "count"
)
