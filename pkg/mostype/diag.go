// SPDX-License-Identifier: Apache-2.0

package mostype

import "fmt"

// Class categorises a non-fatal diagnostic raised during classification or
// merging.
type Class int

const (
	// ClassSkippedMessage records a message dropped from a batch because
	// it failed to parse or classify.
	ClassSkippedMessage Class = iota

	// ClassStoryNotFound records a story reference that could not be
	// located where the message kind tolerates it.
	ClassStoryNotFound

	// ClassItemNotFound records an item reference that could not be
	// located where the message kind tolerates it.
	ClassItemNotFound

	// ClassDuplicateStory records a story insert skipped because its ID
	// already exists in the running order.
	ClassDuplicateStory

	// ClassMergeDowngraded records a fatal merge failure downgraded to a
	// warning by a lenient batch merge.
	ClassMergeDowngraded
)

func (c Class) String() string {
	switch c {
	case ClassSkippedMessage:
		return "skipped message"
	case ClassStoryNotFound:
		return "story not found"
	case ClassItemNotFound:
		return "item not found"
	case ClassDuplicateStory:
		return "duplicate story"
	case ClassMergeDowngraded:
		return "merge downgraded"
	default:
		return "unknown"
	}
}

// Diagnostic is one recoverable warning raised while classifying or merging
// a message. Fatal conditions are errors, never diagnostics.
type Diagnostic struct {
	Class     Class
	Kind      Kind
	MessageID int
	Source    string // file path, object key or other origin label, if known
	Detail    string
}

func (d Diagnostic) String() string {
	if d.MessageID != 0 {
		return fmt.Sprintf("%s: %s error in %d - %s", d.Class, d.Kind, d.MessageID, d.Detail)
	}
	return fmt.Sprintf("%s: %s", d.Class, d.Detail)
}

// Sink receives diagnostics as they are raised. A sink is threaded
// explicitly through merge calls; there is no ambient warning registry.
type Sink interface {
	Record(Diagnostic)
}

// Collector is a Sink that accumulates diagnostics for later inspection.
type Collector struct {
	diags []Diagnostic
}

// Record appends the diagnostic.
func (c *Collector) Record(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// Diagnostics returns everything recorded so far, in order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Count returns the number of recorded diagnostics of the given class.
func (c *Collector) Count(class Class) int {
	n := 0
	for _, d := range c.diags {
		if d.Class == class {
			n++
		}
	}
	return n
}

type discardSink struct{}

func (discardSink) Record(Diagnostic) {}

// Discard returns a Sink that drops every diagnostic.
func Discard() Sink { return discardSink{} }
