// SPDX-License-Identifier: Apache-2.0

package mostype

import (
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"

	"github.com/bbc/mosromgr-sub000/pkg/moselement"
	"github.com/bbc/mosromgr-sub000/pkg/mosxml"
)

// metaTag marks a closed running order. The terminal roDelete fragment is
// attached under it rather than discarding any data.
const metaTag = "mosromgrmeta"

// RunningOrder is the aggregate on-air document being incrementally built.
// It is established from a single roCreate message, mutated in place by each
// merged message, and closed by a terminal roDelete. Not safe for concurrent
// mutation; callers owning several running orders may merge them in parallel
// since each is an independent tree.
type RunningOrder struct {
	doc *etree.Document
}

// NewRunningOrder establishes a running order from a roCreate message,
// consuming the message's tree.
func NewRunningOrder(m *Message) (*RunningOrder, error) {
	if m.kind != KindRunningOrder {
		return nil, fmt.Errorf("%w: cannot create running order from %s", ErrMalformedMessage, m.kind)
	}
	return &RunningOrder{doc: m.doc}, nil
}

// Root returns the document's root element.
func (ro *RunningOrder) Root() *etree.Element { return ro.doc.Root() }

// BaseTag returns the roCreate element holding the story list. Looked up on
// every call: a RunningOrderReplace merge swaps the element out.
func (ro *RunningOrder) BaseTag() *etree.Element {
	return ro.doc.Root().SelectElement("roCreate")
}

// ROID returns the running order ID.
func (ro *RunningOrder) ROID() string {
	return mosxml.ChildText(ro.BaseTag(), "roID")
}

// Slug returns the running order slug.
func (ro *RunningOrder) Slug() string {
	return mosxml.ChildText(ro.BaseTag(), "roSlug")
}

// MessageID returns the message ID the running order was created from.
func (ro *RunningOrder) MessageID() (int, bool) {
	id := mosxml.ChildText(ro.Root(), "messageID")
	var n int
	if _, err := fmt.Sscanf(id, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// Completed reports whether a terminal roDelete has been merged. Once true,
// further merges are rejected.
func (ro *RunningOrder) Completed() bool {
	return ro.Root().SelectElement(metaTag) != nil
}

// Stories returns views over the stories in running order, carrying the
// context needed to compute offsets and transmission times.
func (ro *RunningOrder) Stories() []*moselement.Story {
	tags := ro.BaseTag().SelectElements("story")
	start, _ := ro.StartTime()
	stories := make([]*moselement.Story, 0, len(tags))
	for _, tag := range tags {
		stories = append(stories, moselement.NewStory(tag,
			moselement.WithRunningOrderContext(tags, start)))
	}
	return stories
}

// StartTime returns the transmission start time from the roEdStart field.
func (ro *RunningOrder) StartTime() (time.Time, bool) {
	return moselement.ParseTime(mosxml.ChildText(ro.BaseTag(), "roEdStart"))
}

// EndTime returns the end time of the final story.
func (ro *RunningOrder) EndTime() (time.Time, bool) {
	stories := ro.Stories()
	if len(stories) == 0 {
		return time.Time{}, false
	}
	return stories[len(stories)-1].EndTime()
}

// Duration returns the total running order duration in seconds.
func (ro *RunningOrder) Duration() float64 {
	var total float64
	for _, story := range ro.Stories() {
		if d, ok := story.Duration(); ok {
			total += d
		}
	}
	return total
}

// findStory locates a story by ID among the running order's children.
func (ro *RunningOrder) findStory(id string) (*etree.Element, int) {
	return mosxml.FindChild(ro.BaseTag(), "story", id)
}

// String returns the XML text of the running order document.
func (ro *RunningOrder) String() string {
	s, err := ro.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

// Bytes serializes the running order document. Fragments untouched by
// merges round-trip byte for byte.
func (ro *RunningOrder) Bytes() ([]byte, error) {
	return ro.doc.WriteToBytes()
}

// WriteTo serializes the running order document to w.
func (ro *RunningOrder) WriteTo(w io.Writer) (int64, error) {
	return ro.doc.WriteTo(w)
}
