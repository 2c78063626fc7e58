// SPDX-License-Identifier: Apache-2.0

// Package moselement provides read-only typed views over story and item
// fragments of a MOS document tree. Views bind lazily to the underlying
// elements and never mutate them.
package moselement

import (
	"errors"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/bbc/mosromgr-sub000/pkg/mosxml"
)

// ErrMissingID is returned by Story.ID when the fragment carries no storyID.
var ErrMissingID = errors.New("element has no ID")

// Item is a read-only view over an <item> fragment.
type Item struct {
	el *etree.Element
	id string
}

// NewItem wraps an item fragment.
func NewItem(el *etree.Element) *Item {
	return &Item{el: el}
}

// NewItemWithID wraps a fragment that only references an item by ID, such as
// a deletion target.
func NewItemWithID(el *etree.Element, id string) *Item {
	return &Item{el: el, id: id}
}

// XML returns the underlying element.
func (it *Item) XML() *etree.Element { return it.el }

// ID returns the item ID, or "" when absent.
func (it *Item) ID() string {
	if it.id != "" {
		return it.id
	}
	return mosxml.ChildText(it.el, "itemID")
}

// Slug returns the item slug, or "" when absent.
func (it *Item) Slug() string { return mosxml.ChildText(it.el, "itemSlug") }

// Type returns the item's object type, or "" when absent.
func (it *Item) Type() string { return mosxml.ChildText(it.el, "objType") }

// ObjectID returns the item's object ID, or "" when absent.
func (it *Item) ObjectID() string { return mosxml.ChildText(it.el, "objID") }

// MosID returns the item's MOS ID, or "" when absent.
func (it *Item) MosID() string { return mosxml.ChildText(it.el, "mosID") }

// Note returns the free-text note carried in a nested studio command
// payload, or "" when any link in the chain is missing.
func (it *Item) Note() string {
	note := it.el.FindElement("mosExternalMetadata/mosPayload//studioCommand[@type='note']/text")
	if note == nil {
		return ""
	}
	return note.Text()
}

// Story is a read-only view over a <story> fragment. A story constructed
// with UnknownItems reports no item detail at all, distinguishing "no items"
// from "items not carried by this fragment".
type Story struct {
	el           *etree.Element
	id           string
	unknownItems bool
	offsets      map[string]float64
	progStart    time.Time
	hasProgStart bool
}

// StoryOption configures a Story view.
type StoryOption func(*Story)

// WithID overrides the ID of a story referenced only by ID.
func WithID(id string) StoryOption {
	return func(s *Story) { s.id = id }
}

// WithUnknownItems marks the fragment as carrying no item detail.
func WithUnknownItems() StoryOption {
	return func(s *Story) { s.unknownItems = true }
}

// WithRunningOrderContext supplies the sibling stories and programme edit
// start time needed to compute running offsets and transmission times.
func WithRunningOrderContext(allStories []*etree.Element, progStart time.Time) StoryOption {
	return func(s *Story) {
		s.offsets = storyOffsets(allStories)
		s.progStart = progStart
		s.hasProgStart = !progStart.IsZero()
	}
}

// NewStory wraps a story fragment.
func NewStory(el *etree.Element, opts ...StoryOption) *Story {
	s := &Story{el: el}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// XML returns the underlying element.
func (s *Story) XML() *etree.Element { return s.el }

// ID returns the story ID. Unlike item IDs a story ID is required, so a
// missing one is an error rather than an empty value.
func (s *Story) ID() (string, error) {
	if s.id != "" {
		return s.id, nil
	}
	id := mosxml.ChildText(s.el, "storyID")
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

// Slug returns the story slug, or "" when absent.
func (s *Story) Slug() string { return mosxml.ChildText(s.el, "storySlug") }

// Items returns the item views within the story, or nil when the fragment is
// known to omit item detail.
func (s *Story) Items() []*Item {
	if s.unknownItems {
		return nil
	}
	tags := s.el.SelectElements("item")
	items := make([]*Item, 0, len(tags))
	for _, tag := range tags {
		items = append(items, NewItem(tag))
	}
	return items
}

// Duration returns the story duration in seconds: an explicit StoryDuration
// payload field when present, otherwise the sum of TextTime and MediaTime.
// The second return is false when the payload carries neither.
func (s *Story) Duration() (float64, bool) {
	return storyDuration(s.el)
}

// Offset returns the story's running offset in seconds from the programme
// edit start, summed over the preceding sibling stories. Only available when
// the view was built with running order context.
func (s *Story) Offset() (float64, bool) {
	if s.offsets == nil {
		return 0, false
	}
	id, err := s.ID()
	if err != nil {
		return 0, false
	}
	off, ok := s.offsets[mosxml.LastIDSegment(id)]
	return off, ok
}

// StartTime returns the story's transmission start time: the explicit
// StoryStarted payload field when present, otherwise the programme start
// plus the story's running offset.
func (s *Story) StartTime() (time.Time, bool) {
	if t, ok := payloadTime(s.el, "StoryStarted"); ok {
		return t, true
	}
	off, ok := s.Offset()
	if !ok || !s.hasProgStart {
		return time.Time{}, false
	}
	return s.progStart.Add(secondsToDuration(off)), true
}

// EndTime returns the story's transmission end time: the explicit
// StoryEnded payload field when present, otherwise the start time plus the
// story duration.
func (s *Story) EndTime() (time.Time, bool) {
	if t, ok := payloadTime(s.el, "StoryEnded"); ok {
		return t, true
	}
	start, ok := s.StartTime()
	if !ok {
		return time.Time{}, false
	}
	dur, ok := s.Duration()
	if !ok {
		return time.Time{}, false
	}
	return start.Add(secondsToDuration(dur)), true
}

// Script returns the non-empty paragraph texts in the story body, excluding
// technical notes wrapped in round or angle brackets.
func (s *Story) Script() []string {
	var script []string
	for _, p := range s.el.SelectElements("p") {
		text := strings.TrimSpace(p.Text())
		if text == "" || isTechnicalNote(text) {
			continue
		}
		script = append(script, text)
	}
	return script
}

// BodyEntry is one element of a story body: either a paragraph of text or an
// item. Item is non-nil when the entry is an <item>.
type BodyEntry struct {
	Paragraph string
	Item      *Item
}

// Body returns the interleaved paragraph and item sequence of the story
// body. Unlike Script, empty paragraphs are kept (as empty strings).
func (s *Story) Body() []BodyEntry {
	var body []BodyEntry
	for _, tag := range s.el.ChildElements() {
		switch tag.Tag {
		case "item":
			body = append(body, BodyEntry{Item: NewItem(tag)})
		case "p":
			body = append(body, BodyEntry{Paragraph: tag.Text()})
		}
	}
	return body
}

func isTechnicalNote(text string) bool {
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		return true
	}
	return strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">")
}
