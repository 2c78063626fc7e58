// SPDX-License-Identifier: Apache-2.0

// Package mostype classifies MOS messages into their concrete kinds and
// implements each kind's merge algorithm against a running order.
package mostype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/bbc/mosromgr-sub000/pkg/mosxml"
)

// candidateTags is the fixed, ordered list of top-level tags the classifier
// probes. Order matters: the first matching tag decides the kind.
var candidateTags = []struct {
	tag  string
	kind Kind
}{
	{"roCreate", KindRunningOrder},
	{"roStorySend", KindStorySend},
	{"roStoryAppend", KindStoryAppend},
	{"roStoryDelete", KindStoryDelete},
	{"roStoryInsert", KindStoryInsert},
	{"roStoryMove", KindStoryMove},
	{"roStoryReplace", KindStoryReplace},
	{"roItemDelete", KindItemDelete},
	{"roItemInsert", KindItemInsert},
	{"roItemMoveMultiple", KindItemMoveMultiple},
	{"roItemReplace", KindItemReplace},
	{"roReplace", KindRunningOrderReplace},
	{"roMetadataReplace", KindMetaDataReplace},
	{"roReadyToAir", KindReadyToAir},
	{"roDelete", KindRunningOrderEnd},
	{"roElementAction", KindUnknown}, // resolved by classifyElementAction
	{"roCtrl", KindRunningOrderControl},
}

// ignoredTags are structurally valid MOS messages with no merge semantics.
// They classify to nothing and must be skipped silently, not warned.
var ignoredTags = []string{"roItemStat", "roList", "roAck"}

// Message is a single-use unit of the update stream: one parsed MOS
// document, classified into a kind, applied to a running order exactly once.
type Message struct {
	kind      Kind
	doc       *etree.Document
	base      *etree.Element
	messageID int
	roID      string
}

// FromString constructs a Message from the XML text of a MOS document.
func FromString(s string) (*Message, error) {
	doc, err := mosxml.ParseString(s)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// FromBytes constructs a Message from raw MOS document bytes.
func FromBytes(b []byte) (*Message, error) {
	doc, err := mosxml.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// FromFile constructs a Message from a path to a MOS file.
func FromFile(path string) (*Message, error) {
	doc, err := mosxml.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc *etree.Document) (*Message, error) {
	root := doc.Root()
	kind, base, err := classify(root)
	if err != nil {
		return nil, err
	}
	m := &Message{kind: kind, doc: doc, base: base}

	idText := strings.TrimSpace(mosxml.ChildText(root, "messageID"))
	if idText == "" {
		return nil, fmt.Errorf("%w: no messageID", ErrMalformedMessage)
	}
	m.messageID, err = strconv.Atoi(idText)
	if err != nil {
		return nil, fmt.Errorf("%w: messageID %q is not an integer", ErrMalformedMessage, idText)
	}
	m.roID = mosxml.ChildText(base, "roID")
	return m, nil
}

// classify inspects the document's top-level tags against the fixed
// candidate list, resolving roElementAction to its concrete variant.
func classify(root *etree.Element) (Kind, *etree.Element, error) {
	for _, candidate := range candidateTags {
		base := root.SelectElement(candidate.tag)
		if base == nil {
			continue
		}
		if candidate.tag == "roElementAction" {
			kind, err := classifyElementAction(base)
			if err != nil {
				return KindUnknown, nil, err
			}
			return kind, base, nil
		}
		return candidate.kind, base, nil
	}
	for _, tag := range ignoredTags {
		if root.SelectElement(tag) != nil {
			return KindUnknown, nil, fmt.Errorf("%w: <%s>", ErrIgnoredType, tag)
		}
	}
	return KindUnknown, nil, fmt.Errorf("%w: no recognised top-level tag", ErrUnknownType)
}

// classifyElementAction dispatches on the operation attribute and on whether
// the target reference carries an item-level identifier: presence means the
// item-scoped variant, absence the story-scoped one. DELETE and SWAP omit
// element_target entirely in their story-scoped form.
func classifyElementAction(ea *etree.Element) (Kind, error) {
	op := ea.SelectAttrValue("operation", "")
	target := ea.SelectElement("element_target")
	targetHasItem := target != nil && target.SelectElement("itemID") != nil

	switch op {
	case "REPLACE":
		if targetHasItem {
			return KindEAItemReplace, nil
		}
		return KindEAStoryReplace, nil
	case "DELETE":
		if target != nil {
			return KindEAItemDelete, nil
		}
		return KindEAStoryDelete, nil
	case "INSERT":
		if targetHasItem {
			return KindEAItemInsert, nil
		}
		return KindEAStoryInsert, nil
	case "SWAP":
		if target != nil {
			return KindEAItemSwap, nil
		}
		return KindEAStorySwap, nil
	case "MOVE":
		if targetHasItem {
			return KindEAItemMove, nil
		}
		return KindEAStoryMove, nil
	default:
		return KindUnknown, fmt.Errorf("%w: roElementAction operation %q", ErrUnknownType, op)
	}
}

// Kind returns the classified message kind.
func (m *Message) Kind() Kind { return m.kind }

// MessageID returns the globally increasing message identifier used as the
// total order key when applying a batch.
func (m *Message) MessageID() int { return m.messageID }

// ROID returns the target running order's ID.
func (m *Message) ROID() string { return m.roID }

// BaseTag returns the message's base payload element, e.g. the <roStorySend>
// inside the <mos> root.
func (m *Message) BaseTag() *etree.Element { return m.base }

// Root returns the document's root element.
func (m *Message) Root() *etree.Element { return m.doc.Root() }

// String returns the XML text of the message.
func (m *Message) String() string {
	s, err := m.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
