// SPDX-License-Identifier: Apache-2.0

package mostype

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/bbc/mosromgr-sub000/internal/log"
	"github.com/bbc/mosromgr-sub000/pkg/mosxml"
)

var logger = log.WithComponent("mostype")

// Merge applies this message to the running order, mutating it in place.
// Fragments move out of the message tree into the running order tree, so a
// message is consumed by a successful merge and must not be reused.
//
// Every kind resolves all of its references before mutating anything: a
// fatal failure leaves the running order unchanged. Tolerated missing
// references are recorded on the sink and skipped.
func (m *Message) Merge(ro *RunningOrder, sink Sink) error {
	if sink == nil {
		sink = Discard()
	}
	if ro.Completed() && m.kind != KindRunningOrderControl {
		return fmt.Errorf("%w: message %d", ErrCompletedMerge, m.messageID)
	}
	switch m.kind {
	case KindStorySend:
		return m.mergeStorySend(ro, sink)
	case KindMetaDataReplace:
		return m.mergeMetaDataReplace(ro)
	case KindStoryAppend:
		return m.mergeStoryAppend(ro)
	case KindStoryDelete:
		return m.mergeStoryDelete(ro, sink)
	case KindStoryInsert:
		return m.mergeStoryInsert(ro)
	case KindStoryMove:
		return m.mergeStoryMove(ro)
	case KindStoryReplace:
		return m.mergeStoryReplace(ro)
	case KindItemDelete:
		return m.mergeItemDelete(ro, sink)
	case KindItemInsert:
		return m.mergeItemInsert(ro)
	case KindItemMoveMultiple:
		return m.mergeItemMoveMultiple(ro)
	case KindItemReplace:
		return m.mergeItemReplace(ro, sink)
	case KindRunningOrderReplace:
		return m.mergeRunningOrderReplace(ro)
	case KindRunningOrderEnd:
		return m.mergeRunningOrderEnd(ro)
	case KindRunningOrderControl:
		return m.mergeRunningOrderControl(ro, sink)
	case KindReadyToAir:
		// Recognised but carries nothing to merge.
		return nil
	case KindEAStoryReplace:
		return m.mergeEAStoryReplace(ro)
	case KindEAItemReplace:
		return m.mergeEAItemReplace(ro, sink)
	case KindEAStoryDelete:
		return m.mergeEAStoryDelete(ro, sink)
	case KindEAItemDelete:
		return m.mergeEAItemDelete(ro, sink)
	case KindEAStoryInsert:
		return m.mergeEAStoryInsert(ro, sink)
	case KindEAItemInsert:
		return m.mergeEAItemInsert(ro)
	case KindEAStorySwap:
		return m.mergeEAStorySwap(ro)
	case KindEAItemSwap:
		return m.mergeEAItemSwap(ro)
	case KindEAStoryMove:
		return m.mergeEAStoryMove(ro)
	case KindEAItemMove:
		return m.mergeEAItemMove(ro)
	default:
		return m.mergeErr("%s does not support merging", m.kind)
	}
}

func (m *Message) mergeErr(format string, args ...any) error {
	return &MergeError{Kind: m.kind, MessageID: m.messageID, Reason: fmt.Sprintf(format, args...)}
}

func (m *Message) warn(sink Sink, class Class, format string, args ...any) {
	detail := fmt.Sprintf(format, args...)
	logger.Warn().
		Str(log.FieldKind, m.kind.String()).
		Int(log.FieldMessageID, m.messageID).
		Msg(detail)
	sink.Record(Diagnostic{Class: class, Kind: m.kind, MessageID: m.messageID, Detail: detail})
}

// storySendAsStory converts the roStorySend payload shape into a standard
// story fragment: the base tag becomes <story>, <storyItem> children of
// <storyBody> become <item>, and the body's children are hoisted into the
// story in the body's place. Works on a copy so the message is preserved.
func (m *Message) storySendAsStory() *etree.Element {
	story := m.base.Copy()
	story.Tag = "story"
	body, bodyIndex := mosxml.FindChild(story, "storyBody", "")
	if body == nil {
		return story
	}
	for _, item := range body.SelectElements("storyItem") {
		item.Tag = "item"
	}
	index := bodyIndex
	for _, child := range body.ChildElements() {
		mosxml.InsertNode(story, child, index)
		index++
	}
	_ = mosxml.RemoveNode(story, body)
	return story
}

func (m *Message) mergeStorySend(ro *RunningOrder, sink Sink) error {
	storyID := mosxml.ChildText(m.base, "storyID")
	story, index := ro.findStory(storyID)
	if story == nil {
		m.warn(sink, ClassStoryNotFound, "story not found")
		return nil
	}
	replacement := m.storySendAsStory()
	return mosxml.ReplaceNode(ro.BaseTag(), story, replacement, index)
}

func (m *Message) mergeMetaDataReplace(ro *RunningOrder) error {
	base := ro.BaseTag()
	type replacement struct {
		target, source *etree.Element
		index          int
	}
	var replacements []replacement
	for _, source := range m.base.ChildElements() {
		if strings.TrimSpace(source.Text()) == "" && len(source.ChildElements()) == 0 {
			continue
		}
		target, index := mosxml.FindChild(base, source.Tag, "")
		if target == nil {
			return m.mergeErr("%s not found", source.Tag)
		}
		replacements = append(replacements, replacement{target, source, index})
	}
	for _, r := range replacements {
		if err := mosxml.ReplaceNode(base, r.target, r.source, r.index); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) mergeStoryAppend(ro *RunningOrder) error {
	stories := m.base.SelectElements("story")
	if len(stories) == 0 {
		return m.mergeErr("no stories to append")
	}
	for _, story := range stories {
		mosxml.AppendNode(ro.BaseTag(), story)
	}
	return nil
}

func (m *Message) mergeStoryDelete(ro *RunningOrder, sink Sink) error {
	storyIDs := m.base.SelectElements("storyID")
	if len(storyIDs) == 0 {
		return m.mergeErr("no stories to delete")
	}
	for _, id := range storyIDs {
		story, _ := ro.findStory(id.Text())
		if story == nil {
			m.warn(sink, ClassStoryNotFound, "story not found")
			continue
		}
		if err := mosxml.RemoveNode(ro.BaseTag(), story); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) mergeStoryInsert(ro *RunningOrder) error {
	targetID := mosxml.ChildText(m.base, "storyID")
	if targetID == "" {
		return m.mergeErr("no target storyID")
	}
	target, index := ro.findStory(targetID)
	if target == nil {
		return m.mergeErr("target story not found")
	}
	stories := m.base.SelectElements("story")
	if len(stories) == 0 {
		return m.mergeErr("no story to insert")
	}
	for _, story := range stories {
		mosxml.InsertNode(ro.BaseTag(), story, index)
		index++
	}
	return nil
}

func (m *Message) mergeStoryMove(ro *RunningOrder) error {
	storyIDs := m.base.SelectElements("storyID")
	if len(storyIDs) < 2 {
		return m.mergeErr("no storyIDs in MOS message")
	}
	// Fixed order: first ID is the source, second the target.
	target, targetIndex := ro.findStory(storyIDs[1].Text())
	if target == nil {
		return m.mergeErr("target storyID not found")
	}
	source, _ := ro.findStory(storyIDs[0].Text())
	if source == nil {
		return m.mergeErr("storyID not found")
	}
	if err := mosxml.RemoveNode(ro.BaseTag(), source); err != nil {
		return err
	}
	mosxml.InsertNode(ro.BaseTag(), source, targetIndex)
	return nil
}

func (m *Message) mergeStoryReplace(ro *RunningOrder) error {
	targetID := mosxml.ChildText(m.base, "storyID")
	if targetID == "" {
		return m.mergeErr("no target storyID")
	}
	target, index := ro.findStory(targetID)
	if target == nil {
		return m.mergeErr("target story not found")
	}
	stories := m.base.SelectElements("story")
	if len(stories) == 0 {
		return m.mergeErr("no story to insert")
	}
	if err := mosxml.RemoveNode(ro.BaseTag(), target); err != nil {
		return err
	}
	for _, story := range stories {
		mosxml.InsertNode(ro.BaseTag(), story, index)
		index++
	}
	return nil
}

func (m *Message) mergeItemDelete(ro *RunningOrder, sink Sink) error {
	storyID := mosxml.ChildText(m.base, "storyID")
	if storyID == "" {
		return m.mergeErr("no story to delete item from")
	}
	story, _ := ro.findStory(storyID)
	if story == nil {
		return m.mergeErr("story not found")
	}
	itemIDs := m.base.SelectElements("itemID")
	if len(itemIDs) == 0 {
		return m.mergeErr("no items to delete")
	}
	for _, id := range itemIDs {
		item, _ := mosxml.FindChild(story, "item", id.Text())
		if item == nil {
			m.warn(sink, ClassItemNotFound, "item not found")
			continue
		}
		if err := mosxml.RemoveNode(story, item); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) mergeItemInsert(ro *RunningOrder) error {
	storyID := mosxml.ChildText(m.base, "storyID")
	if storyID == "" {
		return m.mergeErr("no target storyID")
	}
	story, _ := ro.findStory(storyID)
	if story == nil {
		return m.mergeErr("target story not found")
	}
	items := m.base.SelectElements("item")
	if len(items) == 0 {
		return m.mergeErr("no item to insert")
	}
	index := itemInsertIndex(story, mosxml.ChildText(m.base, "itemID"))
	for _, item := range items {
		mosxml.InsertNode(story, item, index)
		index++
	}
	return nil
}

// itemInsertIndex resolves where items go within a story: above the target
// item when one is named and present, otherwise appended at the story end.
// An absent or empty target item ID always means append.
func itemInsertIndex(story *etree.Element, targetItemID string) int {
	if targetItemID != "" {
		if _, index := mosxml.FindChild(story, "item", targetItemID); index >= 0 {
			return index
		}
	}
	// Indices count all child elements, so the child count appends.
	return len(story.ChildElements())
}

func (m *Message) mergeItemMoveMultiple(ro *RunningOrder) error {
	storyID := mosxml.ChildText(m.base, "storyID")
	if storyID == "" {
		return m.mergeErr("no target storyID")
	}
	story, _ := ro.findStory(storyID)
	if story == nil {
		return m.mergeErr("target story not found")
	}
	itemIDs := m.base.SelectElements("itemID")
	if len(itemIDs) < 2 {
		return m.mergeErr("no items to move")
	}
	// Last-listed ID is the target, the rest are sources in move order.
	target, targetIndex := mosxml.FindChild(story, "item", itemIDs[len(itemIDs)-1].Text())
	if target == nil {
		return m.mergeErr("target item not found")
	}
	sources := make([]*etree.Element, 0, len(itemIDs)-1)
	for _, id := range itemIDs[:len(itemIDs)-1] {
		source, _ := mosxml.FindChild(story, "item", id.Text())
		if source == nil {
			return m.mergeErr("source item not found")
		}
		sources = append(sources, source)
	}
	for i, source := range sources {
		if err := mosxml.RemoveNode(story, source); err != nil {
			return err
		}
		mosxml.InsertNode(story, source, targetIndex+i)
	}
	return nil
}

func (m *Message) mergeItemReplace(ro *RunningOrder, sink Sink) error {
	storyID := mosxml.ChildText(m.base, "storyID")
	if storyID == "" {
		return m.mergeErr("no target storyID")
	}
	story, _ := ro.findStory(storyID)
	if story == nil {
		m.warn(sink, ClassStoryNotFound, "story not found")
		return nil
	}
	itemID := mosxml.ChildText(m.base, "itemID")
	if itemID == "" {
		return m.mergeErr("no target itemID")
	}
	item, index := mosxml.FindChild(story, "item", itemID)
	if item == nil {
		return m.mergeErr("item not found")
	}
	if err := mosxml.RemoveNode(story, item); err != nil {
		return err
	}
	for _, replacement := range m.base.SelectElements("item") {
		mosxml.InsertNode(story, replacement, index)
		index++
	}
	return nil
}

func (m *Message) mergeRunningOrderReplace(ro *RunningOrder) error {
	current, index := mosxml.FindChild(ro.Root(), "roCreate", "")
	if current == nil {
		return m.mergeErr("roCreate not found")
	}
	replacement := m.base.Copy()
	replacement.Tag = "roCreate"
	return mosxml.ReplaceNode(ro.Root(), current, replacement, index)
}

func (m *Message) mergeRunningOrderEnd(ro *RunningOrder) error {
	meta := ro.Root().CreateElement(metaTag)
	meta.AddChild(m.base)
	return nil
}

// mergeRunningOrderControl upserts the story's metadata payload fields from
// the roCtrl message: existing tags are replaced in place, new ones
// appended. roCtrl is the one kind still accepted after closure.
func (m *Message) mergeRunningOrderControl(ro *RunningOrder, sink Sink) error {
	story, _ := ro.findStory(mosxml.ChildText(m.base, "storyID"))
	if story == nil {
		m.warn(sink, ClassStoryNotFound, "story not found")
		return nil
	}
	payload := story.FindElement("mosExternalMetadata/mosPayload")
	if payload == nil {
		return m.mergeErr("story has no mosPayload")
	}
	source := m.base.FindElement("mosExternalMetadata/mosPayload")
	if source == nil {
		return m.mergeErr("no mosPayload in MOS message")
	}
	for _, field := range source.ChildElements() {
		if strings.TrimSpace(field.Text()) == "" {
			continue
		}
		existing, index := mosxml.FindChild(payload, field.Tag, "")
		if existing == nil {
			mosxml.AppendNode(payload, field)
			continue
		}
		if err := mosxml.ReplaceNode(payload, existing, field, index); err != nil {
			return err
		}
	}
	return nil
}

// elementAction returns the target and source references of an
// roElementAction payload.
func (m *Message) elementAction() (target, source *etree.Element) {
	return m.base.SelectElement("element_target"), m.base.SelectElement("element_source")
}

func (m *Message) mergeEAStoryReplace(ro *RunningOrder) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	story, index := ro.findStory(mosxml.ChildText(target, "storyID"))
	if story == nil {
		return m.mergeErr("story not found")
	}
	replacements := source.SelectElements("story")
	if len(replacements) == 0 {
		return m.mergeErr("no source stories found")
	}
	if err := mosxml.RemoveNode(ro.BaseTag(), story); err != nil {
		return err
	}
	for _, replacement := range replacements {
		mosxml.InsertNode(ro.BaseTag(), replacement, index)
		index++
	}
	return nil
}

func (m *Message) mergeEAItemReplace(ro *RunningOrder, sink Sink) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	story, _ := ro.findStory(mosxml.ChildText(target, "storyID"))
	if story == nil {
		m.warn(sink, ClassStoryNotFound, "story not found")
		return nil
	}
	item, index := mosxml.FindChild(story, "item", mosxml.ChildText(target, "itemID"))
	if item == nil {
		m.warn(sink, ClassItemNotFound, "item not found")
		return nil
	}
	replacements := source.SelectElements("item")
	if len(replacements) == 0 {
		return m.mergeErr("no source items found")
	}
	if err := mosxml.RemoveNode(story, item); err != nil {
		return err
	}
	for _, replacement := range replacements {
		mosxml.InsertNode(story, replacement, index)
		index++
	}
	return nil
}

func (m *Message) mergeEAStoryDelete(ro *RunningOrder, sink Sink) error {
	_, source := m.elementAction()
	if source == nil {
		return m.mergeErr("missing element_source")
	}
	for _, id := range source.SelectElements("storyID") {
		story, _ := ro.findStory(id.Text())
		if story == nil {
			m.warn(sink, ClassStoryNotFound, "story not found")
			continue
		}
		if err := mosxml.RemoveNode(ro.BaseTag(), story); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) mergeEAItemDelete(ro *RunningOrder, sink Sink) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	story, _ := ro.findStory(mosxml.ChildText(target, "storyID"))
	if story == nil {
		return m.mergeErr("story not found")
	}
	for _, id := range source.SelectElements("itemID") {
		item, _ := mosxml.FindChild(story, "item", id.Text())
		if item == nil {
			m.warn(sink, ClassItemNotFound, "item not found")
			continue
		}
		if err := mosxml.RemoveNode(story, item); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) mergeEAStoryInsert(ro *RunningOrder, sink Sink) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	_, index := ro.findStory(mosxml.ChildText(target, "storyID"))
	if index < 0 {
		return m.mergeErr("target story not found")
	}
	inserts := source.SelectElements("story")
	if len(inserts) == 0 {
		return m.mergeErr("no source stories found")
	}
	existing := map[string]bool{}
	for _, story := range ro.BaseTag().SelectElements("story") {
		existing[mosxml.ChildText(story, "storyID")] = true
	}
	for _, story := range inserts {
		if existing[mosxml.ChildText(story, "storyID")] {
			m.warn(sink, ClassDuplicateStory, "story already found in running order")
			continue
		}
		mosxml.InsertNode(ro.BaseTag(), story, index)
		index++
	}
	return nil
}

func (m *Message) mergeEAItemInsert(ro *RunningOrder) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	story, _ := ro.findStory(mosxml.ChildText(target, "storyID"))
	if story == nil {
		return m.mergeErr("story not found")
	}
	index := itemInsertIndex(story, mosxml.ChildText(target, "itemID"))
	for _, item := range source.SelectElements("item") {
		mosxml.InsertNode(story, item, index)
		index++
	}
	return nil
}

func (m *Message) mergeEAStorySwap(ro *RunningOrder) error {
	_, source := m.elementAction()
	if source == nil {
		return m.mergeErr("missing element_source")
	}
	storyIDs := source.SelectElements("storyID")
	if len(storyIDs) < 2 {
		return m.mergeErr("two storyIDs required")
	}
	story1, index1 := ro.findStory(storyIDs[0].Text())
	if story1 == nil {
		return m.mergeErr("story 1 not found")
	}
	story2, index2 := ro.findStory(storyIDs[1].Text())
	if story2 == nil {
		return m.mergeErr("story 2 not found")
	}
	return swapNodes(ro.BaseTag(), story1, index1, story2, index2)
}

func (m *Message) mergeEAItemSwap(ro *RunningOrder) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	story, _ := ro.findStory(mosxml.ChildText(target, "storyID"))
	if story == nil {
		return m.mergeErr("story not found")
	}
	itemIDs := source.SelectElements("itemID")
	if len(itemIDs) < 2 {
		return m.mergeErr("two itemIDs required")
	}
	item1, index1 := mosxml.FindChild(story, "item", itemIDs[0].Text())
	if item1 == nil {
		return m.mergeErr("item 1 not found")
	}
	item2, index2 := mosxml.FindChild(story, "item", itemIDs[1].Text())
	if item2 == nil {
		return m.mergeErr("item 2 not found")
	}
	return swapNodes(story, item1, index1, item2, index2)
}

// swapNodes exchanges two children: both are detached, then each is
// reinserted at the other's original index, lower position first so the
// second insertion's index is still valid. Applying the same swap twice
// restores the original order.
func swapNodes(parent, node1 *etree.Element, index1 int, node2 *etree.Element, index2 int) error {
	if index1 > index2 {
		node1, node2 = node2, node1
		index1, index2 = index2, index1
	}
	if err := mosxml.RemoveNode(parent, node1); err != nil {
		return err
	}
	if err := mosxml.RemoveNode(parent, node2); err != nil {
		return err
	}
	mosxml.InsertNode(parent, node2, index1)
	mosxml.InsertNode(parent, node1, index2)
	return nil
}

func (m *Message) mergeEAStoryMove(ro *RunningOrder) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	targetStory, targetIndex := ro.findStory(mosxml.ChildText(target, "storyID"))
	if targetStory == nil {
		return m.mergeErr("target story not found")
	}
	var sources []*etree.Element
	for _, id := range source.SelectElements("storyID") {
		story, _ := ro.findStory(id.Text())
		if story == nil {
			return m.mergeErr("source story not found")
		}
		sources = append(sources, story)
	}
	for i, story := range sources {
		if err := mosxml.RemoveNode(ro.BaseTag(), story); err != nil {
			return err
		}
		mosxml.InsertNode(ro.BaseTag(), story, targetIndex+i)
	}
	return nil
}

func (m *Message) mergeEAItemMove(ro *RunningOrder) error {
	target, source := m.elementAction()
	if target == nil || source == nil {
		return m.mergeErr("missing element_target or element_source")
	}
	story, _ := ro.findStory(mosxml.ChildText(target, "storyID"))
	if story == nil {
		return m.mergeErr("story not found")
	}
	targetItem, targetIndex := mosxml.FindChild(story, "item", mosxml.ChildText(target, "itemID"))
	if targetItem == nil {
		return m.mergeErr("target item not found")
	}
	var sources []*etree.Element
	for _, id := range source.SelectElements("itemID") {
		item, _ := mosxml.FindChild(story, "item", id.Text())
		if item == nil {
			return m.mergeErr("source item not found")
		}
		sources = append(sources, item)
	}
	for i, item := range sources {
		if err := mosxml.RemoveNode(story, item); err != nil {
			return err
		}
		mosxml.InsertNode(story, item, targetIndex+i)
	}
	return nil
}
