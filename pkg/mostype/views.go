// SPDX-License-Identifier: Apache-2.0

package mostype

import (
	"github.com/beevik/etree"

	"github.com/bbc/mosromgr-sub000/pkg/moselement"
)

// Story returns the single story view a message carries, where the kind has
// one: the converted payload of a StorySend, or the story a roCtrl message
// relates to. Nil for every other kind.
func (m *Message) Story() *moselement.Story {
	switch m.kind {
	case KindStorySend:
		return moselement.NewStory(m.storySendAsStory())
	case KindRunningOrderControl:
		return moselement.NewStory(m.base)
	default:
		return nil
	}
}

// Stories returns the story views a message carries in bulk: payload
// fragments for appends, ID-only references for deletes and swaps.
func (m *Message) Stories() []*moselement.Story {
	switch m.kind {
	case KindStoryAppend:
		return storyViews(m.base.SelectElements("story"))
	case KindStoryDelete:
		return storyRefViews(m.base, m.base.SelectElements("storyID"))
	case KindEAStoryDelete, KindEAStorySwap:
		_, source := m.elementAction()
		if source == nil {
			return nil
		}
		return storyRefViews(source, source.SelectElements("storyID"))
	default:
		return nil
	}
}

// TargetStory returns the story the operation is aimed at: the one being
// replaced, deleted from, inserted above or moved to. The fragment is a
// reference only, so item detail is unknown.
func (m *Message) TargetStory() *moselement.Story {
	switch m.kind {
	case KindStoryInsert, KindStoryReplace, KindItemDelete, KindItemInsert,
		KindItemMoveMultiple, KindItemReplace:
		return moselement.NewStory(m.base, moselement.WithUnknownItems())
	case KindStoryMove:
		ids := m.base.SelectElements("storyID")
		if len(ids) < 2 {
			return nil
		}
		return moselement.NewStory(m.base,
			moselement.WithID(ids[1].Text()), moselement.WithUnknownItems())
	case KindEAStoryReplace, KindEAItemReplace, KindEAItemDelete, KindEAStoryInsert,
		KindEAItemInsert, KindEAItemSwap, KindEAStoryMove, KindEAItemMove:
		target, _ := m.elementAction()
		if target == nil {
			return nil
		}
		return moselement.NewStory(target, moselement.WithUnknownItems())
	default:
		return nil
	}
}

// SourceStories returns the new or moved story fragments an operation
// supplies.
func (m *Message) SourceStories() []*moselement.Story {
	switch m.kind {
	case KindStoryInsert, KindStoryReplace:
		return storyViews(m.base.SelectElements("story"))
	case KindStoryMove:
		ids := m.base.SelectElements("storyID")
		if len(ids) < 2 {
			return nil
		}
		return []*moselement.Story{moselement.NewStory(m.base, moselement.WithID(ids[0].Text()))}
	case KindEAStoryReplace, KindEAStoryInsert:
		_, source := m.elementAction()
		if source == nil {
			return nil
		}
		return storyViews(source.SelectElements("story"))
	case KindEAStoryMove:
		_, source := m.elementAction()
		if source == nil {
			return nil
		}
		return storyRefViews(source, source.SelectElements("storyID"))
	default:
		return nil
	}
}

// TargetItem returns the item an operation replaces or inserts above, when
// the kind names one.
func (m *Message) TargetItem() *moselement.Item {
	switch m.kind {
	case KindItemInsert, KindItemReplace:
		return moselement.NewItem(m.base)
	case KindItemMoveMultiple:
		ids := m.base.SelectElements("itemID")
		if len(ids) == 0 {
			return nil
		}
		return moselement.NewItemWithID(m.base, ids[len(ids)-1].Text())
	case KindEAItemReplace, KindEAItemInsert, KindEAItemMove:
		target, _ := m.elementAction()
		if target == nil {
			return nil
		}
		return moselement.NewItem(target)
	default:
		return nil
	}
}

// SourceItems returns the new, moved or referenced item fragments an
// operation supplies.
func (m *Message) SourceItems() []*moselement.Item {
	switch m.kind {
	case KindItemInsert, KindItemReplace:
		return itemViews(m.base.SelectElements("item"))
	case KindItemDelete:
		return itemRefViews(m.base, m.base.SelectElements("itemID"))
	case KindItemMoveMultiple:
		ids := m.base.SelectElements("itemID")
		if len(ids) < 2 {
			return nil
		}
		return itemRefViews(m.base, ids[:len(ids)-1])
	case KindEAItemReplace, KindEAItemInsert:
		_, source := m.elementAction()
		if source == nil {
			return nil
		}
		return itemViews(source.SelectElements("item"))
	case KindEAItemDelete, KindEAItemSwap, KindEAItemMove:
		_, source := m.elementAction()
		if source == nil {
			return nil
		}
		return itemRefViews(source, source.SelectElements("itemID"))
	default:
		return nil
	}
}

func storyViews(tags []*etree.Element) []*moselement.Story {
	stories := make([]*moselement.Story, 0, len(tags))
	for _, tag := range tags {
		stories = append(stories, moselement.NewStory(tag))
	}
	return stories
}

func storyRefViews(base *etree.Element, ids []*etree.Element) []*moselement.Story {
	stories := make([]*moselement.Story, 0, len(ids))
	for _, id := range ids {
		stories = append(stories, moselement.NewStory(base,
			moselement.WithID(id.Text()), moselement.WithUnknownItems()))
	}
	return stories
}

func itemViews(tags []*etree.Element) []*moselement.Item {
	items := make([]*moselement.Item, 0, len(tags))
	for _, tag := range tags {
		items = append(items, moselement.NewItem(tag))
	}
	return items
}

func itemRefViews(base *etree.Element, ids []*etree.Element) []*moselement.Item {
	items := make([]*moselement.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, moselement.NewItemWithID(base, id.Text()))
	}
	return items
}
