// SPDX-License-Identifier: Apache-2.0

package mostype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbc/mosromgr-sub000/internal/testutil"
	"github.com/bbc/mosromgr-sub000/pkg/mostype"
)

func parseMessage(t *testing.T, xml string) *mostype.Message {
	t.Helper()
	m, err := mostype.FromString(xml)
	require.NoError(t, err)
	return m
}

func TestStorySendStoryView(t *testing.T) {
	m := parseMessage(t, testutil.RoStorySend)
	story := m.Story()
	require.NotNil(t, story)

	id, err := story.ID()
	require.NoError(t, err)
	assert.Equal(t, "STORY1", id)
	assert.Equal(t, []string{"Good evening.", "Our top story tonight."}, story.Script())

	body := story.Body()
	var itemSlugs []string
	for _, entry := range body {
		if entry.Item != nil {
			itemSlugs = append(itemSlugs, entry.Item.Slug())
		}
	}
	assert.Equal(t, []string{"ITEM ONE"}, itemSlugs)
}

func TestStoryViewsPerKind(t *testing.T) {
	t.Run("append carries full stories", func(t *testing.T) {
		m := parseMessage(t, testutil.RoStoryAppend)
		stories := m.Stories()
		require.Len(t, stories, 1)
		assert.Equal(t, "STORY FOUR", stories[0].Slug())
	})

	t.Run("delete carries references only", func(t *testing.T) {
		m := parseMessage(t, testutil.RoStoryDelete)
		stories := m.Stories()
		require.Len(t, stories, 1)
		id, err := stories[0].ID()
		require.NoError(t, err)
		assert.Equal(t, "STORY4", id)
		assert.Nil(t, stories[0].Items())
	})

	t.Run("move distinguishes source and target", func(t *testing.T) {
		m := parseMessage(t, testutil.RoStoryMove)
		sources := m.SourceStories()
		require.Len(t, sources, 1)
		srcID, err := sources[0].ID()
		require.NoError(t, err)
		assert.Equal(t, "STORY3", srcID)

		target := m.TargetStory()
		require.NotNil(t, target)
		tgtID, err := target.ID()
		require.NoError(t, err)
		assert.Equal(t, "STORY1", tgtID)
	})

	t.Run("create has no views", func(t *testing.T) {
		m := parseMessage(t, testutil.RoCreate)
		assert.Nil(t, m.Story())
		assert.Nil(t, m.Stories())
		assert.Nil(t, m.TargetStory())
	})
}

func TestItemViewsPerKind(t *testing.T) {
	t.Run("insert", func(t *testing.T) {
		m := parseMessage(t, testutil.RoItemInsert)
		target := m.TargetItem()
		require.NotNil(t, target)
		assert.Equal(t, "ITEM2", target.ID())

		items := m.SourceItems()
		require.Len(t, items, 1)
		assert.Equal(t, "ITEM4", items[0].ID())
	})

	t.Run("delete references", func(t *testing.T) {
		m := parseMessage(t, testutil.RoItemDelete)
		items := m.SourceItems()
		require.Len(t, items, 2)
		assert.Equal(t, "ITEM1", items[0].ID())
		assert.Equal(t, "ITEM2", items[1].ID())
	})

	t.Run("move multiple splits target from sources", func(t *testing.T) {
		m := parseMessage(t, testutil.RoItemMoveMultiple)
		target := m.TargetItem()
		require.NotNil(t, target)
		assert.Equal(t, "ITEM1", target.ID())

		items := m.SourceItems()
		require.Len(t, items, 1)
		assert.Equal(t, "ITEM3", items[0].ID())
	})

	t.Run("element action item replace", func(t *testing.T) {
		m := parseMessage(t, testutil.EAItemReplace)
		target := m.TargetItem()
		require.NotNil(t, target)
		assert.Equal(t, "ITEM1", target.ID())

		story := m.TargetStory()
		require.NotNil(t, story)
		id, err := story.ID()
		require.NoError(t, err)
		assert.Equal(t, "STORY1", id)

		items := m.SourceItems()
		require.Len(t, items, 1)
		assert.Equal(t, "ITEM ONE EA", items[0].Slug())
	})
}
