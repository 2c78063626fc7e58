// SPDX-License-Identifier: Apache-2.0

package mostype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbc/mosromgr-sub000/internal/testutil"
	"github.com/bbc/mosromgr-sub000/pkg/mostype"
)

func newRO(t *testing.T) *mostype.RunningOrder {
	t.Helper()
	m, err := mostype.FromString(testutil.RoCreate)
	require.NoError(t, err)
	ro, err := mostype.NewRunningOrder(m)
	require.NoError(t, err)
	return ro
}

func merge(t *testing.T, ro *mostype.RunningOrder, xml string, sink mostype.Sink) error {
	t.Helper()
	m, err := mostype.FromString(xml)
	require.NoError(t, err)
	return m.Merge(ro, sink)
}

func mustMerge(t *testing.T, ro *mostype.RunningOrder, xml string) {
	t.Helper()
	require.NoError(t, merge(t, ro, xml, nil))
}

func storyIDs(t *testing.T, ro *mostype.RunningOrder) []string {
	t.Helper()
	var ids []string
	for _, story := range ro.Stories() {
		id, err := story.ID()
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func itemIDs(t *testing.T, ro *mostype.RunningOrder, storyID string) []string {
	t.Helper()
	for _, story := range ro.Stories() {
		id, err := story.ID()
		require.NoError(t, err)
		if id != storyID {
			continue
		}
		var ids []string
		for _, item := range story.Items() {
			ids = append(ids, item.ID())
		}
		return ids
	}
	t.Fatalf("story %s not found", storyID)
	return nil
}

func TestMergeStorySend(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoStorySend)

	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
	story := ro.Stories()[0]
	assert.Equal(t, []string{"Good evening.", "Our top story tonight."}, story.Script())
	// storyItem children arrive renamed to item.
	assert.Equal(t, []string{"ITEM1"}, itemIDs(t, ro, "STORY1"))
	assert.NotContains(t, ro.String(), "<storyBody>")
	assert.NotContains(t, ro.String(), "<storyItem>")
}

func TestMergeStorySendUnknownStory(t *testing.T) {
	ro := newRO(t)
	before := ro.String()
	sink := &mostype.Collector{}

	require.NoError(t, merge(t, ro, testutil.RoStorySendUnknown, sink))

	assert.Equal(t, before, ro.String())
	require.Len(t, sink.Diagnostics(), 1)
	d := sink.Diagnostics()[0]
	assert.Equal(t, mostype.ClassStoryNotFound, d.Class)
	assert.Equal(t, mostype.KindStorySend, d.Kind)
	assert.Equal(t, 1006, d.MessageID)
}

func TestMergeMetadataReplace(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoMetadataReplace)

	assert.Equal(t, "TEST RO RENAMED", ro.Slug())
	assert.Equal(t, "RO1", ro.ROID())
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeMetadataReplaceUnknownFieldIsFatal(t *testing.T) {
	ro := newRO(t)
	before := ro.String()
	err := merge(t, ro, `<mos>
  <messageID>1056</messageID>
  <roMetadataReplace>
    <roID>RO1</roID>
    <roChannel>B</roChannel>
  </roMetadataReplace>
</mos>`, nil)

	assert.ErrorIs(t, err, mostype.ErrMerge)
	assert.Equal(t, before, ro.String())
}

func TestMergeStoryAppend(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoStoryAppend)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3", "STORY4"}, storyIDs(t, ro))
}

func TestMergeStoryDelete(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoStoryAppend)
	mustMerge(t, ro, testutil.RoStoryDelete)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeStoryDeleteUnknownStoryTolerated(t *testing.T) {
	ro := newRO(t)
	sink := &mostype.Collector{}
	require.NoError(t, merge(t, ro, testutil.RoStoryDelete, sink))
	assert.Equal(t, 1, sink.Count(mostype.ClassStoryNotFound))
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeStoryInsert(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoStoryInsert)
	assert.Equal(t, []string{"STORY1", "STORYNEW", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeStoryInsertMissingTargetIsFatal(t *testing.T) {
	ro := newRO(t)
	err := merge(t, ro, `<mos>
  <messageID>1021</messageID>
  <roStoryInsert>
    <roID>RO1</roID>
    <storyID>STORYX</storyID>
    <story><storyID>STORYNEW</storyID></story>
  </roStoryInsert>
</mos>`, nil)
	assert.ErrorIs(t, err, mostype.ErrMerge)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeStoryMove(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoStoryMove)
	assert.Equal(t, []string{"STORY3", "STORY1", "STORY2"}, storyIDs(t, ro))
}

func TestMergeStoryReplace(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoStoryReplace)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
	assert.Equal(t, "STORY ONE UPDATED", ro.Stories()[0].Slug())
	assert.Equal(t, []string{"ITEM1"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeItemDelete(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoItemDelete)
	assert.Equal(t, []string{"ITEM3"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeItemInsert(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoItemInsert)
	assert.Equal(t, []string{"ITEM1", "ITEM4", "ITEM2", "ITEM3"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeItemInsertEmptyTargetAppends(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoItemInsertAppend)
	assert.Equal(t, []string{"ITEM1", "ITEM2", "ITEM3", "ITEM5"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeItemMoveMultiple(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoItemMoveMultiple)
	assert.Equal(t, []string{"ITEM3", "ITEM1", "ITEM2"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeItemReplace(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoItemReplace)
	assert.Equal(t, []string{"ITEM1", "ITEM2", "ITEM3"}, itemIDs(t, ro, "STORY1"))
	assert.Contains(t, ro.String(), "ITEM ONE REPLACED")
}

func TestMergeReadyToAirChangesNothing(t *testing.T) {
	ro := newRO(t)
	before := ro.String()
	mustMerge(t, ro, testutil.RoReadyToAir)
	assert.Equal(t, before, ro.String())
}

func TestMergeRunningOrderReplace(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoReplace)
	assert.Equal(t, []string{"STORYA", "STORYB"}, storyIDs(t, ro))
	assert.Equal(t, "TEST RO REPLACED", ro.Slug())
	assert.Equal(t, "RO1", ro.ROID())
	// A replaced running order accepts further updates.
	mustMerge(t, ro, `<mos>
  <messageID>1066</messageID>
  <roStoryAppend>
    <roID>RO1</roID>
    <story><storyID>STORYC</storyID></story>
  </roStoryAppend>
</mos>`)
	assert.Equal(t, []string{"STORYA", "STORYB", "STORYC"}, storyIDs(t, ro))
}

func TestMergeRunningOrderEnd(t *testing.T) {
	ro := newRO(t)
	require.False(t, ro.Completed())
	mustMerge(t, ro, testutil.RoDelete)
	assert.True(t, ro.Completed())
	assert.Contains(t, ro.String(), "<roDelete>")
}

func TestMergeIntoClosedRunningOrderLeavesDocumentUntouched(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoDelete)
	before := ro.String()

	err := merge(t, ro, testutil.RoStoryAppend, nil)
	assert.ErrorIs(t, err, mostype.ErrCompletedMerge)
	assert.Equal(t, before, ro.String())
}

func TestMergeRunningOrderControl(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoCtrl)

	start, ok := ro.Stories()[0].StartTime()
	require.True(t, ok)
	assert.Equal(t, 5, start.Second())
}

func TestMergeRunningOrderControlAfterClosure(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoDelete)
	mustMerge(t, ro, testutil.RoCtrl)
	assert.Contains(t, ro.String(), "StoryStarted")
}

func TestMergeRunningOrderControlUpserts(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.RoCtrl)
	// Sending the field again replaces it in place rather than duplicating.
	mustMerge(t, ro, `<mos>
  <messageID>1071</messageID>
  <roCtrl>
    <roID>RO1</roID>
    <storyID>STORY1</storyID>
    <mosExternalMetadata>
      <mosPayload>
        <StoryStarted>2020-01-01T12:30:09</StoryStarted>
      </mosPayload>
    </mosExternalMetadata>
  </roCtrl>
</mos>`)

	start, ok := ro.Stories()[0].StartTime()
	require.True(t, ok)
	assert.Equal(t, 9, start.Second())
}

func TestMergeEAStoryReplace(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAStoryReplace)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
	assert.Equal(t, "STORY ONE EA", ro.Stories()[0].Slug())
}

func TestMergeEAItemReplace(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAItemReplace)
	assert.Equal(t, []string{"ITEM1", "ITEM2", "ITEM3"}, itemIDs(t, ro, "STORY1"))
	assert.Contains(t, ro.String(), "ITEM ONE EA")
}

func TestMergeEAItemReplaceUnknownItemTolerated(t *testing.T) {
	ro := newRO(t)
	sink := &mostype.Collector{}
	require.NoError(t, merge(t, ro, `<mos>
  <messageID>2006</messageID>
  <roElementAction operation="REPLACE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
      <itemID>ITEMX</itemID>
    </element_target>
    <element_source>
      <item><itemID>ITEMX</itemID></item>
    </element_source>
  </roElementAction>
</mos>`, sink))
	assert.Equal(t, 1, sink.Count(mostype.ClassItemNotFound))
	assert.Equal(t, []string{"ITEM1", "ITEM2", "ITEM3"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeEAStoryDelete(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAStoryDelete)
	assert.Equal(t, []string{"STORY1", "STORY2"}, storyIDs(t, ro))
}

func TestMergeEAItemDelete(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAItemDelete)
	assert.Equal(t, []string{"ITEM1", "ITEM3"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeEAStoryInsert(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAStoryInsert)
	assert.Equal(t, []string{"STORY1", "STORYEA", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeEAStoryInsertSkipsDuplicates(t *testing.T) {
	ro := newRO(t)
	sink := &mostype.Collector{}
	require.NoError(t, merge(t, ro, `<mos>
  <messageID>2021</messageID>
  <roElementAction operation="INSERT">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY2</storyID>
    </element_target>
    <element_source>
      <story><storyID>STORY3</storyID></story>
    </element_source>
  </roElementAction>
</mos>`, sink))

	assert.Equal(t, 1, sink.Count(mostype.ClassDuplicateStory))
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeEAItemInsert(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAItemInsert)
	assert.Equal(t, []string{"ITEM1", "ITEMEA", "ITEM2", "ITEM3"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeEAStorySwap(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAStorySwap)
	assert.Equal(t, []string{"STORY2", "STORY1", "STORY3"}, storyIDs(t, ro))
}

func TestMergeEAStorySwapTwiceRestoresOrder(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAStorySwap)
	mustMerge(t, ro, testutil.EAStorySwap)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeEAItemSwap(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAItemSwap)
	assert.Equal(t, []string{"ITEM3", "ITEM2", "ITEM1"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeEAStoryMove(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAStoryMove)
	assert.Equal(t, []string{"STORY3", "STORY1", "STORY2"}, storyIDs(t, ro))
}

func TestMergeEAStoryMoveMultipleSourcesKeepOrder(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, `<mos>
  <messageID>2041</messageID>
  <roElementAction operation="MOVE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
    </element_target>
    <element_source>
      <storyID>STORY2</storyID>
      <storyID>STORY3</storyID>
    </element_source>
  </roElementAction>
</mos>`)
	assert.Equal(t, []string{"STORY2", "STORY3", "STORY1"}, storyIDs(t, ro))
}

func TestMergeEAItemMove(t *testing.T) {
	ro := newRO(t)
	mustMerge(t, ro, testutil.EAItemMove)
	assert.Equal(t, []string{"ITEM3", "ITEM1", "ITEM2"}, itemIDs(t, ro, "STORY1"))
}

func TestMergeEAStoryMoveMissingSourceIsFatal(t *testing.T) {
	ro := newRO(t)
	err := merge(t, ro, `<mos>
  <messageID>2042</messageID>
  <roElementAction operation="MOVE">
    <roID>RO1</roID>
    <element_target>
      <storyID>STORY1</storyID>
    </element_target>
    <element_source>
      <storyID>STORYX</storyID>
    </element_source>
  </roElementAction>
</mos>`, nil)
	assert.ErrorIs(t, err, mostype.ErrMerge)
	assert.Equal(t, []string{"STORY1", "STORY2", "STORY3"}, storyIDs(t, ro))
}

func TestMergeErrorReporting(t *testing.T) {
	ro := newRO(t)
	err := merge(t, ro, `<mos>
  <messageID>1022</messageID>
  <roStoryInsert>
    <roID>RO1</roID>
    <storyID>STORYX</storyID>
    <story><storyID>S</storyID></story>
  </roStoryInsert>
</mos>`, nil)

	require.Error(t, err)
	var mergeErr *mostype.MergeError
	require.ErrorAs(t, err, &mergeErr)
	assert.Equal(t, mostype.KindStoryInsert, mergeErr.Kind)
	assert.Equal(t, 1022, mergeErr.MessageID)
	assert.Contains(t, err.Error(), "StoryInsert error in 1022")
}

func TestMergeCommaSegmentStoryIDs(t *testing.T) {
	// Peer systems may address a story by a longer comma-joined path; the
	// trailing segment still matches.
	ro := newRO(t)
	mustMerge(t, ro, `<mos>
  <messageID>1036</messageID>
  <roItemDelete>
    <roID>RO1</roID>
    <storyID>RO1,SHOW,STORY1</storyID>
    <itemID>ITEM2</itemID>
  </roItemDelete>
</mos>`)
	assert.Equal(t, []string{"ITEM1", "ITEM3"}, itemIDs(t, ro, "STORY1"))
}
