// SPDX-License-Identifier: Apache-2.0

package mosxml_test

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbc/mosromgr-sub000/pkg/mosxml"
)

const storyListXML = `<roCreate>
  <roID>RO1</roID>
  <story>
    <storyID>STORY1</storyID>
    <storySlug>one</storySlug>
  </story>
  <story>
    <storyID>STORY2</storyID>
    <storySlug>two</storySlug>
  </story>
  <story>
    <storyID>RO1,STORY3</storyID>
    <storySlug>three</storySlug>
  </story>
</roCreate>`

func parseRoot(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc, err := mosxml.ParseString(s)
	require.NoError(t, err)
	return doc.Root()
}

func TestFindChild(t *testing.T) {
	root := parseRoot(t, storyListXML)

	// Indices count every child element, so the leading roID shifts the
	// stories to indices 1 through 3.
	t.Run("first match without ID", func(t *testing.T) {
		el, idx := mosxml.FindChild(root, "story", "")
		require.NotNil(t, el)
		assert.Equal(t, 1, idx)
		assert.Equal(t, "one", el.SelectElement("storySlug").Text())
	})

	t.Run("exact ID match", func(t *testing.T) {
		el, idx := mosxml.FindChild(root, "story", "STORY2")
		require.NotNil(t, el)
		assert.Equal(t, 2, idx)
	})

	t.Run("comma segment match", func(t *testing.T) {
		el, idx := mosxml.FindChild(root, "story", "STORY3")
		require.NotNil(t, el)
		assert.Equal(t, 3, idx)
		assert.Equal(t, "three", el.SelectElement("storySlug").Text())
	})

	t.Run("query ID with segments matches stored short ID", func(t *testing.T) {
		el, idx := mosxml.FindChild(root, "story", "RO1,STORY2")
		require.NotNil(t, el)
		assert.Equal(t, 2, idx)
	})

	t.Run("no match", func(t *testing.T) {
		el, idx := mosxml.FindChild(root, "story", "STORYX")
		assert.Nil(t, el)
		assert.Equal(t, -1, idx)
	})
}

func TestInsertNodeElementIndex(t *testing.T) {
	// Indented XML interleaves text nodes between elements. Insertion
	// indices count elements only, so the new story must land between the
	// existing ones regardless of whitespace tokens.
	root := parseRoot(t, storyListXML)
	node := etree.NewElement("story")
	node.CreateElement("storyID").SetText("STORYNEW")

	mosxml.InsertNode(root, node, 2)

	var ids []string
	for _, el := range root.SelectElements("story") {
		ids = append(ids, el.SelectElement("storyID").Text())
	}
	assert.Equal(t, []string{"STORY1", "STORYNEW", "STORY2", "RO1,STORY3"}, ids)
}

func TestInsertNodeOutOfRangeAppends(t *testing.T) {
	root := parseRoot(t, storyListXML)
	node := etree.NewElement("story")
	node.CreateElement("storyID").SetText("STORYNEW")

	mosxml.InsertNode(root, node, 99)

	stories := root.SelectElements("story")
	require.Len(t, stories, 4)
	assert.Equal(t, "STORYNEW", stories[3].SelectElement("storyID").Text())
}

func TestRemoveNode(t *testing.T) {
	root := parseRoot(t, storyListXML)
	target, _ := mosxml.FindChild(root, "story", "STORY2")
	require.NotNil(t, target)

	require.NoError(t, mosxml.RemoveNode(root, target))
	assert.Len(t, root.SelectElements("story"), 2)

	err := mosxml.RemoveNode(root, target)
	assert.ErrorIs(t, err, mosxml.ErrNotAChild)
}

func TestReplaceNode(t *testing.T) {
	root := parseRoot(t, storyListXML)
	old, idx := mosxml.FindChild(root, "story", "STORY1")
	require.NotNil(t, old)

	replacement := etree.NewElement("story")
	replacement.CreateElement("storyID").SetText("STORY1B")
	require.NoError(t, mosxml.ReplaceNode(root, old, replacement, idx))

	stories := root.SelectElements("story")
	require.Len(t, stories, 3)
	assert.Equal(t, "STORY1B", stories[0].SelectElement("storyID").Text())
}

func TestChildText(t *testing.T) {
	root := parseRoot(t, storyListXML)
	assert.Equal(t, "RO1", mosxml.ChildText(root, "roID"))
	assert.Equal(t, "", mosxml.ChildText(root, "missing"))
}

func TestParseRejectsInvalidXML(t *testing.T) {
	_, err := mosxml.ParseString("<mos><unclosed></mos>")
	assert.ErrorIs(t, err, mosxml.ErrInvalidXML)

	_, err = mosxml.ParseString("")
	assert.ErrorIs(t, err, mosxml.ErrInvalidXML)
}

func TestParseRejectsCustomEntities(t *testing.T) {
	payload := `<!DOCTYPE mos [<!ENTITY x "boom">]><mos><messageID>&x;</messageID></mos>`
	_, err := mosxml.ParseString(payload)
	assert.Error(t, err)
}

func TestLastIDSegment(t *testing.T) {
	assert.Equal(t, "STORY1", mosxml.LastIDSegment("RO1,STORY1"))
	assert.Equal(t, "STORY1", mosxml.LastIDSegment("STORY1"))
	assert.Equal(t, "C", mosxml.LastIDSegment("A,B,C"))
}

func TestParseStringRoundTrip(t *testing.T) {
	doc, err := mosxml.ParseString(storyListXML)
	require.NoError(t, err)
	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "<storySlug>two</storySlug>"))
}
