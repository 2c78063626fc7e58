// SPDX-License-Identifier: Apache-2.0

// Package mosxml provides the ordered-child tree primitives that every MOS
// merge algorithm is built from. The primitives operate on element positions
// (not raw token positions), so interleaved character data such as
// indentation whitespace never shifts an insertion point.
package mosxml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// FindChild scans the direct children of parent for the first element named
// tag. If id is non-empty the child's "<tag>ID" subfield must also match,
// either exactly or on the trailing comma-separated segment - MOS IDs are
// comma-joined paths and peer systems may address the same element by its
// tail. Returns (nil, -1) when no child matches. First match wins.
func FindChild(parent *etree.Element, tag, id string) (*etree.Element, int) {
	for i, child := range parent.ChildElements() {
		if child.Tag != tag {
			continue
		}
		if id == "" {
			return child, i
		}
		idTag := child.SelectElement(tag + "ID")
		if idTag == nil {
			continue
		}
		childID := idTag.Text()
		if childID == id || lastSegment(childID) == lastSegment(id) {
			return child, i
		}
	}
	return nil, -1
}

// InsertNode inserts node among parent's child elements at the given element
// index, preserving the order of existing children. An index at or beyond
// the current child count appends. If node currently belongs to another
// parent it is detached first (moved, not copied).
func InsertNode(parent *etree.Element, node *etree.Element, index int) {
	children := parent.ChildElements()
	if index < 0 || index >= len(children) {
		parent.AddChild(node)
		return
	}
	parent.InsertChildAt(children[index].Index(), node)
}

// AppendNode adds node as the last child of parent.
func AppendNode(parent *etree.Element, node *etree.Element) {
	parent.AddChild(node)
}

// RemoveNode detaches node from parent by identity.
func RemoveNode(parent *etree.Element, node *etree.Element) error {
	if removed := parent.RemoveChild(node); removed == nil {
		return fmt.Errorf("%w: <%s>", ErrNotAChild, node.Tag)
	}
	return nil
}

// ReplaceNode removes old from parent and inserts replacement at index.
// Callers must pass old's current element index, not a stale one.
func ReplaceNode(parent *etree.Element, old, replacement *etree.Element, index int) error {
	if err := RemoveNode(parent, old); err != nil {
		return err
	}
	InsertNode(parent, replacement, index)
	return nil
}

// ChildText returns the text of the first child element named tag, or ""
// when the child is absent.
func ChildText(parent *etree.Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

// LastIDSegment returns the trailing comma-separated segment of a MOS ID,
// the part peer systems agree on when the full path differs.
func LastIDSegment(id string) string {
	return lastSegment(id)
}

func lastSegment(id string) string {
	if i := strings.LastIndexByte(id, ','); i >= 0 {
		return id[i+1:]
	}
	return id
}
