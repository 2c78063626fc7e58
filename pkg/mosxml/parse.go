// SPDX-License-Identifier: Apache-2.0

package mosxml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// MOS messages are small; anything beyond this is not a plausible document.
const maxDocumentSize = 50 * 1024 * 1024

// Parse reads a single XML document from r. The decoder is strict, entity
// expansion is disabled and input is size-limited.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = false
	doc.ReadSettings.Entity = map[string]string{}
	if _, err := doc.ReadFrom(io.LimitReader(r, maxDocumentSize)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrInvalidXML)
	}
	return doc, nil
}

// ParseString parses an XML document held in a string.
func ParseString(s string) (*etree.Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseBytes parses an XML document held in a byte slice.
func ParseBytes(b []byte) (*etree.Document, error) {
	return Parse(strings.NewReader(string(b)))
}

// ParseFile parses the XML document at the given path.
func ParseFile(path string) (*etree.Document, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}
