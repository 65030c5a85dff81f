// Package backup reads and writes the JSON class mapping document.
//
// The document is an object keyed by class name:
//
//	{
//	  "pa3": { "tailwind": "p-4", "css": "padding: 1rem;" },
//	  "dn":  { "tailwind": null,  "css": "display: none;" }
//	}
package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yacobolo/tachywind/internal/registry"
)

// Entry is one class in a backup document. A nil Tailwind means unmapped.
type Entry struct {
	Tailwind *string `json:"tailwind"`
	CSS      string  `json:"css"`
}

// Document maps class names to their entries.
type Document map[string]Entry

// Encode writes classes as an indented document. encoding/json sorts map keys,
// so output is stable. With mappedOnly, classes without a replacement are left out.
func Encode(w io.Writer, classes []registry.Class, mappedOnly bool) (int, error) {
	doc := make(Document, len(classes))
	for _, c := range classes {
		if mappedOnly && !c.Mapped() {
			continue
		}
		doc[c.Name] = Entry{Tailwind: c.Replacement, CSS: c.CSS}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encoding backup: %w", err)
	}

	return len(doc), nil
}

// Decode reads a document.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}
