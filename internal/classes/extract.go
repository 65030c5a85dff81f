// Package classes finds and rewrites class-name tokens inside string literal spans.
package classes

import (
	"sort"
	"strings"

	"github.com/yacobolo/tachywind/internal/textscan"
)

// KnownClasses reports whether a token is a registered class name.
type KnownClasses interface {
	IsKnownClass(name string) bool
}

// Extract returns the sorted, de-duplicated set of registered class names
// referenced by the given string spans.
//
// Each span loses one delimiter at each end and is split on single spaces.
// Usage is boolean: a class found in several spans is reported once.
func Extract(spans []textscan.Span, known KnownClasses) []string {
	seen := make(map[string]struct{})

	for _, s := range spans {
		for _, word := range words(s.Inner()) {
			if word == "" {
				continue
			}
			if known.IsKnownClass(word) {
				seen[word] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	sort.Strings(result)

	return result
}

// words splits on a single literal space. Runs of spaces yield empty tokens,
// which lets a rejoin reproduce the input exactly.
func words(content string) []string {
	return strings.Split(content, " ")
}
