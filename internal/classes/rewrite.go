package classes

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yacobolo/tachywind/internal/textscan"
)

// DefaultCacheSize is the number of distinct string contents memoized per Rewriter.
const DefaultCacheSize = 4096

// Mapping resolves a source class name to its replacement.
type Mapping interface {
	LookupMapping(name string) (string, bool)
}

// Result describes one whole-text rewrite.
type Result struct {
	Text       string
	Rewritten  int // String spans whose content changed
	Rejections []Rejection
}

// Changed reports whether the rewrite differs from its input.
func (r Result) Changed() bool {
	return r.Rewritten > 0
}

// contentResult is the memoized outcome of rewriting one span's content.
type contentResult struct {
	text      string
	changed   bool
	rejection *Rejection
}

// Rewriter substitutes mapped class names inside string literal spans.
// It is safe for concurrent use.
type Rewriter struct {
	mapping   Mapping
	cacheSize int
	cache     *lru.Cache[string, contentResult]
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithCacheSize bounds the content memo. Zero disables it.
func WithCacheSize(n int) Option {
	return func(r *Rewriter) {
		r.cacheSize = n
	}
}

// NewRewriter creates a Rewriter backed by mapping.
func NewRewriter(mapping Mapping, opts ...Option) *Rewriter {
	r := &Rewriter{
		mapping:   mapping,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.cacheSize > 0 {
		cache, err := lru.New[string, contentResult](r.cacheSize)
		if err != nil {
			// Only reachable with a non-positive size, excluded above
			panic(fmt.Sprintf("failed to create rewrite cache: %v", err))
		}
		r.cache = cache
	}

	return r
}

// RewriteContent rewrites the inner text of a single string span.
// Rejected rewrites return content unchanged.
func (r *Rewriter) RewriteContent(content string) string {
	return r.rewriteContent(content).text
}

// Rewrite returns input with mapped class names substituted inside string
// literals. Text outside string spans, comments included, is copied unchanged.
func (r *Rewriter) Rewrite(input string) string {
	return r.RewriteDetailed(input).Text
}

// RewriteDetailed is Rewrite with per-span statistics and guard rejections.
func (r *Rewriter) RewriteDetailed(input string) Result {
	scanned := textscan.Scan(input)
	if len(scanned.Strings) == 0 {
		return Result{Text: input}
	}

	var (
		res  Result
		b    strings.Builder
		prev int
	)
	b.Grow(len(input))

	for _, s := range scanned.Strings {
		b.WriteString(input[prev:s.Start])

		delim := s.Content[:1]
		inner := r.rewriteContent(s.Inner())

		b.WriteString(delim)
		b.WriteString(inner.text)
		b.WriteString(delim)

		if inner.changed {
			res.Rewritten++
		}
		if inner.rejection != nil {
			res.Rejections = append(res.Rejections, *inner.rejection)
		}

		prev = s.End
	}
	b.WriteString(input[prev:])

	res.Text = b.String()
	return res
}

func (r *Rewriter) rewriteContent(content string) contentResult {
	if r.cache != nil {
		if cached, ok := r.cache.Get(content); ok {
			return cached
		}
	}

	result := r.substitute(content)

	if r.cache != nil {
		r.cache.Add(content, result)
	}
	return result
}

// substitute replaces mapped words and applies the guard.
func (r *Rewriter) substitute(content string) contentResult {
	tokens := words(content)

	replaced := 0
	for i, word := range tokens {
		if word == "" {
			continue
		}
		if repl, ok := r.mapping.LookupMapping(word); ok {
			tokens[i] = repl
			replaced++
		}
	}

	if replaced == 0 {
		return contentResult{text: content}
	}

	attempted := strings.Join(tokens, " ")

	if !ShouldApply(len(tokens), replaced) {
		return contentResult{
			text: content,
			rejection: &Rejection{
				Original:  content,
				Attempted: attempted,
				Words:     len(tokens),
				Replaced:  replaced,
			},
		}
	}

	return contentResult{
		text:    attempted,
		changed: attempted != content,
	}
}
