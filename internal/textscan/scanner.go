// Package textscan locates string literal and comment spans in mixed source text
// (JavaScript/TypeScript, HTML, C#, Razor) without parsing any of those languages.
//
// The scanner is a small state machine driven by fixed lookahead. It does not
// understand escapes or template interpolation: a string ends at the next
// occurrence of its opening delimiter, whatever precedes it.
package textscan

import "strings"

// Span is a contiguous [Start, End) byte range of the scanned input.
// Content is exactly input[Start:End], delimiters and comment markers included.
type Span struct {
	Content string
	Start   int
	End     int
}

// Inner returns the content of a string span without its delimiters.
func (s Span) Inner() string {
	if len(s.Content) < 2 {
		return ""
	}
	return s.Content[1 : len(s.Content)-1]
}

// Result holds the spans found by Scan, each slice ordered by Start.
type Result struct {
	Strings  []Span
	Comments []Span
}

type state int

const (
	stateNormal state = iota
	stateString
	stateComment
)

type commentStyle int

const (
	lineComment commentStyle = iota
	blockComment
	htmlComment
	razorComment
)

// terminator returns the closing marker of a multi-character comment style.
// Line comments end at a line break, which is never part of the span.
func (c commentStyle) terminator() string {
	switch c {
	case blockComment:
		return "*/"
	case htmlComment:
		return "-->"
	case razorComment:
		return "*@"
	}
	return ""
}

// commentOpeners are tried in order at every position outside strings and comments.
var commentOpeners = []struct {
	marker string
	style  commentStyle
}{
	{"/*", blockComment},
	{"@*", razorComment},
	{"<!--", htmlComment},
	{"//", lineComment},
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

// Scan walks input once and classifies string and comment spans.
//
// A comment still open at the end of input is closed at len(input).
// A string still open at the end of input is dropped.
func Scan(input string) Result {
	var (
		res   Result
		st    = stateNormal
		delim byte
		style commentStyle
		start int
	)

	for i := 0; i < len(input); i++ {
		c := input[i]

		switch st {
		case stateNormal:
			if isQuote(c) {
				st, delim, start = stateString, c, i
				continue
			}
			for _, op := range commentOpeners {
				if strings.HasPrefix(input[i:], op.marker) {
					st, style, start = stateComment, op.style, i
					i += len(op.marker) - 1
					break
				}
			}

		case stateString:
			if c == delim {
				res.Strings = append(res.Strings, span(input, start, i+1))
				st = stateNormal
			}

		case stateComment:
			if style == lineComment {
				if c == '\n' || c == '\r' {
					res.Comments = append(res.Comments, span(input, start, i))
					st = stateNormal
				}
				continue
			}
			term := style.terminator()
			if strings.HasPrefix(input[i:], term) {
				end := i + len(term)
				res.Comments = append(res.Comments, span(input, start, end))
				st = stateNormal
				i = end - 1
			}
		}
	}

	if st == stateComment {
		res.Comments = append(res.Comments, span(input, start, len(input)))
	}

	return res
}

func span(input string, start, end int) Span {
	return Span{Content: input[start:end], Start: start, End: end}
}
