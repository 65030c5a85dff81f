// Package stylesheet extracts flat class rules from a CSS file.
package stylesheet

import (
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is a flat `.name { declarations }` rule.
type Rule struct {
	Class        string // "pa3"
	Declarations string // "padding: 1rem;"
}

// token is a lexed CSS token with its raw text.
type token struct {
	tt   css.TokenType
	text string
}

// newlines collapses every line break style to a single space.
var newlines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Parse returns the flat class rules of content in source order.
//
// A rule is a class selector directly followed by a block, so only the class
// right before the brace is registered: ".a.b", ".a .b" and ".a, .b" all yield
// b. Pseudo-classes (.a:hover) are skipped. A block containing a nested block
// is skipped while the inner rule is still found, as are rules inside at-rules
// such as @media.
func Parse(content string) []Rule {
	tokens := tokenize(content)

	var rules []Rule
	for i := 0; i < len(tokens); i++ {
		if tokens[i].tt != css.DelimToken || tokens[i].text != "." {
			continue
		}
		if i+1 >= len(tokens) || tokens[i+1].tt != css.IdentToken {
			continue
		}

		open := skipTrivia(tokens, i+2)
		if open >= len(tokens) || tokens[open].tt != css.LeftBraceToken {
			continue
		}

		decl, end, ok := readBlock(tokens, open+1)
		if !ok {
			continue
		}

		rules = append(rules, Rule{
			Class:        tokens[i+1].text,
			Declarations: strings.TrimSpace(newlines.Replace(decl)),
		})
		i = end
	}

	return rules
}

// ParseFile reads and parses a single stylesheet.
func ParseFile(path string) ([]Rule, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	return Parse(string(content)), nil
}

func tokenize(content string) []token {
	lexer := css.NewLexer(parse.NewInputString(content))

	var tokens []token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		tokens = append(tokens, token{tt: tt, text: string(text)})
	}
	return tokens
}

// skipTrivia returns the index of the first token at or after i that is
// neither whitespace nor a comment.
func skipTrivia(tokens []token, i int) int {
	for i < len(tokens) && (tokens[i].tt == css.WhitespaceToken || tokens[i].tt == css.CommentToken) {
		i++
	}
	return i
}

// readBlock collects the raw declaration text from i up to the closing brace.
// It returns the index of that brace, or ok=false when the block is nested or
// never closed.
func readBlock(tokens []token, i int) (decl string, end int, ok bool) {
	var b strings.Builder

	for ; i < len(tokens); i++ {
		switch tokens[i].tt {
		case css.RightBraceToken:
			return b.String(), i, true
		case css.LeftBraceToken:
			return "", i, false
		case css.CommentToken:
			continue
		default:
			b.WriteString(tokens[i].text)
		}
	}

	return "", i, false
}
