package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantStrings  []Span
		wantComments []Span
	}{
		{
			name:         "double quotes and line comment",
			input:        `const message = "Hello, world!"; // This is a comment`,
			wantStrings:  []Span{{`"Hello, world!"`, 16, 31}},
			wantComments: []Span{{`// This is a comment`, 33, 53}},
		},
		{
			name:         "single quotes and block comment",
			input:        "const message = 'Hello, world!'; /* This is a\nmulti-line\ncomment */",
			wantStrings:  []Span{{`'Hello, world!'`, 16, 31}},
			wantComments: []Span{{"/* This is a\nmulti-line\ncomment */", 33, 67}},
		},
		{
			name:         "html comment",
			input:        `const message = 'Hello, world!'; <!-- This is an HTML comment -->`,
			wantStrings:  []Span{{`'Hello, world!'`, 16, 31}},
			wantComments: []Span{{`<!-- This is an HTML comment -->`, 33, 65}},
		},
		{
			name:         "razor comment",
			input:        `const message = 'Hello, world!'; @* This is a Razor comment *@`,
			wantStrings:  []Span{{`'Hello, world!'`, 16, 31}},
			wantComments: []Span{{`@* This is a Razor comment *@`, 33, 62}},
		},
		{
			// Escapes are not honored: the escaped quote closes the string.
			name:  "escaped double quote splits the string",
			input: `const message = "Hello, \"world\"!"; // This is a comment`,
			wantStrings: []Span{
				{`"Hello, \"`, 16, 26},
				{`"!"`, 32, 35},
			},
			wantComments: []Span{{`// This is a comment`, 37, 57}},
		},
		{
			name:         "backticks",
			input:        "const message = `Hello, world!`; // This is a comment",
			wantStrings:  []Span{{"`Hello, world!`", 16, 31}},
			wantComments: []Span{{`// This is a comment`, 33, 53}},
		},
		{
			name:  "escaped backtick splits the string",
			input: "const message = `Hello, \\`world\\`!`; // This is a comment",
			wantStrings: []Span{
				{"`Hello, \\`", 16, 26},
				{"`!`", 32, 35},
			},
			wantComments: []Span{{`// This is a comment`, 37, 57}},
		},
		{
			// Other quote characters inside a template literal are content.
			name:        "nested double quotes inside template literal",
			input:       "const x = `ma0 line center block ${value ? \"mb1\" : \"mb2\"}`;",
			wantStrings: []Span{{"`ma0 line center block ${value ? \"mb1\" : \"mb2\"}`", 10, 58}},
		},
		{
			name:        "nested single quotes inside template literal",
			input:       "const x = `ma0 line center block ${value ? 'mb1' : 'mb2'}`;",
			wantStrings: []Span{{"`ma0 line center block ${value ? 'mb1' : 'mb2'}`", 10, 58}},
		},
		{
			name:         "unterminated block comment runs to end of input",
			input:        "a /* open",
			wantComments: []Span{{"/* open", 2, 9}},
		},
		{
			name:         "line comment at end of input",
			input:        "x // tail",
			wantComments: []Span{{"// tail", 2, 9}},
		},
		{
			name:         "unterminated html comment runs to end of input",
			input:        "<p></p><!-- todo",
			wantComments: []Span{{"<!-- todo", 7, 16}},
		},
		{
			name:  "unterminated string is dropped",
			input: `x = "abc`,
		},
		{
			name:         "line comment stops before carriage return",
			input:        "// a\r\nb = 'c'",
			wantStrings:  []Span{{`'c'`, 10, 13}},
			wantComments: []Span{{"// a", 0, 4}},
		},
		{
			name:         "quotes inside comments are ignored",
			input:        "// don't \"x\"\n'y'",
			wantStrings:  []Span{{`'y'`, 13, 16}},
			wantComments: []Span{{`// don't "x"`, 0, 12}},
		},
		{
			name:         "comment markers inside strings are ignored",
			input:        `"http://example.com" /* c */`,
			wantStrings:  []Span{{`"http://example.com"`, 0, 20}},
			wantComments: []Span{{`/* c */`, 21, 28}},
		},
		{
			name:         "string directly after block comment",
			input:        `/*c*/"a"`,
			wantStrings:  []Span{{`"a"`, 5, 8}},
			wantComments: []Span{{`/*c*/`, 0, 5}},
		},
		{
			name:         "opener characters are not reused by the terminator",
			input:        `/*/ "not a string" */'s'`,
			wantStrings:  []Span{{`'s'`, 21, 24}},
			wantComments: []Span{{`/*/ "not a string" */`, 0, 21}},
		},
		{
			name:         "razor markup",
			input:        `@* hidden "x" *@<div class="pa3 fw6">`,
			wantStrings:  []Span{{`"pa3 fw6"`, 27, 36}},
			wantComments: []Span{{`@* hidden "x" *@`, 0, 16}},
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.input)

			assert.Equal(t, tt.wantStrings, got.Strings)
			assert.Equal(t, tt.wantComments, got.Comments)
			assertWellFormed(t, tt.input, got)
		})
	}
}

func TestScanWellFormedInput(t *testing.T) {
	inputs := []string{
		`<div class="pa3 fw6"><!-- header --><span class='o-50'>x</span></div>`,
		"var a = 'b'; // c\nvar d = `e ${f}`; /* g */ var h = \"i\";",
		"@{ var css = \"dn\"; } @* note *@ <p class=\"@css\"></p>",
		`public string Css => "bg-white pa2"; // default`,
	}

	for _, input := range inputs {
		res := Scan(input)
		assertWellFormed(t, input, res)
		assert.NotEmpty(t, res.Strings)
		assert.NotEmpty(t, res.Comments)
	}
}

func TestSpanInner(t *testing.T) {
	assert.Equal(t, "pa3 fw6", Span{Content: `"pa3 fw6"`}.Inner())
	assert.Equal(t, "", Span{Content: `''`}.Inner())
	assert.Equal(t, "", Span{}.Inner())
}

// assertWellFormed checks that spans match the input and never overlap.
func assertWellFormed(t *testing.T, input string, res Result) {
	t.Helper()

	all := make([]Span, 0, len(res.Strings)+len(res.Comments))
	for _, group := range [][]Span{res.Strings, res.Comments} {
		for i, s := range group {
			require.True(t, s.Start >= 0 && s.Start < s.End && s.End <= len(input), "span out of range: %+v", s)
			assert.Equal(t, input[s.Start:s.End], s.Content)
			if i > 0 {
				assert.LessOrEqual(t, group[i-1].End, s.Start, "spans out of order")
			}
		}
		all = append(all, group...)
	}

	for i := range all {
		for j := i + 1; j < len(all); j++ {
			overlap := all[i].Start < all[j].End && all[j].Start < all[i].End
			assert.False(t, overlap, "spans overlap: %+v %+v", all[i], all[j])
		}
	}
}
