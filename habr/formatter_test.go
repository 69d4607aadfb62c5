package habr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func convert(t *testing.T, src string, v *Variant) string {
	t.Helper()
	out, err := Convert("test.md", []byte(src), v, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	return string(out)
}

func TestFormatText(t *testing.T) {
	doc := NewDocument()
	doc.Refs[3] = "http://three.example.com"
	doc.Refs[5] = "ch05.html"

	tests := []struct {
		name    string
		variant *Variant
		text    string
		want    string
	}{
		{"plain", Generic, "just text", "just text"},
		{"code", Generic, "call `foo()` now", "call <code>foo()</code> now"},
		{"bold and italic", Generic, "**bold** and *italic*", "<b>bold</b> and <i>italic</i>"},
		{"italic inside bold delimiters", Generic, "**a** *b* **c**", "<b>a</b> <i>b</i> <b>c</b>"},
		{"unbalanced asterisk", Generic, "2 * 3", "2 * 3"},
		{"inline link", Generic, "see [Rust](http://rust-lang.org)", "see <a href='http://rust-lang.org'>Rust</a>"},
		{"reference link", Generic, "see [this][3]", "see <a href='http://three.example.com'>this</a>"},
		{"numeric inline link is a reference", Generic, "[this](3)", "<a href='http://three.example.com'>this</a>"},
		{"relative link kept", Generic, "[ch](ch03.html)", "<a href='ch03.html'>ch</a>"},
		{"relative link rewritten", Rustbook, "[ch](ch03.html)", "<a href='" + RustbookBaseURL + "ch03.html'>ch</a>"},
		{"absolute link", Rustbook, "[x](https://doc.rust-lang.org)", "<a href='https://doc.rust-lang.org'>x</a>"},
		{"fragment link", Rustbook, "[x](#sec1)", "<a href='#sec1'>x</a>"},
		{"relative reference rewritten", Rustbook, "[five][5]", "<a href='" + RustbookBaseURL + "ch05.html'>five</a>"},
		{"emphasis inside link", Generic, "[*Rust*](http://a.b)", "<a href='http://a.b'><i>Rust</i></a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(doc, tt.variant, zaptest.NewLogger(t).Sugar())
			got, err := f.FormatText(tt.text, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatUndefinedReference(t *testing.T) {
	src := "[3]: http://three.example.com\n\nFirst [ok][3].\n\nThen [missing][4]."

	_, err := Convert("ch.md", []byte(src), Generic, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedReference)

	var refErr *UndefinedReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "4", refErr.Key)
	assert.Equal(t, 5, refErr.Line)
	assert.Equal(t, "ch.md:5: undefined reference [4]", refErr.Error())
}

func TestFormatBlocks(t *testing.T) {
	tests := []struct {
		name    string
		variant *Variant
		src     string
		want    string
	}{
		{
			name:    "header",
			variant: Generic,
			src:     "## Getting **started**",
			want:    "<h2>Getting <b>started</b></h2>\n",
		},
		{
			name:    "header is shifted",
			variant: Rustbook,
			src:     "## Getting started",
			want:    "<h3>Getting started</h3>\n",
		},
		{
			name:    "paragraphs",
			variant: Generic,
			src:     "One\ntwo\n\nThree",
			want:    "<p>One two</p>\n\n<p>Three</p>\n\n",
		},
		{
			name:    "anchor is not formatted",
			variant: Generic,
			src:     `<a name="*x*"></a>`,
			want:    "<anchor>*x*</anchor>\n",
		},
		{
			name:    "ordered list",
			variant: Generic,
			src:     "1. a\n2. b\n\n",
			want:    "<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n",
		},
		{
			name:    "unordered list",
			variant: Generic,
			src:     "* *x*\n* `y`",
			want:    "<ul>\n<li><i>x</i></li>\n<li><code>y</code></li>\n</ul>\n",
		},
		{
			name:    "source is escaped",
			variant: Generic,
			src:     "```\nif a < b && c > d { \"x\" } 'y'\n```",
			want:    "<source>\nif a &lt; b &amp;&amp; c &gt; d { &quot;x&quot; } &#x27;y&#x27;\n</source>\n",
		},
		{
			name:    "source is not formatted",
			variant: Generic,
			src:     "```go\nx := **p * `y`\n```",
			want:    "<source lang=\"go\">\nx := **p * `y`\n</source>\n",
		},
		{
			name:    "generic keeps hidden lines",
			variant: Generic,
			src:     "```rust\n# fn main() {\nlet x = 1;\n# }\n```",
			want:    "<source lang=\"rust\">\n# fn main() {\nlet x = 1;\n# }\n</source>\n",
		},
		{
			name:    "rust example",
			variant: Rustbook,
			src:     "```rust-example\n# fn hidden() {}\n#\nfn main() {}\n#[derive(Debug)]\n#![allow(unused)]\n```",
			want:    "<source lang=\"rust\">\nfn main() {}\n#[derive(Debug)]\n#![allow(unused)]\n</source>\n",
		},
		{
			name:    "other languages are not labelled",
			variant: Rustbook,
			src:     "```text\nhello\n```",
			want:    "<source>\nhello\n</source>\n",
		},
		{
			name:    "title is dropped",
			variant: Rustbook,
			src:     "% Title Of Book\n\n# Intro",
			want:    "<h2>Intro</h2>\n",
		},
		{
			name:    "references are not rendered",
			variant: Generic,
			src:     "[1]: http://a.b\n[2]: http://c.d\n\nSee [a][1] and [c][2].",
			want:    "<p>See <a href='http://a.b'>a</a> and <a href='http://c.d'>c</a>.</p>\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convert(t, tt.src, tt.variant))
		})
	}
}

func TestFormatDocument(t *testing.T) {
	src := `% Variable Bindings

# Variable Bindings

Virtually every non-'Hello World' Rust program uses *variable bindings*. See
[the patterns chapter][1] or [the guide](guessing-game.html#setup).

` + "```rust" + `
# fn main() {
let x = 5;
# }
` + "```" + `

<a name="mutability"></a>
## Mutability

1. first
2. second

* one
* two

[1]: patterns.html
`

	want := `<h2>Variable Bindings</h2>
<p>Virtually every non-'Hello World' Rust program uses <i>variable bindings</i>. See <a href='http://kgv.github.io/rust_book_ru/src/patterns.html'>the patterns chapter</a> or <a href='http://kgv.github.io/rust_book_ru/src/guessing-game.html#setup'>the guide</a>.</p>

<source lang="rust">
let x = 5;
</source>
<anchor>mutability</anchor>
<h3>Mutability</h3>
<ol>
<li>first</li>
<li>second</li>
</ol>
<ul>
<li>one</li>
<li>two</li>
</ul>
`

	assert.Equal(t, want, convert(t, src, Rustbook))
}

func TestFormatSuppressesTitleParagraph(t *testing.T) {
	doc := NewDocument()
	doc.Blocks = []Block{
		&Paragraph{Line: 1, Text: "% Title"},
		&Paragraph{Line: 3, Text: "Body"},
	}

	out, err := NewFormatter(doc, Rustbook, nil).Format()
	require.NoError(t, err)
	assert.Equal(t, "<p>Body</p>\n\n", string(out))

	out, err = NewFormatter(doc, Generic, nil).Format()
	require.NoError(t, err)
	assert.Equal(t, "<p>% Title</p>\n\n<p>Body</p>\n\n", string(out))
}

func TestFormatSourceDoesNotModifyBlock(t *testing.T) {
	source := &SourceBlock{Line: 1, Lang: "rust", Text: "# hidden\nshown"}
	doc := NewDocument()
	doc.Blocks = []Block{source}

	out, err := NewFormatter(doc, Rustbook, nil).Format()
	require.NoError(t, err)
	assert.Equal(t, "<source lang=\"rust\">\nshown\n</source>\n", string(out))
	assert.Equal(t, "# hidden\nshown", source.Text)
}

func TestFormatRejectsReferenceTable(t *testing.T) {
	doc := NewDocument()
	doc.Blocks = []Block{&ReferenceTable{Line: 2, Refs: map[int]string{1: "a"}}}

	_, err := NewFormatter(doc, Generic, nil).Format()
	assert.Error(t, err)
}

func TestFormatWarnsUnknownLanguage(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core).Sugar()

	out, err := Convert("test.md", []byte("```nosuchlang\nx\n```\n\n```rust\ny\n```"), Generic, logger)
	require.NoError(t, err)
	assert.Equal(t, "<source lang=\"nosuchlang\">\nx\n</source>\n<source lang=\"rust\">\ny\n</source>\n", string(out))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "nosuchlang", entries[0].ContextMap()["lang"])
}

func TestKnownLanguage(t *testing.T) {
	assert.True(t, KnownLanguage("rust"))
	assert.True(t, KnownLanguage("go"))
	assert.False(t, KnownLanguage("nosuchlang"))
}
