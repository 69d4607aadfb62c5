package habr

import (
	"fmt"

	"github.com/alecthomas/chroma/v2/lexers"
	"go.uber.org/zap"
)

// Formatter renders a parsed Document into Habrahabr markup
type Formatter struct {
	doc *Document
	v   *Variant
	log *zap.SugaredLogger
}

// NewFormatter creates a formatter for doc. A nil variant is the Generic one.
func NewFormatter(doc *Document, v *Variant, logger *zap.SugaredLogger) *Formatter {
	if v == nil {
		v = Generic
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Formatter{
		doc: doc,
		v:   v,
		log: logger,
	}
}

// Format renders all the blocks of the document, in order.
// Nothing is returned if any block fails.
func (f *Formatter) Format() ([]byte, error) {

	br := &ByteRenderer{}

	for _, block := range f.doc.Blocks {
		if err := f.FormatBlock(br, block); err != nil {
			return nil, err
		}
	}

	return br.Bytes(), nil
}

// FormatBlock renders one block. Each fragment carries its own trailing newlines.
func (f *Formatter) FormatBlock(br *ByteRenderer, block Block) error {
	switch b := block.(type) {
	case *Header:
		return f.formatHeader(br, b)
	case *Paragraph:
		return f.formatParagraph(br, b)
	case *Anchor:
		f.formatAnchor(br, b)
		return nil
	case *SourceBlock:
		f.formatSource(br, b)
		return nil
	case *OrderedList:
		return f.formatList(br, "ol", b.Items, b.Line)
	case *UnorderedList:
		return f.formatList(br, "ul", b.Items, b.Line)
	}
	return fmt.Errorf("%s:%d: can not format a block of type %v", f.doc.FileName, block.StartLine(), block.Type())
}

func (f *Formatter) formatHeader(br *ByteRenderer, header *Header) error {
	level := f.v.mapHeaderLevel(header.Level)

	text, err := f.FormatText(header.Text, header.Line)
	if err != nil {
		return err
	}

	br.Renderln("<h", level, ">", text, "</h", level, ">")
	return nil
}

func (f *Formatter) formatParagraph(br *ByteRenderer, para *Paragraph) error {

	// A title line that was not dropped by the parser
	if f.v.suppressParagraph(para.Text) {
		f.log.Debugw("paragraph suppressed", "line", para.Line)
		return nil
	}

	text, err := f.FormatText(para.Text, para.Line)
	if err != nil {
		return err
	}

	br.Renderln("<p>", text, "</p>")
	br.Renderln()
	return nil
}

func (f *Formatter) formatAnchor(br *ByteRenderer, anchor *Anchor) {
	br.Renderln("<anchor>", anchor.ID, "</anchor>")
}

// formatSource renders the code verbatim: it is escaped but never processed as inline markup
func (f *Formatter) formatSource(br *ByteRenderer, source *SourceBlock) {

	// The filter works on a copy, the parsed block is not modified
	filtered := &SourceBlock{
		Line: source.Line,
		Lang: source.Lang,
		Text: f.v.filterSource(source.Text),
	}

	lang := f.v.mapLang(filtered.Lang)
	text := EscapeString(filtered.Text)

	if len(lang) == 0 {
		br.Renderln("<source>\n", text, "\n</source>")
		return
	}

	if !KnownLanguage(lang) {
		f.log.Warnw("unknown language in source block", "file", f.doc.FileName, "line", source.Line, "lang", lang)
	}

	br.Renderln(`<source lang="`, lang, "\">\n", text, "\n</source>")
}

func (f *Formatter) formatList(br *ByteRenderer, tag string, items []string, line int) error {

	br.Renderln("<", tag, ">")

	for _, item := range items {
		text, err := f.FormatText(item, line)
		if err != nil {
			return err
		}
		br.Renderln("<li>", text, "</li>")
	}

	br.Renderln("</", tag, ">")
	return nil
}

// KnownLanguage returns true if lang names a language that can be highlighted
func KnownLanguage(lang string) bool {
	return lexers.Get(lang) != nil
}
