package habr

import (
	"fmt"
	"strings"
)

// RustbookBaseURL is prepended to relative links of the Rust book
const RustbookBaseURL = "http://kgv.github.io/rust_book_ru/src/"

// titleMarker starts the lines carrying the title of a book chapter
const titleMarker = "% "

// A Variant customizes the conversion for a publishing target.
// A nil hook keeps the text unchanged.
type Variant struct {
	Name string

	// SkipLine drops a line at the top level of the document, before it starts a block
	SkipLine func(line string) bool

	// MapURL rewrites the target of every link
	MapURL func(url string) string

	// MapLang maps the language tag of a source block. An empty result renders the block without language
	MapLang func(lang string) string

	// MapHeaderLevel maps the level of a header to the level of the heading tag
	MapHeaderLevel func(level int) int

	// FilterSource rewrites the body of a source block before it is escaped
	FilterSource func(text string) string

	// SuppressParagraph returns true for paragraphs which are not rendered
	SuppressParagraph func(text string) bool
}

func (v *Variant) mapURL(url string) string {
	if v.MapURL == nil {
		return url
	}
	return v.MapURL(url)
}

func (v *Variant) mapLang(lang string) string {
	if v.MapLang == nil {
		return lang
	}
	return v.MapLang(lang)
}

func (v *Variant) mapHeaderLevel(level int) int {
	if v.MapHeaderLevel == nil {
		return level
	}
	return v.MapHeaderLevel(level)
}

func (v *Variant) filterSource(text string) string {
	if v.FilterSource == nil {
		return text
	}
	return v.FilterSource(text)
}

func (v *Variant) suppressParagraph(text string) bool {
	return v.SuppressParagraph != nil && v.SuppressParagraph(text)
}

// Generic converts the document without any customization
var Generic = &Variant{
	Name: "generic",
}

// Rustbook converts chapters of the Rust book
var Rustbook = &Variant{
	Name:              "rustbook",
	SkipLine:          isTitleLine,
	MapURL:            rustbookURL,
	MapLang:           rustbookLang,
	MapHeaderLevel:    func(level int) int { return level + 1 },
	FilterSource:      dropHiddenLines,
	SuppressParagraph: isTitleLine,
}

// VariantByName returns the variant called name
func VariantByName(name string) (*Variant, error) {
	for _, v := range []*Variant{Generic, Rustbook} {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unknown variant %q", name)
}

func isTitleLine(line string) bool {
	return strings.HasPrefix(line, titleMarker)
}

// rustbookURL makes relative links absolute. Links to fragments of the same page are kept.
func rustbookURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "#") {
		return url
	}
	return RustbookBaseURL + url
}

// rustbookLang labels all the Rust examples ("rust", "rust-example", "rust,ignore", ...) as plain "rust".
// Other code is not highlighted.
func rustbookLang(lang string) string {
	if strings.HasPrefix(lang, "rust") {
		return "rust"
	}
	return ""
}

// dropHiddenLines removes the lines that the book toolchain hides from the examples:
// a single '#' or starting with "# "
func dropHiddenLines(text string) string {
	lines := strings.Split(text, "\n")

	kept := lines[:0]
	for _, line := range lines {
		if line == "#" || strings.HasPrefix(line, "# ") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
