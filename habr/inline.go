package habr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/hesusruiz/md2habr/sliceedit"
)

// ErrUndefinedReference is wrapped by the error returned when a link uses a
// reference number with no definition
var ErrUndefinedReference = errors.New("undefined reference")

type UndefinedReferenceError struct {
	Filename string
	Line     int
	Key      string
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("%s:%d: %v [%s]", e.Filename, e.Line, ErrUndefinedReference, e.Key)
}

func (e *UndefinedReferenceError) Unwrap() error {
	return ErrUndefinedReference
}

// An inlineRule rewrites every match of re. The matches of a rule are
// replaced in a single pass over the text, before the next rule is applied.
type inlineRule struct {
	re     *regexp.Regexp
	format func(f *Formatter, line int, groups []string) (string, error)
}

// The order matters: bold has to be processed before italics
var inlineRules = []inlineRule{
	{regexp.MustCompile("`([^`]+)`"), (*Formatter).formatCode},
	{regexp.MustCompile(`\*\*([^\*]+)\*\*`), (*Formatter).formatBold},
	{regexp.MustCompile(`\*([^\*]+)\*`), (*Formatter).formatItalic},
	{regexp.MustCompile(`\[([^\[\]]+)\]\(([^\(\)]+)\)`), (*Formatter).formatLink},
	{regexp.MustCompile(`\[([^\[\]]+)\]\[(\d+)\]`), (*Formatter).formatLink},
}

func (f *Formatter) formatCode(line int, groups []string) (string, error) {
	return "<code>" + groups[1] + "</code>", nil
}

func (f *Formatter) formatBold(line int, groups []string) (string, error) {
	return "<b>" + groups[1] + "</b>", nil
}

func (f *Formatter) formatItalic(line int, groups []string) (string, error) {
	return "<i>" + groups[1] + "</i>", nil
}

// formatLink renders both inline links and reference links.
// A target made only of digits is a key of the reference table.
func (f *Formatter) formatLink(line int, groups []string) (string, error) {
	text, ref := groups[1], groups[2]

	if isDigits(ref) {
		key, err := strconv.Atoi(ref)
		url, ok := f.doc.Ref(key)
		if err != nil || !ok {
			return "", &UndefinedReferenceError{Filename: f.doc.FileName, Line: line, Key: ref}
		}
		ref = url
	}

	return "<a href='" + f.v.mapURL(ref) + "'>" + text + "</a>", nil
}

// FormatText rewrites the inline markup of text: code spans, bold, italics and links.
// line is the source line of the block, used in error messages.
func (f *Formatter) FormatText(text string, line int) (string, error) {

	for _, rule := range inlineRules {

		buf := sliceedit.NewBuffer([]byte(text))
		_, err := buf.ReplaceAllFunc(rule.re, func(groups []string) (string, error) {
			return rule.format(f, line, groups)
		})
		if err != nil {
			return "", err
		}

		text = buf.String()
	}

	return text, nil
}
