package habr

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	fenceMarker     = "```"
	headerMarker    = '#'
	unorderedMarker = "* "
	referenceMarker = "[1]: "
	anchorMarker    = "<a name="
)

// An ordered list starts with a line like "12. text"
var reOrderedListStart = regexp.MustCompile(`^[0-9]+\. `)

var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

type Parser struct {
	// The source of the document
	r *Reader

	// the name of the file being processed, for diagnostics
	fileName string

	// SkipLine tells which lines are dropped at the top level, before any block starts
	SkipLine func(line string) bool

	log *zap.SugaredLogger
}

// NewParser creates a parser reading lines from r.
// fileName is for logging/tracing purposes.
func NewParser(fileName string, r *Reader, logger *zap.SugaredLogger) *Parser {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Parser{
		r:        r,
		fileName: fileName,
		log:      logger,
	}
}

// ParseFromBytes parses src with the line skipping rules of variant v
func ParseFromBytes(fileName string, src []byte, v *Variant, logger *zap.SugaredLogger) (*Document, error) {

	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s: %w", fileName, ErrInvalidUTF8)
	}

	p := NewParser(fileName, NewReader(string(src)), logger)
	if v != nil {
		p.SkipLine = v.SkipLine
	}

	return p.Parse()
}

// ParseFromFile reads the whole file into memory and parses it
func ParseFromFile(fileName string, v *Variant, logger *zap.SugaredLogger) (*Document, error) {

	src, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	return ParseFromBytes(fileName, src, v, logger)
}

// Parse consumes the Reader until it is exhausted and builds the Document
func (p *Parser) Parse() (*Document, error) {

	doc := NewDocument()
	doc.FileName = p.fileName

	for {

		line, err := p.r.Peek()
		if errors.Is(err, ErrExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}

		// Blank lines separate blocks, they are not part of any
		if len(line) == 0 {
			p.r.Next()
			continue
		}

		if p.SkipLine != nil && p.SkipLine(line) {
			p.log.Debugw("line skipped", "line", p.r.LineNumber(), "text", line)
			p.r.Next()
			continue
		}

		block := p.parseNext(line)
		p.log.Debugw("block parsed", "type", block.Type(), "line", block.StartLine())

		// References are not rendered, they are used to resolve links
		if refs, ok := block.(*ReferenceTable); ok {
			doc.AddRefs(refs)
			continue
		}

		doc.Blocks = append(doc.Blocks, block)

	}

	return doc, nil

}

// parseNext selects the kind of block from the first line, which is not yet consumed.
// Every block parser consumes at least that line.
func (p *Parser) parseNext(line string) Block {
	switch {
	case strings.HasPrefix(line, fenceMarker):
		return p.parseSource()
	case line[0] == headerMarker:
		return p.parseHeader()
	case reOrderedListStart.MatchString(line):
		return p.parseOrderedList()
	case strings.HasPrefix(line, unorderedMarker):
		return p.parseUnorderedList()
	case strings.HasPrefix(line, referenceMarker):
		return p.parseReferences()
	case strings.HasPrefix(line, anchorMarker):
		return p.parseAnchor()
	default:
		return p.parseParagraph()
	}
}

func (p *Parser) parseParagraph() *Paragraph {
	para := &Paragraph{Line: p.r.LineNumber()}

	var text []string
	for line := range p.r.Lines() {
		if len(line) == 0 {
			break
		}
		text = append(text, trimLeftSpace(line))
	}

	para.Text = strings.Join(text, " ")
	return para
}

func (p *Parser) parseHeader() *Header {
	header := &Header{Line: p.r.LineNumber()}

	line, _ := p.r.Next()

	// The level is the number of '#' and the text is what follows them
	level, rest := TrimLeft(line, headerMarker)
	header.Level = level
	header.Text = trimLeftSpace(rest)

	return header
}

func (p *Parser) parseAnchor() *Anchor {
	anchor := &Anchor{Line: p.r.LineNumber()}

	line, _ := p.r.Next()

	// The id is whatever is between the first and the last quote.
	// A missing quote gives -1, which slice counts from the end of the line.
	anchor.ID = slice(line, strings.IndexByte(line, '"')+1, strings.LastIndexByte(line, '"'))

	return anchor
}

// parseSource reads a fenced block. A missing closing fence extends the block to the end of file.
func (p *Parser) parseSource() *SourceBlock {
	source := &SourceBlock{Line: p.r.LineNumber()}

	line, _ := p.r.Next()
	source.Lang = strings.TrimSpace(line[len(fenceMarker):])

	var body []string
	for line := range p.r.Lines() {
		if line == fenceMarker {
			break
		}
		body = append(body, line)
	}

	source.Text = strings.Join(body, "\n")
	return source
}

// orderedItem returns the text of a line starting a new ordered item, like "3. text"
func orderedItem(line string) (string, bool) {
	pos := strings.IndexByte(line, '.')
	if pos < 0 || !isDigits(line[:pos]) {
		return "", false
	}
	return line[pos+1:], true
}

// unorderedItem returns the text of a line starting a new unordered item.
// The asterisk can only be preceded by whitespace.
func unorderedItem(line string) (string, bool) {
	pos := strings.IndexByte(line, '*')
	if pos < 0 || (pos > 0 && !isBlank(line[:pos])) {
		return "", false
	}
	return line[pos+1:], true
}

// parseListItems accumulates lines until a blank line or the end of file.
// A line recognised by startItem starts a new item, any other line continues the current one.
func (p *Parser) parseListItems(startItem func(line string) (string, bool)) []string {
	var text, items []string

	for line := range p.r.Lines() {
		if len(line) == 0 {
			break
		}

		rest, ok := startItem(line)
		if !ok {
			text = append(text, trimLeftSpace(line))
			continue
		}

		// Flush the previous item
		if len(text) > 0 {
			items = append(items, strings.Join(text, " "))
		}
		text = []string{trimLeftSpace(rest)}
	}

	if len(text) > 0 {
		items = append(items, strings.Join(text, " "))
	}

	return items
}

func (p *Parser) parseOrderedList() *OrderedList {
	list := &OrderedList{Line: p.r.LineNumber()}
	list.Items = p.parseListItems(orderedItem)
	return list
}

func (p *Parser) parseUnorderedList() *UnorderedList {
	list := &UnorderedList{Line: p.r.LineNumber()}
	list.Items = p.parseListItems(unorderedItem)
	return list
}

// parseReference parses a line like "[12]: http://example.com"
func parseReference(line string) (int, string, bool) {
	pos1, pos2 := strings.IndexByte(line, '['), strings.Index(line, "]:")
	if pos1 != 0 || pos2 < 0 {
		return 0, "", false
	}

	key, err := strconv.Atoi(strings.TrimSpace(line[pos1+1 : pos2]))
	if err != nil {
		return 0, "", false
	}

	return key, trimLeftSpace(line[pos2+2:]), true
}

// parseReferences reads consecutive reference definitions.
// The first line which is not a definition is left in the Reader for the caller.
func (p *Parser) parseReferences() *ReferenceTable {
	table := &ReferenceTable{
		Line: p.r.LineNumber(),
		Refs: make(map[int]string),
	}

	for {
		line, err := p.r.Peek()
		if err != nil {
			break
		}

		key, url, ok := parseReference(line)
		if !ok {
			break
		}

		p.r.Next()
		table.Refs[key] = url
	}

	return table
}
