package habr

import (
	"strconv"
)

// A BlockType is the kind of a Block.
type BlockType uint32

const (
	ErrorBlock BlockType = iota
	ParagraphBlock
	HeaderBlock
	AnchorBlock
	SourceBlockType
	OrderedListBlock
	UnorderedListBlock
	ReferenceBlock
)

// String returns a string representation of the BlockType.
func (t BlockType) String() string {
	switch t {
	case ErrorBlock:
		return "Error"
	case ParagraphBlock:
		return "Paragraph"
	case HeaderBlock:
		return "Header"
	case AnchorBlock:
		return "Anchor"
	case SourceBlockType:
		return "Source"
	case OrderedListBlock:
		return "OrderedList"
	case UnorderedListBlock:
		return "UnorderedList"
	case ReferenceBlock:
		return "References"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// Block is one semantic unit of the document.
// The set of implementations is closed: only the types in this file satisfy it.
type Block interface {
	Type() BlockType
	// StartLine is the number of the source line where the block starts
	StartLine() int
	block()
}

// Paragraph is a run of non-blank lines joined with spaces.
type Paragraph struct {
	Line int
	Text string
}

// Header has a level equal to the number of leading '#' characters.
type Header struct {
	Line  int
	Level int
	Text  string
}

// Anchor is a named location in the document, rendered verbatim.
type Anchor struct {
	Line int
	ID   string
}

// SourceBlock is a fenced code sample. Lang may be empty.
type SourceBlock struct {
	Line int
	Lang string
	Text string
}

// OrderedList holds the text of each item, in source order.
type OrderedList struct {
	Line  int
	Items []string
}

// UnorderedList holds the text of each item, in source order.
type UnorderedList struct {
	Line  int
	Items []string
}

// ReferenceTable is produced while parsing "[N]: url" definitions.
// It is merged into the Document and never stored as a block.
type ReferenceTable struct {
	Line int
	Refs map[int]string
}

func (b *Paragraph) Type() BlockType      { return ParagraphBlock }
func (b *Header) Type() BlockType         { return HeaderBlock }
func (b *Anchor) Type() BlockType         { return AnchorBlock }
func (b *SourceBlock) Type() BlockType    { return SourceBlockType }
func (b *OrderedList) Type() BlockType    { return OrderedListBlock }
func (b *UnorderedList) Type() BlockType  { return UnorderedListBlock }
func (b *ReferenceTable) Type() BlockType { return ReferenceBlock }

func (b *Paragraph) StartLine() int      { return b.Line }
func (b *Header) StartLine() int         { return b.Line }
func (b *Anchor) StartLine() int         { return b.Line }
func (b *SourceBlock) StartLine() int    { return b.Line }
func (b *OrderedList) StartLine() int    { return b.Line }
func (b *UnorderedList) StartLine() int  { return b.Line }
func (b *ReferenceTable) StartLine() int { return b.Line }

func (*Paragraph) block()      {}
func (*Header) block()         {}
func (*Anchor) block()         {}
func (*SourceBlock) block()    {}
func (*OrderedList) block()    {}
func (*UnorderedList) block()  {}
func (*ReferenceTable) block() {}

// Document is the result of parsing: the blocks in source order and the
// table of numeric references used by links like [text][N].
type Document struct {
	FileName string
	Blocks   []Block
	Refs     map[int]string
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{
		Refs: make(map[int]string),
	}
}

// AddRefs merges a reference table into the document. A key defined more
// than once keeps the last URL.
func (d *Document) AddRefs(t *ReferenceTable) {
	for k, v := range t.Refs {
		d.Refs[k] = v
	}
}

// Ref returns the URL registered for key
func (d *Document) Ref(key int) (string, bool) {
	url, ok := d.Refs[key]
	return url, ok
}
