package book

// Tag names a content block variant as it appears in the source document.
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

const (
	TagHeading Tag = "heading"
	TagText    Tag = "text"
	TagList    Tag = "list"
	TagTable   Tag = "table"
	TagBox     Tag = "box"
)

// Block is a content block. The set of variants is closed; unrecognized
// source tags decode to Unknown.
type Block interface {
	Tag() Tag
	block()
}

// BoxStyle selects the visual treatment of a Box.
type BoxStyle string

const (
	BoxStyleNote    BoxStyle = "note"
	BoxStyleWarning BoxStyle = "warning"
	BoxStyleSummary BoxStyle = "summary"
	BoxStyleCard    BoxStyle = "card" // any unrecognized style
)

// Heading has Level >= 1 and trimmed Text.
type Heading struct {
	Level int
	Text  string
}

// Text is a trimmed paragraph.
type Text struct {
	Text string
}

// List holds only non-blank, trimmed items.
type List struct {
	Items   []string
	Ordered bool
	Title   string
}

// Table cells are opaque text. Headers has the first row's width when the
// source omitted headers but supplied rows.
type Table struct {
	Headers []string
	Rows    [][]string
	Title   string
	Note    string
}

// Box is a callout. An empty Title is rendered with the localized note label.
type Box struct {
	Style   BoxStyle
	Title   string
	Content string
}

// Unknown is a block whose tag this version does not understand.
type Unknown struct {
	Type string
}

func (*Heading) Tag() Tag { return TagHeading }
func (*Text) Tag() Tag    { return TagText }
func (*List) Tag() Tag    { return TagList }
func (*Table) Tag() Tag   { return TagTable }
func (*Box) Tag() Tag     { return TagBox }
func (u *Unknown) Tag() Tag {
	return Tag(u.Type)
}

func (*Heading) block() {}
func (*Text) block()    {}
func (*List) block()    {}
func (*Table) block()   {}
func (*Box) block()     {}
func (*Unknown) block() {}
