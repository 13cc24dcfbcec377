package richtext

// PartKind discriminates TextPart variants.
type PartKind int

const (
	PartText PartKind = iota
	PartImage
	PartTable
	PartBeginStyle
	PartEndStyle
)

// TextPart is one element of an inline run. BeginStyle/EndStyle pairs
// must nest and balance within any run handed to the renderer.
type TextPart struct {
	Kind  PartKind
	Text  string // PartText
	Src   string // PartImage
	Style Style  // PartBeginStyle
}

// StyleKind discriminates inline styles.
type StyleKind int

const (
	StyleLink StyleKind = iota
	StyleBold
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleMonospaced
)

// Style is one inline style. Href is set for StyleLink only.
type Style struct {
	Kind StyleKind
	Href string
}

// Run is an ordered sequence of TextParts describing formatted text.
type Run []TextPart

// Constructors for the common parts.

func Text(s string) TextPart      { return TextPart{Kind: PartText, Text: s} }
func Image(src string) TextPart   { return TextPart{Kind: PartImage, Src: src} }
func Table() TextPart             { return TextPart{Kind: PartTable} }
func Begin(s Style) TextPart      { return TextPart{Kind: PartBeginStyle, Style: s} }
func End() TextPart               { return TextPart{Kind: PartEndStyle} }
func Link(href string) Style      { return Style{Kind: StyleLink, Href: href} }
func Bold() Style                 { return Style{Kind: StyleBold} }
func Italic() Style               { return Style{Kind: StyleItalic} }
func Underline() Style            { return Style{Kind: StyleUnderline} }
func Strikethrough() Style        { return Style{Kind: StyleStrikethrough} }
func Monospaced() Style           { return Style{Kind: StyleMonospaced} }

// ParagraphKind discriminates paragraph variants.
type ParagraphKind int

const (
	ParagraphText ParagraphKind = iota
	ParagraphList
	ParagraphCode
)

// Paragraph is one authoring unit: a text run, a bullet list, or a
// code block (rendered wrapped in Monospaced).
type Paragraph struct {
	Kind  ParagraphKind
	Run   Run   // ParagraphText, ParagraphCode
	Items []Run // ParagraphList
}

// ItemRow is one name/summary pair of a tabular listing.
type ItemRow struct {
	Name    Run
	Summary Run
}

// Section is a heading plus ordered paragraphs. A nil Heading falls
// back to the document title during rendering.
type Section struct {
	Heading    Run
	Paragraphs []Paragraph
}

// Listing is a heading plus ordered item rows.
type Listing struct {
	Heading Run
	Rows    []ItemRow
}

// Document is the parsed rich-text document handed to the renderer.
type Document struct {
	Title       Run
	Declaration Run
	Description []Section
	Listings    []Listing
}
