// Package marklite parses the small markdown subset used in generated
// slide content: #/##/### headings, bulleted and numbered lists, blank
// line paragraph breaks, and inline **bold** / *italic* spans.
package marklite

import "strings"

// BlockKind tags a parsed block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockList
)

// Block is one structural element of a slide body. Text holds the
// content for headings and paragraphs; Items holds list entries.
// Ordered is true for numbered lists.
type Block struct {
	Kind    BlockKind
	Text    string
	Items   []string
	Ordered bool
}

// Parse splits slide content into blocks. Contiguous list lines of the
// same style group into a single list block; a blank line, heading,
// plain paragraph or a switch between bullet and numbered style ends
// the run.
func Parse(content string) []Block {
	var blocks []Block
	var listItems []string
	var listOrdered bool

	flushList := func() {
		if len(listItems) > 0 {
			blocks = append(blocks, Block{Kind: BlockList, Items: listItems, Ordered: listOrdered})
			listItems = nil
		}
	}

	addItem := func(item string, ordered bool) {
		if len(listItems) > 0 && listOrdered != ordered {
			flushList()
		}
		listOrdered = ordered
		listItems = append(listItems, item)
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "# "):
			flushList()
			blocks = append(blocks, Block{Kind: BlockHeading1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			flushList()
			blocks = append(blocks, Block{Kind: BlockHeading2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			flushList()
			blocks = append(blocks, Block{Kind: BlockHeading3, Text: line[4:]})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			addItem(line[2:], false)
		case isNumberedItem(line):
			_, item, _ := strings.Cut(line, ". ")
			addItem(strings.TrimSpace(item), true)
		case line == "":
			flushList()
		default:
			flushList()
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: line})
		}
	}
	flushList()

	return blocks
}

// isNumberedItem reports whether the line looks like "3. item".
func isNumberedItem(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(line[i:], ". ")
}

// SpanStyle tags an inline span.
type SpanStyle int

const (
	SpanPlain SpanStyle = iota
	SpanBold
	SpanItalic
)

// Span is one run of inline text with a single style.
type Span struct {
	Style SpanStyle
	Text  string
}

// ParseInline scans a line for **bold** and *italic* spans in a single
// left-to-right pass. A "**" delimiter is always tried before "*", so
// a bold span can never be mis-read as italic. Unclosed delimiters are
// emitted as literal text.
func ParseInline(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Style: SpanPlain, Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], "**") {
			if end := strings.Index(text[i+2:], "**"); end >= 0 && end > 0 {
				flushPlain()
				spans = append(spans, Span{Style: SpanBold, Text: text[i+2 : i+2+end]})
				i += 2 + end + 2
				continue
			}
			plain.WriteString("**")
			i += 2
			continue
		}
		if text[i] == '*' {
			if end := strings.IndexByte(text[i+1:], '*'); end > 0 {
				flushPlain()
				spans = append(spans, Span{Style: SpanItalic, Text: text[i+1 : i+1+end]})
				i += 1 + end + 1
				continue
			}
			plain.WriteByte('*')
			i++
			continue
		}
		plain.WriteByte(text[i])
		i++
	}
	flushPlain()

	if spans == nil {
		return []Span{{Style: SpanPlain, Text: text}}
	}
	return spans
}
