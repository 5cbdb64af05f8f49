package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownStyles carries the inline and block styles the renderer applies.
type MarkdownStyles struct {
	Heading   lipgloss.Style
	Emphasis  lipgloss.Style
	Strong    lipgloss.Style
	Code      lipgloss.Style
	Link      lipgloss.Style
	Quote     lipgloss.Style
	ListMark  string
	QuoteMark string
}

// DefaultMarkdownStyles renders legibly on dark terminals without a theme.
func DefaultMarkdownStyles() MarkdownStyles {
	return MarkdownStyles{
		Heading:   lipgloss.NewStyle().Bold(true),
		Emphasis:  lipgloss.NewStyle().Italic(true),
		Strong:    lipgloss.NewStyle().Bold(true),
		Code:      lipgloss.NewStyle().Faint(true),
		Link:      lipgloss.NewStyle().Underline(true),
		Quote:     lipgloss.NewStyle().Faint(true),
		ListMark:  "•",
		QuoteMark: "│",
	}
}

// MarkdownRenderer turns markdown section bodies into styled terminal text.
type MarkdownRenderer struct {
	width  int
	styles MarkdownStyles
	parser goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer wrapping prose at the given width.
func NewMarkdownRenderer(width int, styles MarkdownStyles) *MarkdownRenderer {
	if width < 20 {
		width = 20
	}
	return &MarkdownRenderer{
		width:  width,
		styles: styles,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Render parses the markdown source and renders it block by block. Parsing
// never fails; malformed markup simply renders as the text it is.
func (r *MarkdownRenderer) Render(source string) string {
	src := []byte(source)
	reader := text.NewReader(src)
	doc := r.parser.Parser().Parse(reader)

	var blocks []string
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		rendered := r.renderBlock(node, src, 0)
		if rendered != "" {
			blocks = append(blocks, rendered)
		}
	}

	return strings.Join(blocks, "\n\n")
}

func (r *MarkdownRenderer) renderBlock(node ast.Node, src []byte, depth int) string {
	switch n := node.(type) {
	case *ast.Heading:
		return r.styles.Heading.Render(r.renderInline(n, src))
	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.renderInline(node, src), depth)
	case *ast.List:
		return r.renderList(n, src, depth)
	case *ast.Blockquote:
		var inner []string
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			inner = append(inner, r.renderBlock(child, src, depth+1))
		}
		quoted := strings.Join(inner, "\n")
		var out []string
		for _, line := range strings.Split(quoted, "\n") {
			out = append(out, r.styles.Quote.Render(r.styles.QuoteMark+" "+line))
		}
		return strings.Join(out, "\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var lines []string
		segments := node.Lines()
		for i := 0; i < segments.Len(); i++ {
			segment := segments.At(i)
			lines = append(lines, r.styles.Code.Render("  "+strings.TrimRight(string(segment.Value(src)), "\n")))
		}
		return strings.Join(lines, "\n")
	case *ast.ThematicBreak:
		return strings.Repeat("─", r.width)
	}
	return r.wrap(r.renderInline(node, src), depth)
}

func (r *MarkdownRenderer) renderList(list *ast.List, src []byte, depth int) string {
	var items []string
	index := list.Start
	if index == 0 {
		index = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			parts = append(parts, r.renderBlock(child, src, depth+1))
		}

		mark := r.styles.ListMark
		if list.IsOrdered() {
			mark = fmt.Sprintf("%d.", index)
			index++
		}
		indent := strings.Repeat("  ", depth)
		items = append(items, indent+mark+" "+strings.Join(parts, "\n"))
	}

	return strings.Join(items, "\n")
}

// renderInline concatenates the styled inline content beneath a block node.
func (r *MarkdownRenderer) renderInline(node ast.Node, src []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.WriteString(string(n.Segment.Value(src)))
			if n.SoftLineBreak() {
				b.WriteString(" ")
			}
			if n.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.Emphasis:
			inner := r.renderInline(n, src)
			if n.Level >= 2 {
				b.WriteString(r.styles.Strong.Render(inner))
			} else {
				b.WriteString(r.styles.Emphasis.Render(inner))
			}
		case *ast.CodeSpan:
			b.WriteString(r.styles.Code.Render(r.renderInline(n, src)))
		case *ast.Link:
			label := r.renderInline(n, src)
			b.WriteString(r.styles.Link.Render(label))
			if dest := string(n.Destination); dest != "" && dest != label {
				b.WriteString(" (" + dest + ")")
			}
		case *ast.AutoLink:
			b.WriteString(r.styles.Link.Render(string(n.URL(src))))
		case *ast.Image:
			b.WriteString("[" + r.renderInline(n, src) + "]")
		case *ast.String:
			b.WriteString(string(n.Value))
		default:
			b.WriteString(r.renderInline(child, src))
		}
	}
	return b.String()
}

// wrap applies width-aware wrapping to already-styled text.
func (r *MarkdownRenderer) wrap(s string, depth int) string {
	if s == "" {
		return ""
	}
	width := r.width - depth*2
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
