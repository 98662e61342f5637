package marklite

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/ui/theme"
)

var (
	h1Style = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	h2Style = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	h3Style = lipgloss.NewStyle().Bold(true).Foreground(theme.Text)

	bodyStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	boldStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	italicStyle = lipgloss.NewStyle().Italic(true).Foreground(theme.Text)

	bulletStyle = lipgloss.NewStyle().Foreground(theme.Accent)
)

// Render converts slide content to styled terminal text wrapped to the
// given width.
func Render(content string, width int) string {
	if width <= 0 {
		width = 80
	}

	var out []string
	for _, block := range Parse(content) {
		switch block.Kind {
		case BlockHeading1:
			out = append(out, h1Style.Width(width).Render(renderInline(block.Text)))
		case BlockHeading2:
			out = append(out, h2Style.Width(width).Render(renderInline(block.Text)))
		case BlockHeading3:
			out = append(out, h3Style.Width(width).Render(renderInline(block.Text)))
		case BlockList:
			var lines []string
			for i, item := range block.Items {
				marker := bulletStyle.Render("•") + " "
				if block.Ordered {
					marker = bulletStyle.Render(fmt.Sprintf("%d.", i+1)) + " "
				}
				pad := strings.Repeat(" ", lipgloss.Width(marker))
				body := bodyStyle.Width(width - lipgloss.Width(marker)).Render(renderInline(item))
				lines = append(lines, marker+strings.ReplaceAll(body, "\n", "\n"+pad))
			}
			out = append(out, strings.Join(lines, "\n"))
		default:
			out = append(out, bodyStyle.Width(width).Render(renderInline(block.Text)))
		}
	}

	return strings.Join(out, "\n\n")
}

// renderInline applies bold and italic styling to a line's spans.
func renderInline(text string) string {
	var b strings.Builder
	for _, span := range ParseInline(text) {
		switch span.Style {
		case SpanBold:
			b.WriteString(boldStyle.Render(span.Text))
		case SpanItalic:
			b.WriteString(italicStyle.Render(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
