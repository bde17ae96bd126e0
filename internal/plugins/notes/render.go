package notes

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"

	"github.com/marcus/margin/internal/markup"
	"github.com/marcus/margin/internal/styles"
)

// rerenderDetail lays out the open note's content for the current
// width and view toggle. Rendered output is cached as lines so
// scrolling stays cheap.
func (p *Plugin) rerenderDetail() {
	if p.detail == nil {
		p.detailLines = nil
		return
	}
	width := p.detailWidth()
	var out string
	if p.showSource {
		out = highlightSource(p.detail.Content)
	} else {
		out = renderMarkdown(p.detail.Content, width)
	}
	p.detailLines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	max := len(p.detailLines) - p.detailBodyHeight()
	if max < 0 {
		max = 0
	}
	if p.detailScroll > max {
		p.detailScroll = max
	}
}

// renderMarkdown converts the note's span markup to markdown and
// renders it with the active theme. Falls back to plain text when
// the renderer cannot be built.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}
	md := markup.ToMarkdown(content)
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(styles.GetMarkdownTheme()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// highlightSource shows the note's raw markup with HTML highlighting.
func highlightSource(content string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, content, "html", "terminal256", styles.GetSyntaxTheme()); err != nil {
		return content
	}
	return sb.String()
}
