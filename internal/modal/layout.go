package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/styles"
)

// renderedSection pairs a section's rendered content with its
// measured height and focusables.
type renderedSection struct {
	content    string
	height     int
	focusables []FocusableInfo
}

// renderSections renders every section at the given content width and
// collects the focus order.
func (m *Modal) renderSections(contentWidth int) ([]renderedSection, []string) {
	focusID := m.currentFocusID()
	rendered := make([]renderedSection, 0, len(m.sections))
	var focusIDs []string

	for _, s := range m.sections {
		res := s.Render(contentWidth, focusID, m.hoverID)
		rendered = append(rendered, renderedSection{
			content:    res.Content,
			height:     measureHeight(res.Content),
			focusables: res.Focusables,
		})
		for _, f := range res.Focusables {
			focusIDs = append(focusIDs, f.ID)
		}
	}

	return rendered, focusIDs
}

// buildLayout renders the sections, windows them to the screen, and
// registers hit regions.
func (m *Modal) buildLayout(screenW, screenH int, handler *mouse.Handler) string {
	maxWidth := max(1, screenW-4)
	minWidth := min(MinModalWidth, maxWidth)
	modalWidth := clamp(m.width, minWidth, maxWidth)
	contentWidth := max(1, modalWidth-ModalPadding)

	// Height budget inside the border: title block plus hint line
	// come out of the viewport.
	headerLines := 0
	if m.title != "" {
		headerLines = 2 // title + blank line
	}
	footerLines := 0
	if m.showHints {
		footerLines = 1
	}
	maxViewportHeight := max(1, innerHeight(screenH)-headerLines-footerLines)

	// First pass at full width to measure.
	rendered, focusIDs := m.renderSections(contentWidth)
	m.focusIDs = focusIDs
	if len(m.focusIDs) > 0 && m.focusIdx >= len(m.focusIDs) {
		m.focusIdx = 0
	}

	visible := filterVisible(rendered)
	contentHeight := totalHeight(visible)

	// A scrollbar costs one column; re-render narrower when needed.
	needsScrollbar := contentHeight > maxViewportHeight
	if needsScrollbar && contentWidth > 1 {
		rendered, focusIDs = m.renderSections(contentWidth - 1)
		m.focusIDs = focusIDs
		if len(m.focusIDs) > 0 && m.focusIdx >= len(m.focusIDs) {
			m.focusIdx = 0
		}
		visible = filterVisible(rendered)
		contentHeight = totalHeight(visible)
		needsScrollbar = contentHeight > maxViewportHeight
	}

	// Cache focus positions for scroll-to-focus.
	m.focusPositions = make(map[string]focusablePos, len(focusIDs))
	sectionY := 0
	for _, r := range visible {
		for _, f := range r.focusables {
			m.focusPositions[f.ID] = focusablePos{
				y:      sectionY + f.OffsetY,
				height: f.Height,
			}
		}
		sectionY += r.height
	}

	parts := make([]string, 0, len(visible))
	for _, r := range visible {
		parts = append(parts, r.content)
	}
	fullContent := strings.Join(parts, "\n")

	viewportHeight := maxViewportHeight
	padToHeight := true
	if contentHeight <= maxViewportHeight {
		viewportHeight = max(1, contentHeight)
		padToHeight = false
	}
	m.lastViewportH = viewportHeight

	maxScroll := max(0, contentHeight-viewportHeight)
	m.scrollOffset = clamp(m.scrollOffset, 0, maxScroll)

	viewport := sliceLines(fullContent, m.scrollOffset, viewportHeight, padToHeight)
	if needsScrollbar {
		scrollbar := renderScrollbar(contentHeight, m.scrollOffset, viewportHeight)
		viewport = lipgloss.JoinHorizontal(lipgloss.Top, viewport, scrollbar)
	}

	var inner strings.Builder
	if m.title != "" {
		inner.WriteString(renderTitleLine(m.title, m.variant))
		inner.WriteString("\n")
	}
	inner.WriteString(viewport)
	if m.showHints {
		inner.WriteString("\n")
		inner.WriteString(styles.Muted.Render("Tab to switch · Enter to confirm · Esc to cancel"))
	}

	styled := m.modalStyle(modalWidth).Render(inner.String())
	modalH := lipgloss.Height(styled)
	modalX := (screenW - modalWidth) / 2
	modalY := (screenH - modalH) / 2

	if handler != nil {
		handler.HitMap.Clear()

		// Lowest priority first: backdrop, then the body absorber.
		handler.HitMap.AddRect("modal-backdrop", 0, 0, screenW, screenH, nil)
		handler.HitMap.AddRect("modal-body", modalX, modalY, modalWidth, modalH, nil)

		contentX := modalX + 3 // border(1) + padding(2)
		contentY := modalY + 2 // border(1) + padding(1)
		if m.title != "" {
			contentY += headerLines
		}

		sectionStartY := 0
		for _, r := range visible {
			for _, f := range r.focusables {
				absY := contentY + sectionStartY + f.OffsetY - m.scrollOffset
				if intersectsViewport(absY, f.Height, contentY, viewportHeight) {
					handler.HitMap.AddRect(f.ID, contentX+f.OffsetX, absY, f.Width, f.Height, f.ID)
				}
			}
			sectionStartY += r.height
		}
	}

	return styled
}

// filterVisible drops sections that rendered empty.
func filterVisible(sections []renderedSection) []renderedSection {
	visible := make([]renderedSection, 0, len(sections))
	for _, r := range sections {
		if r.content != "" || r.height > 0 {
			visible = append(visible, r)
		}
	}
	return visible
}

func totalHeight(sections []renderedSection) int {
	h := 0
	for _, r := range sections {
		h += r.height
	}
	return h
}

// renderScrollbar renders a one-column scrollbar for the viewport.
func renderScrollbar(totalLines, scrollOffset, viewportHeight int) string {
	if viewportHeight < 1 {
		return ""
	}

	thumbSize := clamp((viewportHeight*viewportHeight)/totalLines, 1, viewportHeight)

	maxOffset := max(1, totalLines-viewportHeight)
	thumbPos := (scrollOffset * (viewportHeight - thumbSize)) / maxOffset
	thumbPos = clamp(thumbPos, 0, viewportHeight-thumbSize)

	trackChar := lipgloss.NewStyle().Foreground(styles.TextSubtle).Render("│")
	thumbChar := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("┃")

	lines := make([]string, viewportHeight)
	for i := range viewportHeight {
		if i >= thumbPos && i < thumbPos+thumbSize {
			lines[i] = thumbChar
		} else {
			lines[i] = trackChar
		}
	}

	return strings.Join(lines, "\n")
}

// modalStyle returns the box style for the modal's variant.
func (m *Modal) modalStyle(width int) lipgloss.Style {
	borderColor := styles.Primary
	switch m.variant {
	case VariantDanger:
		borderColor = styles.Error
	case VariantWarning:
		borderColor = styles.Warning
	case VariantInfo:
		borderColor = styles.Info
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(styles.BgSecondary).
		Padding(1, 2).
		Width(width)
}

func renderTitleLine(title string, variant Variant) string {
	titleStyle := styles.ModalTitle
	switch variant {
	case VariantDanger:
		titleStyle = titleStyle.Foreground(styles.Error)
	case VariantWarning:
		titleStyle = titleStyle.Foreground(styles.Warning)
	case VariantInfo:
		titleStyle = titleStyle.Foreground(styles.Info)
	}
	return titleStyle.Render(title)
}

// innerHeight is the height available inside the modal border.
func innerHeight(screenH int) int {
	return max(1, screenH-6)
}

// sliceLines windows content to height lines starting at offset,
// padding with blanks when padToHeight is set.
func sliceLines(content string, offset, height int, padToHeight bool) string {
	lines := strings.Split(content, "\n")

	if offset >= len(lines) {
		offset = max(0, len(lines)-1)
	}
	lines = lines[offset:]

	if len(lines) > height {
		lines = lines[:height]
	}
	if padToHeight {
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

func intersectsViewport(y, h, viewportY, viewportH int) bool {
	return y < viewportY+viewportH && y+h > viewportY
}

func clamp(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
