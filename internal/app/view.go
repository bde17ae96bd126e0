package app

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/margin/internal/keymap"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/styles"
	"github.com/marcus/margin/internal/ui"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1
	minWidth     = 60
	minHeight    = 16
)

// regionHeaderTab is the root hit region for pane tabs in the header
// (Data: pane index).
const regionHeaderTab = "header-tab"

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		warn := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.StatusError.Render(warn))
	}

	m.rootMouse.Clear()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString("\n")
	b.WriteString(m.renderContent(m.width, m.contentHeight()))
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()

	// The menu box composites over the pane at its clamped position.
	// Its hit regions go into the root map last so they win the test
	// over anything underneath.
	if box := m.menu.Render(m.rootMouse); box != "" {
		x, y := m.menu.Position()
		bg = ui.OverlayAt(bg, box, x, y, m.width, m.height)
	}

	switch {
	case m.showHelp:
		return m.renderHelpOverlay(bg)
	case m.showStatus:
		return m.renderStatusOverlay(bg)
	case m.quitModal != nil:
		box := m.quitModal.Render(m.width, m.height, m.quitMouse)
		return ui.OverlayModal(bg, box, m.width, m.height)
	}

	return bg
}

// renderHeader renders the top bar with title, pane tabs, and clock,
// registering a hit region per tab.
func (m Model) renderHeader() string {
	title := styles.BarTitle.Render(" Margin")
	if host := backendHost(m.cfg.Backend.URL); host != "" {
		title += styles.Subtitle.Render(" / " + host)
	}
	title += " "
	titleWidth := lipgloss.Width(title)

	panes := m.registry.Plugins()
	var tabs []string
	var tabWidths []int
	totalTabWidth := 0
	for i, p := range panes {
		tab := styles.RenderTab(p.Name(), i, len(panes), i == m.activePane)
		tabs = append(tabs, tab)
		w := lipgloss.Width(tab)
		tabWidths = append(tabWidths, w)
		totalTabWidth += w
	}
	if len(panes) > 1 {
		totalTabWidth += len(panes) - 1
	}
	tabBar := strings.Join(tabs, " ")

	clock := styles.BarText.Render(m.clock.Format("15:04"))
	clockWidth := lipgloss.Width(clock)

	spacing := m.width - titleWidth - totalTabWidth - clockWidth
	if spacing < 0 {
		spacing = 0
	}

	x := titleWidth + spacing/2
	for i, w := range tabWidths {
		m.rootMouse.HitMap.AddRect(regionHeaderTab, x, 0, w, 1, i)
		x += w + 1
	}

	header := title + strings.Repeat(" ", spacing/2) + tabBar +
		strings.Repeat(" ", spacing-(spacing/2)) + clock
	return styles.Header.Width(m.width).Render(header)
}

// backendHost shortens the backend URL to its host for the header.
func backendHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// renderContent renders the active pane clipped to the content area.
func (m Model) renderContent(width, height int) string {
	p := m.ActivePane()
	if p == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render("No panes loaded"))
	}
	if height == 0 {
		return ""
	}
	content := p.View(width, height)
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// renderFooter renders the bottom bar with key hints, toast, and the
// last refresh time.
func (m Model) renderFooter() string {
	var status string
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		status = toastStyle.Render(m.statusMsg)
	}

	refresh := styles.Muted.Render("↻ " + m.lastRefresh.Format("15:04:05"))

	statusWidth := lipgloss.Width(status)
	refreshWidth := lipgloss.Width(refresh)
	availableForHints := m.width - statusWidth - refreshWidth - 4

	hintsStr := renderHintLineTruncated(m.footerHints(), availableForHints)

	spacing := m.width - lipgloss.Width(hintsStr) - statusWidth - refreshWidth
	if spacing < 0 {
		spacing = 0
	}

	footer := hintsStr + strings.Repeat(" ", spacing/2) + status +
		strings.Repeat(" ", spacing-(spacing/2)) + refresh
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(footer)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	var hints []footerHint
	if p := m.ActivePane(); p != nil {
		hints = m.paneFooterHints(p, m.activeContext)
	}
	hints = append(hints,
		footerHint{keys: "1-2", label: "panes"},
		footerHint{keys: "?", label: "help"},
		footerHint{keys: "q", label: "quit"},
	)
	return hints
}

// paneFooterHints lists the focused pane's commands for the current
// context, most important first.
func (m Model) paneFooterHints(p plugin.Plugin, context string) []footerHint {
	if context == "" || context == "global" {
		return nil
	}

	keysByCmd := bindingKeysByCommand(m.keymap.BindingsForContext(context))

	type cmdWithPriority struct {
		cmd      plugin.Command
		keys     []string
		priority int
	}
	var cmds []cmdWithPriority
	for _, cmd := range p.Commands() {
		if cmd.Context != context {
			continue
		}
		keys := keysByCmd[cmd.ID]
		if len(keys) == 0 {
			continue
		}
		priority := cmd.Priority
		if priority == 0 {
			priority = 99
		}
		cmds = append(cmds, cmdWithPriority{cmd, keys, priority})
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].priority < cmds[j].priority
	})

	var hints []footerHint
	for _, c := range cmds {
		hints = append(hints, footerHint{keys: formatBindingKeys(c.keys), label: c.cmd.Name})
	}
	return hints
}

func bindingKeysByCommand(bindings []keymap.Binding) map[string][]string {
	keysByCmd := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		keysByCmd[b.Command] = append(keysByCmd[b.Command], b.Key)
	}
	return keysByCmd
}

// renderHintLineTruncated renders hints but stops adding when maxWidth
// is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	for i, hint := range hints {
		if hint.keys == "" || hint.label == "" {
			continue
		}
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if i > 0 && result != "" {
			candidate = result + "  " + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// renderHelpOverlay renders the keyboard shortcut modal.
func (m Model) renderHelpOverlay(content string) string {
	var b strings.Builder

	b.WriteString(styles.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("Global"))
	b.WriteString("\n")
	m.renderBindingSection(&b, "global")
	b.WriteString("\n")

	if p := m.ActivePane(); p != nil {
		ctx := p.FocusContext()
		if ctx != "global" && ctx != "" {
			if bindings := m.keymap.BindingsForContext(ctx); len(bindings) > 0 {
				b.WriteString(styles.Title.Render(p.Name()))
				b.WriteString("\n")
				m.renderBindingSection(&b, ctx)
				b.WriteString("\n")
			}
		}
	}

	b.WriteString(styles.Subtle.Render("Press ? or esc to close"))

	modal := styles.ModalBox.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}

// renderBindingSection renders the bindings of one context, merging
// keys bound to the same command.
func (m Model) renderBindingSection(b *strings.Builder, context string) {
	bindings := m.keymap.BindingsForContext(context)

	seen := make(map[string]bool)
	for _, binding := range bindings {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true

		var keys []string
		for _, b2 := range bindings {
			if b2.Command == binding.Command {
				keys = append(keys, b2.Key)
			}
		}

		padded := fmt.Sprintf("%-11s", formatBindingKeys(keys))
		fmt.Fprintf(b, "  %s %s\n", styles.Muted.Render(padded), formatCommandName(binding.Command))
	}
}

func formatBindingKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, ", ")
}

func formatCommandName(cmd string) string {
	return strings.ReplaceAll(cmd, "-", " ")
}

// renderStatusOverlay renders the status modal: backend, cache, panes,
// and version info.
func (m Model) renderStatusOverlay(content string) string {
	var b strings.Builder

	logo := `
   __  ___                 _
  /  |/  /___ ________ _(_)___
 / /|_/ / __ ` + "`" + `/ ___/ __ ` + "`" + `/ / __ \
/ /  / / /_/ / /  / /_/ / / / / /
/_/  /_/\__,_/_/   \__, /_/_/ /_/
                  /____/
`
	b.WriteString(styles.Logo.Render(logo))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("Backend"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  URL:     %s\n", styles.Muted.Render(m.cfg.Backend.URL))
	fmt.Fprintf(&b, "  Timeout: %s\n", styles.Muted.Render(m.cfg.Backend.Timeout.String()))
	if m.cfg.Cache.Enabled {
		fmt.Fprintf(&b, "  Cache:   %s\n", styles.Muted.Render(m.cfg.Cache.Path))
	} else {
		fmt.Fprintf(&b, "  Cache:   %s\n", styles.Muted.Render("disabled"))
	}
	fmt.Fprintf(&b, "  Theme:   %s %s\n",
		styles.Muted.Render(styles.GetCurrentThemeName()),
		styles.Subtle.Render("(available: "+strings.Join(styles.ListThemes(), ", ")+")"))
	b.WriteString("\n")

	b.WriteString(styles.Title.Render("Panes"))
	b.WriteString("\n")
	for _, p := range m.registry.Plugins() {
		fmt.Fprintf(&b, "  %s %s: active\n", styles.StatusCompleted.Render("✓"), p.Name())
	}
	for id, reason := range m.registry.Unavailable() {
		fmt.Fprintf(&b, "  %s %s: %s\n", styles.StatusError.Render("✗"), id, reason)
	}
	b.WriteString("\n")

	b.WriteString(styles.Title.Render("Version"))
	b.WriteString("\n")
	if m.updateAvailable != nil {
		fmt.Fprintf(&b, "  margin: %s → %s ",
			styles.Muted.Render(m.currentVersion), m.updateAvailable.LatestVersion)
		b.WriteString(styles.StatusNotice.Render("available"))
		b.WriteString("\n")
		if m.updateAvailable.UpdateCommand != "" {
			fmt.Fprintf(&b, "  %s\n", styles.Subtle.Render(m.updateAvailable.UpdateCommand))
		}
	} else {
		fmt.Fprintf(&b, "  margin: %s %s\n",
			styles.Muted.Render(m.currentVersion), styles.StatusCompleted.Render("✓"))
	}
	b.WriteString("\n")

	if m.lastError != nil {
		b.WriteString(styles.Title.Render("Last Error"))
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render("  " + m.lastError.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Subtle.Render("Press ! or esc to close"))

	modal := styles.ModalBox.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}
