package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/commutree/internal/commute"
)

// Tree grid layout.
const (
	treeGlyph    = "🌳"
	treesPerRow  = 10
	maxTreeRows  = 5
	borderOffset = 6
)

// View renders the widget for the machine's current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.viz.State() {
	case commute.StateInput:
		return m.renderForm(false)
	case commute.StateLoading:
		return m.renderLoading()
	case commute.StateResult:
		return m.renderForm(true) + "\n" + m.renderResult(false)
	case commute.StateSharedResult:
		return m.renderShared()
	default:
		return ""
	}
}

// renderForm renders the commute input form. When compact is true the help
// footer is trimmed because a result box follows.
func (m Model) renderForm(compact bool) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("How many trees does your commute cost?"))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Home postcode  "))
	b.WriteString(m.homeInput.View())
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Work postcode  "))
	b.WriteString(m.workInput.View())
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Travel method  "))
	b.WriteString(m.renderMethodSelector())
	b.WriteString("\n")

	if msg := m.viz.ErrorMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if compact {
		b.WriteString(SubtleStyle.Render("enter: recalculate • ctrl+s: copy share link • esc: quit"))
	} else {
		b.WriteString(SubtleStyle.Render("tab: next field • ←/→: pick method • enter: calculate • esc: quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderMethodSelector renders the travel-method picker line.
func (m Model) renderMethodSelector() string {
	if m.methodIdx == methodNotSelected {
		style := SubtleStyle
		if m.focus == focusMethod {
			style = ValueStyle
		}
		return style.Render("‹ select with ←/→ ›")
	}

	label := commute.Methods()[m.methodIdx].Label()
	if m.focus == focusMethod {
		return ValueStyle.Render("‹ " + label + " ›")
	}
	return LabelStyle.Render(label)
}

// renderLoading renders the in-flight view; the form is inactive here so a
// second submission cannot start.
func (m Model) renderLoading() string {
	return "\n" + m.spin.View() + LabelStyle.Render(" Calculating carbon emissions…") + "\n"
}

// renderResult renders the estimate box for Result and SharedResult.
func (m Model) renderResult(shared bool) string {
	emissions, ok := m.viz.OneWayEmissionsKg()
	if !ok {
		return ""
	}
	trees := m.viz.TreesNeeded()

	var b strings.Builder
	if shared {
		b.WriteString(HeaderStyle.Render("A commute someone shared with you"))
	} else {
		b.WriteString(HeaderStyle.Render("Your commute, offset in trees"))
	}
	b.WriteString("\n\n")

	b.WriteString(BigStyle.Render(commute.FormatTrees(trees) + " trees"))
	b.WriteString(LabelStyle.Render(" needed per year"))
	b.WriteString("\n")
	if grid := renderTreeGrid(trees); grid != "" {
		b.WriteString(grid)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("One-way emissions   "))
	b.WriteString(ValueStyle.Render(commute.FormatKg(emissions) + " kg CO2e"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Annualized          "))
	b.WriteString(ValueStyle.Render(commute.FormatAnnualKg(commute.AnnualEmissionsKg(emissions)) + " kg CO2e"))
	b.WriteString("\n")
	if label := m.viz.MethodLabel(); label != "" {
		b.WriteString(LabelStyle.Render("Travel method       "))
		b.WriteString(ValueStyle.Render(label))
		b.WriteString("\n")
	}

	if link, err := m.viz.ShareLink(); err == nil {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Share  "))
		b.WriteString(SubtleStyle.Render(link))
		b.WriteString("\n")
	}

	if m.copied {
		b.WriteString(AckStyle.Render("Copied to clipboard!"))
		b.WriteString("\n")
	}

	width := m.width - borderOffset
	if width < 20 {
		width = 20
	}
	return BoxStyle.Width(width).Render(b.String())
}

// renderShared renders the read-only shared view.
func (m Model) renderShared() string {
	var b strings.Builder
	b.WriteString(m.renderResult(true))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("c: copy share link • r: calculate your own • q: quit"))
	b.WriteString("\n")
	return b.String()
}

// renderTreeGrid draws up to maxTreeRows rows of tree glyphs, with an
// overflow note when the count exceeds what fits.
func renderTreeGrid(trees int) string {
	if trees <= 0 {
		return ""
	}

	shown := trees
	capacity := treesPerRow * maxTreeRows
	if shown > capacity {
		shown = capacity
	}

	var rows []string
	for start := 0; start < shown; start += treesPerRow {
		count := shown - start
		if count > treesPerRow {
			count = treesPerRow
		}
		rows = append(rows, strings.Repeat(treeGlyph, count))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if trees > capacity {
		grid += "\n" + SubtleStyle.Render("… and "+commute.FormatTrees(trees-capacity)+" more")
	}
	return grid
}
