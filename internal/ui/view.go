package ui

import (
	"fmt"
	"strings"
)

// View renders the full screen: header, catalog list, preview panel, footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader(styles))
	b.WriteString("\n")
	b.WriteString(m.renderList(styles))
	b.WriteString(m.renderPreview(styles))
	b.WriteString(m.renderFooter(styles))
	return b.String()
}

func (m Model) renderHeader(styles Styles) string {
	parts := []string{styles.Logo.Render("zodmap")}

	loaded := len(m.snapshot.Order)
	parts = append(parts,
		styles.MutedText.Render("Logs:")+" "+
			styles.Text.Render(fmt.Sprintf("%d/%d", loaded, m.snapshot.Total)))

	zoomLabel := fmt.Sprintf("z%.1f", m.gate.Zoom())
	if m.gate.ShouldRender() {
		parts = append(parts, styles.InfoText.Render(zoomLabel))
	} else {
		parts = append(parts, styles.MutedText.Render(zoomLabel+" (trajectories hidden)"))
	}

	if m.hasFocus {
		parts = append(parts, styles.MutedText.Render(
			fmt.Sprintf("@ %.5f,%.5f", m.focus.CenterLat, m.focus.CenterLon)))
	}

	if m.snapshot.PageLoading {
		parts = append(parts, m.spinner.View()+styles.MutedText.Render(" loading"))
	}
	if m.snapshot.PageErr != "" {
		parts = append(parts, styles.DangerText.Render("ERROR")+" "+
			styles.DangerText.Render(truncate(m.snapshot.PageErr, 60)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderList(styles Styles) string {
	if len(m.snapshot.Order) == 0 {
		if m.snapshot.PageLoading {
			return styles.MutedText.Render("  Loading catalog...") + "\n"
		}
		return styles.MutedText.Render("  No driving logs.") + "\n"
	}

	var b strings.Builder
	for i, id := range m.snapshot.Order {
		rec := m.snapshot.Records[id]

		marker := "  "
		if m.snapshot.Selected[id] {
			slot := m.colorSlots[id]
			marker = m.theme.TrajectoryStyle(slot).Render("●") + " "
		}

		label := id
		if rec.Summary.NumPoints != nil {
			label += styles.MutedText.Render(fmt.Sprintf("  %d pts", *rec.Summary.NumPoints))
		} else if rec.Detail != nil {
			label += styles.MutedText.Render(fmt.Sprintf("  %d pts", rec.Detail.NumPoints))
		}

		switch {
		case rec.Loading:
			label += "  " + m.spinner.View()
		case rec.Err != "":
			label += "  " + styles.DangerText.Render(truncate(rec.Err, 40))
		}

		if m.gate.Hovered() == id {
			label += "  " + styles.AccentText.Render("◆")
		}

		line := marker + label
		if i == m.cursor {
			line = styles.Cursor.Render("> " + label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.snapshot.HasMore {
		b.WriteString(styles.FaintText.Render("  m: load more"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPreview(styles Styles) string {
	sess, ok := m.previews.Current()
	if !ok {
		return ""
	}

	var body string
	switch {
	case sess.Loading:
		body = m.spinner.View() + styles.MutedText.Render(" fetching preview...")
	case sess.Err != nil:
		body = styles.DangerText.Render(truncate(sess.Err.Error(), 60))
	case sess.Image != nil:
		body = styles.Text.Render(fmt.Sprintf("%s, %d bytes", sess.Image.MIME, len(sess.Image.Data)))
	}

	return styles.AccentText.Render("Preview "+sess.LogID) + "  " + body + "\n"
}

func (m Model) renderFooter(styles Styles) string {
	type cmd struct{ key, desc string }
	commands := []cmd{
		{"j/k", "Navigate"},
		{"Space", "Select"},
		{"Enter", "Preview"},
		{"Esc", "Close"},
		{"m", "More"},
		{"r", "Reload"},
		{"+/-", "Zoom"},
		{"T", m.theme.Name},
		{"q", "Quit"},
	}

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+styles.MutedText.Render(":"+c.desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
