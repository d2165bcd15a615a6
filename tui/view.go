package tui

import (
	"strconv"
	"strings"

	"cinematch/models"

	"github.com/charmbracelet/lipgloss"
)

const dropdownRows = 10

// View implements tea.Model.
func (m Model) View() string {
	st := m.sc.State()

	var b strings.Builder
	b.WriteString(brandStyle.Render("🎬 CineMatch"))
	b.WriteString("  ")
	b.WriteString(taglineStyle.Render("Discover your next favorite movie"))
	b.WriteString("\n\n")

	box := inputStyle
	if m.focus != focusSearch {
		box = blurredInputStyle
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")

	if st.Dropdown.Visible {
		b.WriteString(m.viewDropdown(st))
		b.WriteString("\n")
	}

	if st.Alert != "" {
		b.WriteString(alertStyle.Render(st.Alert))
		b.WriteString("\n")
	}

	if m.pending > 0 {
		b.WriteString(m.spinner.View() + " Finding the perfect movies for you...\n")
	}

	switch {
	case st.DashboardVisible:
		b.WriteString(m.viewTrending())
	case st.Results.Visible:
		b.WriteString(m.viewResults(st.Results))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewDropdown(st models.ViewState) string {
	var rows []string
	rows = append(rows, sectionTitleStyle.Render(st.Dropdown.Title))

	if len(st.Dropdown.Matches) == 0 {
		rows = append(rows, hintStyle.Render(st.Dropdown.Hint))
	} else {
		// Keep the highlighted match in view.
		start := 0
		if m.cursor >= dropdownRows {
			start = m.cursor - dropdownRows + 1
		}
		end := min(start+dropdownRows, len(st.Dropdown.Matches))
		for i := start; i < end; i++ {
			rows = append(rows, m.row(i, "▶ "+st.Dropdown.Matches[i]))
		}
		if more := len(st.Dropdown.Matches) - end; more > 0 {
			rows = append(rows, hintStyle.Render("  … "+strconv.Itoa(more)+" more"))
		}
	}

	rows = append(rows, "", sectionTitleStyle.Render("Browse by Genre"))
	offset := len(st.Dropdown.Matches)
	var genres []string
	for i, g := range m.sc.Catalog().Genres() {
		genres = append(genres, m.row(offset+i, "#"+g))
	}
	rows = append(rows, strings.Join(genres, "  "))

	return dropdownStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) row(i int, text string) string {
	if i == m.cursor {
		return highlightStyle.Render(text)
	}
	return text
}

func (m Model) viewTrending() string {
	titles := m.sc.Catalog().Trending()
	if len(titles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("🔥 Trending Now"))
	b.WriteString("\n")
	for _, t := range titles {
		b.WriteString("  • " + t + "\n")
	}
	return b.String()
}

func (m Model) viewResults(rs models.ResultsState) string {
	var b strings.Builder

	if rs.FeaturedVisible && rs.Featured != nil {
		b.WriteString(headingStyle.Render("★ Now Selected"))
		b.WriteString("\n")
		b.WriteString(featuredStyle.Render(rs.Featured.Title + "\n" + taglineStyle.Render(rs.Featured.Label)))
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render(rs.Heading))
	b.WriteString("\n")

	if rs.EmptyMessage != "" {
		b.WriteString(hintStyle.Render(rs.EmptyMessage))
		b.WriteString("\n")
		return b.String()
	}

	perRow := max(1, m.width/28)
	var line []string
	for i, c := range rs.Cards {
		style := cardStyle
		if m.focus == focusCards && i == m.cardCursor {
			style = activeCardStyle
		}
		line = append(line, style.Render(c.Title+"\n"+taglineStyle.Render("+ "+c.Label)))
		if len(line) == perRow || i == len(rs.Cards)-1 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
			b.WriteString("\n")
			line = nil
		}
	}
	return b.String()
}
