package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(60)
	categoryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dateStyle        = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("14"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Align(lipgloss.Center).Width(60)
)

// Text writes one bordered card per note, or the placeholder when empty.
func Text(w io.Writer, view View) error {
	if view.Empty {
		_, err := fmt.Fprintln(w, placeholderStyle.Render(view.Placeholder))
		return err
	}

	for _, c := range view.Cards {
		var b strings.Builder
		b.WriteString(categoryStyle.Render(strings.ToUpper(c.Category)))
		b.WriteString("  ")
		b.WriteString(idStyle.Render(fmt.Sprintf("#%d", c.ID)))
		b.WriteString("\n")
		b.WriteString(c.Text)
		b.WriteString("\n")
		b.WriteString(dateStyle.Render(c.Date))

		if _, err := fmt.Fprintln(w, cardStyle.Render(b.String())); err != nil {
			return err
		}
	}
	return nil
}
