// Package help renders key binding menus, both as a full-screen page and as
// a single line that fits under the results.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Menu []Section

type Section struct {
	Title string
	Keys  []Key
}

type Key struct {
	Keys string
	Desc string
}

var (
	Monochrome = &Styles{
		Container: lipgloss.NewStyle(),
		Header:    lipgloss.NewStyle().Transform(strings.ToUpper),
		Keys:      lipgloss.NewStyle().Bold(true),
		Desc:      lipgloss.NewStyle().Italic(true),
	}
	Colored = &Styles{
		Container: lipgloss.NewStyle().
			Padding(2, 4),
		Header: lipgloss.NewStyle().
			Underline(true).
			Bold(true).
			MarginBottom(1).
			Foreground(lipgloss.Color("#FFFF00")),
		Keys: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#999999")),
		Desc: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.Color("#FFFFFF")),
	}
)

type Styles struct {
	Container lipgloss.Style
	Header    lipgloss.Style
	Keys      lipgloss.Style
	Desc      lipgloss.Style
}

// Render lays out every section as an aligned two-column list.
func (m Menu) Render(styles *Styles) string {
	var out strings.Builder
	var longest int
	for _, section := range m {
		for _, k := range section.Keys {
			if l := lipgloss.Width(k.Keys); l > longest {
				longest = l
			}
		}
	}
	for _, section := range m {
		out.WriteString(styles.Header.Render(section.Title) + "\n")
		for _, k := range section.Keys {
			pad := strings.Repeat(" ", longest-lipgloss.Width(k.Keys))
			out.WriteString(fmt.Sprintf("  %s%s %s\n", styles.Keys.Render(k.Keys), pad, styles.Desc.Render(k.Desc)))
		}
		out.WriteString("\n")
	}
	return styles.Container.Render(out.String())
}

// RenderInline packs as many of the section's keys as fit into height
// lines of the given width, in order, dropping the rest.
func (s Section) RenderInline(styles *Styles, width, height int) string {
	lines := make([]string, 0, height)
	i := 0
	for range height {
		var line strings.Builder
		lineLength := 0
		for ; i < len(s.Keys); i++ {
			k := s.Keys[i]
			rendered := fmt.Sprintf("%s: %s", styles.Keys.Render(k.Keys), styles.Desc.Render(k.Desc))
			w := lipgloss.Width(rendered)
			if lineLength > 0 {
				w += 4
			}
			if lineLength+w > width {
				break
			}
			if lineLength > 0 {
				line.WriteString("    ")
			}
			line.WriteString(rendered)
			lineLength += w
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
