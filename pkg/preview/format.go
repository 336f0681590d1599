package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/pkg/render"
)

// wrapText wraps text to the specified width, breaking at word boundaries when possible.
// Widths are measured in terminal cells, so styled words count only their visible text.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 70
	}

	var result strings.Builder
	var line strings.Builder
	lineLen := 0

	words := strings.Fields(text)
	for i, word := range words {
		wordLen := lipgloss.Width(word)

		// If adding this word would exceed width, start a new line
		if lineLen > 0 && lineLen+1+wordLen > width {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			lineLen = 0
		}

		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}

		line.WriteString(word)
		lineLen += wordLen

		if i == len(words)-1 {
			result.WriteString(line.String())
		}
	}

	return result.String()
}

// formatLines renders d and wraps every paragraph line to width.
// Blank lines are preserved.
func formatLines(r *render.Renderer, d recipe.Display, mode ViewMode, width int) []string {
	var (
		out string
		err error
	)
	if mode == JSONViewMode {
		out, err = render.JSON(d)
	} else {
		out, err = r.Text(d)
	}
	if err != nil {
		return []string{"Render error: " + err.Error()}
	}

	out = strings.TrimRight(out, "\n")
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if mode == JSONViewMode || strings.TrimSpace(line) == "" {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, strings.Split(wrapText(line, width), "\n")...)
	}
	return lines
}
