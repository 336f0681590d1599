package render

import (
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// templateFuncs returns the helpers available to recipe templates
func templateFuncs(styled bool) template.FuncMap {
	heading := func(s string) string { return s }
	if styled {
		heading = func(s string) string { return headingStyle.Render(s) }
	}

	return template.FuncMap{
		"heading":   heading,
		"num":       FormatNumber,
		"orDefault": orDefault,
	}
}

// FormatNumber prints integral values without a fractional part and
// everything else with one decimal.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// orDefault returns fallback when s is blank
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
