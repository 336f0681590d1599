// Package render formats recipe display states as a text card, JSON or YAML.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/recipe-forge/internal/recipe"
)

// TemplateName is the template file used for text cards
const TemplateName = "recipe.tmpl"

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options configure a Renderer
type Options struct {
	// Styled enables terminal styling of headings
	Styled bool
}

// Renderer turns display states into output
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer loads the recipe template
func NewRenderer(opts Options) (*Renderer, error) {
	content, source, err := readTemplate(TemplateName)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", TemplateName, err)
	}

	tmpl, err := template.New(TemplateName).Funcs(templateFuncs(opts.Styled)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", TemplateName, err)
	}

	slog.Debug("Template loaded", "name", TemplateName, "source", source)
	return &Renderer{tmpl: tmpl}, nil
}

// Text renders a human-readable card. Non-ready states print their message.
func (r *Renderer) Text(d recipe.Display) (string, error) {
	if !d.IsReady() {
		return d.Message + "\n", nil
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, card{Record: d.Record, Transcription: d.Transcription}); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", TemplateName, err)
	}
	return buf.String(), nil
}

// card is the data passed to the text template
type card struct {
	recipe.Record
	Transcription string
}

// document is the machine-readable shape of a display state
type document struct {
	Kind          string         `json:"kind" yaml:"kind"`
	Transcription string         `json:"transcription,omitempty" yaml:"transcription,omitempty"`
	Recipe        *recipe.Record `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Message       string         `json:"message,omitempty" yaml:"message,omitempty"`
}

func toDocument(d recipe.Display) document {
	doc := document{Kind: d.Kind.String(), Transcription: d.Transcription, Message: d.Message}
	if d.IsReady() {
		rec := d.Record
		doc.Recipe = &rec
	}
	return doc
}

// JSON renders the display state as indented JSON
func JSON(d recipe.Display) (string, error) {
	data, err := json.MarshalIndent(toDocument(d), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return string(data) + "\n", nil
}

// YAML renders the display state as YAML
func YAML(d recipe.Display) (string, error) {
	data, err := yaml.Marshal(toDocument(d))
	if err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return string(data), nil
}

// Write renders d in the given format to w
func (r *Renderer) Write(w io.Writer, d recipe.Display, format Format) error {
	var (
		out string
		err error
	)
	switch format {
	case FormatJSON:
		out, err = JSON(d)
	case FormatYAML:
		out, err = YAML(d)
	default:
		out, err = r.Text(d)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}
