package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
)

// Form is an ordered multipart/form-data body under construction.
type Form struct {
	parts []formPart
}

type formPart struct {
	name        string
	value       string
	filePath    string
	contentType string
}

// NewForm returns an empty form
func NewForm() *Form {
	return &Form{}
}

// AddField appends a plain text part
func (f *Form) AddField(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// AddFile appends a file part read from path when the form is encoded
func (f *Form) AddFile(name, path, contentType string) *Form {
	f.parts = append(f.parts, formPart{name: name, filePath: path, contentType: contentType})
	return f
}

// Fields returns the part names in order
func (f *Form) Fields() []string {
	names := make([]string, len(f.parts))
	for i, p := range f.parts {
		names[i] = p.name
	}
	return names
}

// Encode renders the form and returns the body together with its Content-Type
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.filePath == "" {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %s: %w", p.name, err)
			}
			continue
		}

		if err := writeFilePart(w, p); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, p formPart) error {
	file, err := os.Open(p.filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p.filePath, err)
	}
	defer file.Close()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, p.name, filepath.Base(p.filePath)))
	contentType := p.contentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", p.name, err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy %s: %w", p.filePath, err)
	}
	return nil
}
