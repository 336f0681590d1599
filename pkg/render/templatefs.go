package render

import (
	"io/fs"
	"os"

	"github.com/lepinkainen/recipe-forge/templates"
)

var (
	// templateOverrideFS points at the user-provided filesystem (usually the local templates directory).
	templateOverrideFS fs.FS = os.DirFS("templates")
	// templateFallbackFS is the embedded filesystem baked into the binary.
	templateFallbackFS fs.FS = templates.EmbeddedTemplates
)

// SetTemplateOverrideFS switches the primary filesystem used when loading templates.
func SetTemplateOverrideFS(f fs.FS) {
	templateOverrideFS = f
}

// readTemplate returns the named template from the override filesystem, or the embedded copy
func readTemplate(name string) ([]byte, string, error) {
	if templateOverrideFS != nil {
		if data, err := fs.ReadFile(templateOverrideFS, name); err == nil {
			return data, "override", nil
		}
	}

	data, err := fs.ReadFile(templateFallbackFS, name)
	if err != nil {
		return nil, "", err
	}
	return data, "embedded", nil
}
