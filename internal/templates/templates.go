// Package templates renders the embedded notification templates.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

//go:embed html/*.html
var htmlFS embed.FS

// ErrTemplateNotFound is returned for a name with no embedded template.
var ErrTemplateNotFound = errors.New("template not found")

var parsed = template.Must(template.New("").Option("missingkey=zero").ParseFS(htmlFS, "html/*.html"))

// Render executes the template called name (file name without ".html")
// with data.
func Render(name string, data map[string]any) (string, error) {
	tmpl := parsed.Lookup(name + ".html")
	if tmpl == nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %q: %w", name, err)
	}

	return buf.String(), nil
}

// Names lists the embedded template names.
func Names() []string {
	var names []string
	for _, t := range parsed.Templates() {
		if name, ok := strings.CutSuffix(t.Name(), ".html"); ok {
			names = append(names, name)
		}
	}
	return names
}
