package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Project describes a starter project to generate.
type Project struct {
	Name      string
	Kind      string
	Framework string
}

// Kinds returns the supported project kinds.
func Kinds() []string {
	return []string{"chatbot", "classifier", "api"}
}

func validKind(kind string) bool {
	for _, k := range Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Generate writes the starter files for the project into a new directory
// under root named after the project. An existing non-empty target is
// refused rather than overwritten.
func Generate(root string, p Project) (string, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "", fmt.Errorf("project name cannot be empty")
	}
	kind := strings.ToLower(strings.TrimSpace(p.Kind))
	if !validKind(kind) {
		return "", fmt.Errorf("unknown project kind %q (supported: %s)", p.Kind, strings.Join(Kinds(), ", "))
	}
	if p.Framework == "" {
		p.Framework = "pytorch"
	}
	p.Name = name
	p.Kind = kind

	dir := filepath.Join(root, name)
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return "", fmt.Errorf("target directory %s already exists and is not empty", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create project directory: %w", err)
	}

	for filename, tmpl := range templatesFor(kind) {
		if err := renderFile(filepath.Join(dir, filename), tmpl, p); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func renderFile(path string, tmpl string, p Project) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", filepath.Base(path), err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := t.Execute(f, p); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
