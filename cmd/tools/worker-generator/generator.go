// cmd/tools/worker-generator/generator.go
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"jobbly-workers/pkg/registry"
)

type field struct {
	Name string
	Type string
	JSON string
}

// WorkerData feeds the scaffold templates.
type WorkerData struct {
	Dir          string
	PackageName  string
	TaskType     string
	Description  string
	TimeoutExpr  string
	HasIdentity  bool
	Inputs       []field
	Outputs      []field
	RequiredList string
}

func newWorkerData(a *registry.Activity) (*WorkerData, error) {
	if a.TaskType == "" || a.Category == "" {
		return nil, fmt.Errorf("activity %s needs a task type and a category", a.ID)
	}

	d := &WorkerData{
		Dir:         filepath.ToSlash(filepath.Join(a.Category, a.TaskType)),
		PackageName: strings.ReplaceAll(a.TaskType, "-", ""),
		TaskType:    a.TaskType,
		Description: strings.TrimSuffix(a.Description, "."),
		TimeoutExpr: timeoutExpr(a.Timeout),
	}

	required := make([]string, 0, len(a.Inputs))
	for _, name := range a.Inputs {
		f := field{Name: goName(name), Type: "interface{}", JSON: name}
		if name == "identity" {
			f.Type = "identity.Identity"
			d.HasIdentity = true
		}
		d.Inputs = append(d.Inputs, f)
		required = append(required, fmt.Sprintf("%q", name))
	}
	d.RequiredList = strings.Join(required, ", ")

	for _, name := range a.Outputs {
		d.Outputs = append(d.Outputs, field{Name: goName(name), Type: "interface{}", JSON: name + ",omitempty"})
	}
	return d, nil
}

// goName exports a camelCase variable name, spelling a trailing Id as ID.
func goName(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if strings.HasSuffix(s, "Id") {
		s = strings.TrimSuffix(s, "Id") + "ID"
	}
	if strings.HasSuffix(s, "Ids") {
		s = strings.TrimSuffix(s, "Ids") + "IDs"
	}
	return s
}

func timeoutExpr(timeout string) string {
	d, err := time.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return "30 * time.Second"
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
}

var scaffold = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

// Render returns gofmt'ed sources keyed by file name.
func Render(d *WorkerData) (map[string][]byte, error) {
	out := make(map[string][]byte, len(scaffold))
	for name, text := range scaffold {
		tmpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, d); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", name, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", name, err)
		}
		out[name] = src
	}
	return out, nil
}

// Write renders the scaffold under root/<category>/<taskType>. Existing
// files are left alone unless force is set.
func Write(root string, d *WorkerData, force bool) ([]string, error) {
	files, err := Render(d)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(root, filepath.FromSlash(d.Dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	var written []string
	for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return written, fmt.Errorf("error writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
