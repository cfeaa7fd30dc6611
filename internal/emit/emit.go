// Package emit renders a settings schema as two Go source files: a key
// catalog and a typed accessor layer reading through package settings.
package emit

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/agentic-research/settingsgen/api"
	"github.com/agentic-research/settingsgen/internal/writeback"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmplFuncs = template.FuncMap{
	"quote": strconv.Quote,
	// comment renders raw JSON keys safely inside a line comment.
	"comment": strconv.Quote,
}

var templates = template.Must(
	template.New("").Funcs(tmplFuncs).ParseFS(templateFS, "templates/*.tmpl"),
)

const (
	catalogTemplate  = "catalog.go.tmpl"
	accessorTemplate = "accessor.go.tmpl"
)

// fileData is the input shared by both templates.
type fileData struct {
	Namespace   string
	Package     string
	HeaderLines []string
	Root        *sectionPlan
}

// Output holds both rendered artifacts.
type Output struct {
	Catalog  string
	Accessor string
}

// Emit renders the catalog and the accessor from one naming plan, so every
// accessor reference resolves to a catalog member.
func Emit(root *api.Section, namespace, headerNote string) (Output, error) {
	data := newFileData(root, namespace, headerNote)

	catalog, err := render(catalogTemplate, data)
	if err != nil {
		return Output{}, err
	}
	accessor, err := render(accessorTemplate, data)
	if err != nil {
		return Output{}, err
	}
	return Output{Catalog: catalog, Accessor: accessor}, nil
}

// EmitCatalog renders only the key catalog.
func EmitCatalog(root *api.Section, namespace, headerNote string) (string, error) {
	return render(catalogTemplate, newFileData(root, namespace, headerNote))
}

// EmitAccessor renders only the accessor layer.
func EmitAccessor(root *api.Section, namespace, headerNote string) (string, error) {
	return render(accessorTemplate, newFileData(root, namespace, headerNote))
}

func newFileData(root *api.Section, namespace, headerNote string) fileData {
	if root == nil {
		root = &api.Section{}
	}
	return fileData{
		Namespace:   oneLine(namespace),
		Package:     PackageName(namespace),
		HeaderLines: noteLines(headerNote),
		Root:        plan(root),
	}
}

func render(name string, data fileData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	out, err := writeback.FormatGo(buf.Bytes(), strings.TrimSuffix(name, ".tmpl"))
	if err != nil {
		return "", fmt.Errorf("format generated code: %w", err)
	}
	return string(out), nil
}

func noteLines(note string) []string {
	note = strings.TrimRight(strings.ReplaceAll(note, "\r\n", "\n"), "\n")
	if strings.TrimSpace(note) == "" {
		return nil
	}
	lines := strings.Split(note, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(strings.ReplaceAll(l, "\r", " "), " \t")
	}
	return lines
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
