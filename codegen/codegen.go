// Package codegen turns an appsettings JSON document into the generated key
// catalog and typed accessor sources.
//
// Generate is pure and suitable for in-process callers such as build tools.
// Generator.GenerateFile adds the file handling used by the CLI and the
// watcher.
package codegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/settingsgen/api"
	"github.com/agentic-research/settingsgen/internal/emit"
	"github.com/agentic-research/settingsgen/internal/ingest"
	"github.com/agentic-research/settingsgen/internal/writeback"
)

const (
	DefaultCatalogFile  = "appsettings_definitions.go"
	DefaultAccessorFile = "appsettings_accessor.go"
)

// Artifacts are the two generated Go sources.
type Artifacts struct {
	Catalog  string
	Accessor string
}

// Generate parses jsonText and renders both artifacts. It performs no I/O.
// Malformed input yields an *api.ParseError.
func Generate(jsonText, namespace, headerNote string) (Artifacts, error) {
	root, err := ingest.Build(jsonText)
	if err != nil {
		return Artifacts{}, err
	}
	out, err := emit.Emit(root, namespace, headerNote)
	if err != nil {
		return Artifacts{}, fmt.Errorf("emit settings code: %w", err)
	}
	return Artifacts{Catalog: out.Catalog, Accessor: out.Accessor}, nil
}

// Generator reads settings files and writes their artifacts.
type Generator struct {
	catalogFile  string
	accessorFile string
	headerNote   string
	fsFor        func(dir string) billy.Filesystem
}

type Option func(*Generator)

// WithFileNames overrides the artifact file names. Empty names keep the
// defaults.
func WithFileNames(catalog, accessor string) Option {
	return func(g *Generator) {
		if catalog != "" {
			g.catalogFile = catalog
		}
		if accessor != "" {
			g.accessorFile = accessor
		}
	}
}

// WithHeaderNote sets the note emitted under the generated-code header.
func WithHeaderNote(note string) Option {
	return func(g *Generator) { g.headerNote = note }
}

// WithFilesystem replaces the OS filesystem. fsFor returns a filesystem
// rooted at dir.
func WithFilesystem(fsFor func(dir string) billy.Filesystem) Option {
	return func(g *Generator) { g.fsFor = fsFor }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		catalogFile:  DefaultCatalogFile,
		accessorFile: DefaultAccessorFile,
		fsFor:        func(dir string) billy.Filesystem { return osfs.New(dir) },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateFile reads jsonPath and writes both artifacts to outputDir. An
// empty outputDir means the JSON file's directory, or the working directory
// when the path has none. Nothing is written when parsing fails. It returns
// the paths written.
func (g *Generator) GenerateFile(jsonPath, namespace, outputDir string) ([]string, error) {
	raw, err := g.read(jsonPath)
	if err != nil {
		return nil, err
	}

	arts, err := Generate(string(raw), namespace, g.headerNote)
	if err != nil {
		var perr *api.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%s: %w", jsonPath, err)
		}
		return nil, err
	}

	dir, err := resolveOutputDir(jsonPath, outputDir)
	if err != nil {
		return nil, err
	}
	fs := g.fsFor(dir)

	files := []struct {
		name, content string
	}{
		{g.catalogFile, arts.Catalog},
		{g.accessorFile, arts.Accessor},
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeback.WriteFile(fs, f.name, []byte(f.content)); err != nil {
			return written, &api.IOError{Op: "write", Path: path, Err: err}
		}
		written = append(written, path)
	}
	return written, nil
}

func (g *Generator) read(jsonPath string) ([]byte, error) {
	fs := g.fsFor(filepath.Dir(jsonPath))
	raw, err := util.ReadFile(fs, filepath.Base(jsonPath))
	if err != nil {
		return nil, &api.IOError{Op: "read", Path: jsonPath, Err: err}
	}
	return raw, nil
}

func resolveOutputDir(jsonPath, outputDir string) (string, error) {
	if outputDir != "" {
		return outputDir, nil
	}
	if dir := filepath.Dir(jsonPath); dir != "." && dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", &api.IOError{Op: "getwd", Path: ".", Err: err}
	}
	return wd, nil
}
