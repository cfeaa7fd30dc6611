package settings

import (
	"fmt"
	"os"
	"sync"

	"github.com/agentic-research/settingsgen/internal/jsonc"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Document is a JSON-backed Source. It accepts the same whole-line "//"
// comments as the generator and can be reloaded in place.
type Document struct {
	mu   sync.RWMutex
	data any
}

// ParseJSON builds a Document from JSON text.
func ParseJSON(text string) (*Document, error) {
	d := &Document{}
	if err := d.Reload(text); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadFile reads and parses a JSON settings file.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	d, err := ParseJSON(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// FromValue wraps already decoded data (maps, slices, scalars).
func FromValue(data any) *Document {
	return &Document{data: data}
}

// Reload replaces the document contents. On error the previous contents
// are kept.
func (d *Document) Reload(text string) error {
	data, err := oj.ParseString(jsonc.String(text))
	if err != nil {
		return fmt.Errorf("parse settings: %w", err)
	}
	d.mu.Lock()
	d.data = data
	d.mu.Unlock()
	return nil
}

// Lookup walks path key by key. Keys are matched literally, so a key that
// itself contains dots ("Microsoft.AspNetCore") is one segment.
func (d *Document) Lookup(path []string) (any, bool) {
	d.mu.RLock()
	data := d.data
	d.mu.RUnlock()
	return lookup(data, path)
}

func lookup(data any, path []string) (any, bool) {
	if data == nil {
		return nil, false
	}
	x := jp.R()
	for _, key := range path {
		x = x.C(key)
	}
	found := x.Get(data)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// Map is a Source over nested map[string]any values.
type Map map[string]any

func (m Map) Lookup(path []string) (any, bool) {
	return lookup(map[string]any(m), path)
}
