package api

import "strings"

// Type is the semantic type inferred for a configuration field.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeDouble
	TypeBool
	TypeStringArray
	TypeIntArray
	TypeDoubleArray
	TypeBoolArray
	TypeLogLevel
	// TypeObject is the fallback for values that are neither scalars,
	// arrays of scalars nor nested objects (JSON null in practice).
	TypeObject
)

var typeNames = [...]string{
	TypeString:      "String",
	TypeInt:         "Int",
	TypeDouble:      "Double",
	TypeBool:        "Bool",
	TypeStringArray: "StringArray",
	TypeIntArray:    "IntArray",
	TypeDoubleArray: "DoubleArray",
	TypeBoolArray:   "BoolArray",
	TypeLogLevel:    "LogLevel",
	TypeObject:      "Object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// IsArray reports whether t is one of the array tags.
func (t Type) IsArray() bool {
	switch t {
	case TypeStringArray, TypeIntArray, TypeDoubleArray, TypeBoolArray:
		return true
	}
	return false
}

// Node is an element of the schema tree: either a *Section or a *Field.
type Node interface {
	// NodeName returns the raw JSON key of the node.
	NodeName() string
	isNode()
}

// Section represents a JSON object: a named group of entries.
// The root of a schema is a Section with an empty name and path.
type Section struct {
	// Name is the raw JSON key, not sanitized.
	Name string
	// Path holds the raw names from the root down to and including this
	// section. Empty for the root.
	Path []string
	// Children preserves source key order.
	Children []Node
	// LogLevelScope is set when the section's own name marks it as a
	// log-level section; its direct fields are then typed TypeLogLevel.
	LogLevelScope bool
}

// Field represents a single JSON scalar or array value.
type Field struct {
	Name string
	Type Type
}

func (s *Section) NodeName() string { return s.Name }
func (*Section) isNode()             {}
func (f *Field) NodeName() string   { return f.Name }
func (*Field) isNode()               {}

// IsRoot reports whether s is the document root.
func (s *Section) IsRoot() bool { return len(s.Path) == 0 }

// DottedPath joins the raw section names from the root with ".".
func (s *Section) DottedPath() string {
	return strings.Join(s.Path, ".")
}

// Sections returns the direct child sections in source order.
func (s *Section) Sections() []*Section {
	var out []*Section
	for _, c := range s.Children {
		if sec, ok := c.(*Section); ok {
			out = append(out, sec)
		}
	}
	return out
}

// Fields returns the direct child fields in source order.
func (s *Section) Fields() []*Field {
	var out []*Field
	for _, c := range s.Children {
		if f, ok := c.(*Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Walk visits s and every descendant section in pre-order. Returning false
// from fn skips the section's subtree.
func (s *Section) Walk(fn func(*Section) bool) {
	if !fn(s) {
		return
	}
	for _, c := range s.Children {
		if sec, ok := c.(*Section); ok {
			sec.Walk(fn)
		}
	}
}

// DottedPaths lists the dotted path of every non-root section in pre-order.
func (s *Section) DottedPaths() []string {
	var paths []string
	s.Walk(func(sec *Section) bool {
		if !sec.IsRoot() {
			paths = append(paths, sec.DottedPath())
		}
		return true
	})
	return paths
}
