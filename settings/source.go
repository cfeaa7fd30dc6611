package settings

import (
	"os"
	"strings"
)

// Source resolves a path of raw configuration keys to a value.
// Implementations must be safe for concurrent use.
type Source interface {
	Lookup(path []string) (any, bool)
}

// Scope is a Source bound to a section path.
type Scope struct {
	src   Source
	names []string
}

// Section binds src to the section reached through names. No names binds
// the document root.
func Section(src Source, names ...string) Scope {
	return Scope{src: src, names: append([]string(nil), names...)}
}

// Section returns the child scope called name.
func (s Scope) Section(name string) Scope {
	names := make([]string, 0, len(s.names)+1)
	names = append(names, s.names...)
	return Scope{src: s.src, names: append(names, name)}
}

// Path returns the section names joined with ".".
func (s Scope) Path() string {
	return strings.Join(s.names, ".")
}

// Names returns a copy of the section names.
func (s Scope) Names() []string {
	return append([]string(nil), s.names...)
}

// Lookup resolves key inside the scope. A nil source finds nothing.
func (s Scope) Lookup(key string) (any, bool) {
	if s.src == nil {
		return nil, false
	}
	path := make([]string, 0, len(s.names)+1)
	path = append(path, s.names...)
	return s.src.Lookup(append(path, key))
}

// Layered consults its sources in order and returns the first hit.
type Layered []Source

func (l Layered) Lookup(path []string) (any, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(path); ok {
			return v, true
		}
	}
	return nil, false
}

// EnvSeparator joins path segments in environment variable names, the
// convention used by hosts that read "Logging__LogLevel__Default".
const EnvSeparator = "__"

// Env reads overrides from the process environment. A lookup for
// ["Logging", "LogLevel", "Default"] with Prefix "APP_" reads
// APP_Logging__LogLevel__Default.
type Env struct {
	Prefix string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func (e Env) Lookup(path []string) (any, bool) {
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(e.Prefix + strings.Join(path, EnvSeparator))
	if !ok {
		return nil, false
	}
	return v, true
}
