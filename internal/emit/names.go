package emit

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentic-research/settingsgen/api"
)

const (
	rootTypeBase   = "AppSettings"
	definitionsVar = "Definitions"
	keySuffix      = "Key"
	typeSuffix     = "Type"
	getterPrefix   = "Get"
)

// Sanitize turns a raw JSON key into an identifier fragment: "." becomes
// "_" (keys such as "Microsoft.AspNetCore" are legal JSON), as does every
// other rune that cannot appear in a Go identifier.
func Sanitize(raw string) string {
	raw = strings.ReplaceAll(raw, ".", "_")
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, raw)
}

// Exported returns the sanitized key as an exported Go identifier. A
// leading lower-case letter is upper-cased; anything else that cannot start
// an exported name gets an "X" prefix.
func Exported(raw string) string {
	s := Sanitize(raw)
	if s == "" {
		return "X"
	}
	r, size := utf8.DecodeRuneInString(s)
	if up := unicode.ToUpper(r); unicode.IsUpper(up) {
		return string(up) + s[size:]
	}
	return "X" + s
}

// GetterName derives the getter from a catalog key identifier by removing
// the last "Key" only, so "ApiKeyKey" yields "GetApiKey".
func GetterName(keyIdent string) string {
	return getterPrefix + replaceLast(keyIdent, keySuffix, "")
}

func replaceLast(s, find, repl string) string {
	i := strings.LastIndex(s, find)
	if i < 0 {
		return s
	}
	return s[:i] + repl + s[i+len(find):]
}

// PackageName derives the Go package clause from a dotted namespace: its
// last segment, lower-cased and sanitized. Go keywords get a trailing "_".
func PackageName(namespace string) string {
	segs := strings.Split(strings.TrimSpace(namespace), ".")
	name := strings.ToLower(Sanitize(segs[len(segs)-1]))
	if name == "" || name == "_" {
		return "settings"
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		name = "_" + name
	}
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

// namer hands out identifiers that are unique within one Go scope.
type namer struct {
	used map[string]bool
}

func newNamer(reserved ...string) *namer {
	n := &namer{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[r] = true
	}
	return n
}

// claim returns base, or base_2, base_3... such that every name produced by
// derive is free, and marks them used.
func (n *namer) claim(base string, derive func(string) []string) string {
	for i := 1; ; i++ {
		candidate := base
		if i > 1 {
			candidate = base + "_" + strconv.Itoa(i)
		}
		names := derive(candidate)
		free := true
		for _, name := range names {
			if n.used[name] {
				free = false
				break
			}
		}
		if free {
			for _, name := range names {
				n.used[name] = true
			}
			return candidate
		}
	}
}

func self(s string) []string { return []string{s} }

// sectionPlan carries every identifier both emitters need for one section.
// It is computed once so the two artifacts always agree.
type sectionPlan struct {
	*api.Section

	// Ident is the member name inside the parent; empty for the root.
	Ident string
	// identPath is Ident for every section from the root down.
	identPath []string

	CatalogType  string
	AccessorType string
	AccessorCtor string

	Items []item
}

type item struct {
	Section *sectionPlan
	Field   *fieldPlan
}

type fieldPlan struct {
	*api.Field

	KeyIdent  string
	TypeIdent string
	Getter    string
}

// plan walks the schema and allocates identifiers. Section member names are
// unique per scope across both artifacts (catalog: Name, <F>Key, <F>Type,
// child sections; accessor: Path, Get<F>, child sections); type names are
// unique per package.
func plan(root *api.Section) *sectionPlan {
	types := newNamer()
	return planSection(root, "", nil, types)
}

func planSection(sec *api.Section, ident string, parentPath []string, types *namer) *sectionPlan {
	identPath := append(append([]string(nil), parentPath...), ident)
	typeBase := rootTypeBase
	if sec.IsRoot() {
		identPath = nil
		// NewAppSettingsAccessor is a package-level func.
		types.used[rootTypeBase] = true
		types.used["New"+rootTypeBase] = true
	} else {
		typeBase = types.claim(strings.Join(identPath, "_"), self)
	}

	p := &sectionPlan{
		Section:      sec,
		Ident:        ident,
		identPath:    identPath,
		CatalogType:  typeBase + "Definitions",
		AccessorType: typeBase + "Accessor",
	}
	if sec.IsRoot() {
		p.AccessorCtor = "New" + p.AccessorType
	} else {
		p.AccessorCtor = "new" + p.AccessorType
	}

	members := newNamer("Name", "Path")
	for _, child := range sec.Children {
		switch c := child.(type) {
		case *api.Section:
			id := members.claim(Exported(c.Name), self)
			p.Items = append(p.Items, item{Section: planSection(c, id, identPath, types)})
		case *api.Field:
			base := members.claim(Exported(c.Name), func(b string) []string {
				key := b + keySuffix
				return []string{key, b + typeSuffix, GetterName(key)}
			})
			key := base + keySuffix
			p.Items = append(p.Items, item{Field: &fieldPlan{
				Field:     c,
				KeyIdent:  key,
				TypeIdent: base + typeSuffix,
				Getter:    GetterName(key),
			}})
		}
	}
	return p
}

// DefinitionsRef is the expression selecting this section in the catalog
// variable, e.g. Definitions.Logging.LogLevel.
func (p *sectionPlan) DefinitionsRef() string {
	return strings.Join(append([]string{definitionsVar}, p.identPath...), ".")
}

// NameRefs lists the catalog Name selectors from the root down to p.
func (p *sectionPlan) NameRefs() []string {
	refs := make([]string, len(p.identPath))
	for i := range p.identPath {
		sel := append([]string{definitionsVar}, p.identPath[:i+1]...)
		refs[i] = strings.Join(sel, ".") + ".Name"
	}
	return refs
}

// HasFields reports whether any section in the subtree declares a field.
func (p *sectionPlan) HasFields() bool {
	for _, it := range p.Items {
		if it.Field != nil || it.Section.HasFields() {
			return true
		}
	}
	return false
}
