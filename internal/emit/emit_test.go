package emit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/agentic-research/settingsgen/api"
	"github.com/agentic-research/settingsgen/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appSettings = `{
  "Logging": {
    "LogLevel": {
      "Default": "Information",
      "Microsoft.AspNetCore": "Warning"
    }
  },
  "AllowedHosts": "*",
  "Service": {
    "Url": "http://x//y",
    "Retries": 3,
    "Ratio": 0.25,
    "Enabled": true,
    "Tags": ["a", "b"],
    "Ports": [80, 443],
    "Weights": [0.5],
    "Flags": [true],
    "Nothing": null,
    "Auth": {
      "ApiKey": "secret"
    }
  }
}`

func build(t *testing.T, text string) *api.Section {
	t.Helper()
	root, err := ingest.Build(text)
	require.NoError(t, err)
	return root
}

func emitAll(t *testing.T, text, namespace, note string) Output {
	t.Helper()
	out, err := Emit(build(t, text), namespace, note)
	require.NoError(t, err)
	return out
}

func parseGo(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err, src)
	return f
}

// catalogIndex records what the Definitions literal makes selectable.
type catalogIndex struct {
	paths   []string
	members map[string]bool
}

func indexCatalog(t *testing.T, src string) catalogIndex {
	t.Helper()
	idx := catalogIndex{members: make(map[string]bool)}
	f := parseGo(t, src)
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Names[0].Name != definitionsVar {
				continue
			}
			lit, ok := vs.Values[0].(*ast.CompositeLit)
			require.True(t, ok)
			walkLiteral(t, lit, definitionsVar, nil, &idx)
			return idx
		}
	}
	t.Fatal("no Definitions var in catalog")
	return idx
}

func walkLiteral(t *testing.T, lit *ast.CompositeLit, sel string, names []string, idx *catalogIndex) {
	for _, elt := range lit.Elts {
		kv := elt.(*ast.KeyValueExpr)
		member := sel + "." + kv.Key.(*ast.Ident).Name
		idx.members[member] = true
		if child, ok := kv.Value.(*ast.CompositeLit); ok {
			path := append(append([]string(nil), names...), literalName(t, child))
			idx.paths = append(idx.paths, strings.Join(path, "."))
			walkLiteral(t, child, member, path, idx)
		}
	}
}

func literalName(t *testing.T, lit *ast.CompositeLit) string {
	for _, elt := range lit.Elts {
		kv := elt.(*ast.KeyValueExpr)
		if kv.Key.(*ast.Ident).Name != "Name" {
			continue
		}
		name, err := strconv.Unquote(kv.Value.(*ast.BasicLit).Value)
		require.NoError(t, err)
		return name
	}
	t.Fatal("section literal without Name")
	return ""
}

// catalogRefs lists every selector chain rooted at Definitions.
func catalogRefs(t *testing.T, src string) []string {
	t.Helper()
	var refs []string
	ast.Inspect(parseGo(t, src), func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if chain, ok := selectorChain(sel); ok && strings.HasPrefix(chain, definitionsVar+".") {
			refs = append(refs, chain)
		}
		return true
	})
	return refs
}

func selectorChain(e ast.Expr) (string, bool) {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name, true
	case *ast.SelectorExpr:
		base, ok := selectorChain(x.X)
		if !ok {
			return "", false
		}
		return base + "." + x.Sel.Name, true
	}
	return "", false
}

func TestEmit_CatalogMirrorsSchema(t *testing.T) {
	root := build(t, appSettings)
	out, err := Emit(root, "My.App", "")
	require.NoError(t, err)

	idx := indexCatalog(t, out.Catalog)
	assert.Equal(t, root.DottedPaths(), idx.paths)
	assert.Equal(t, []string{"Logging", "Logging.LogLevel", "Service", "Service.Auth"}, idx.paths)
}

func TestEmit_AccessorReferencesResolve(t *testing.T) {
	for name, text := range map[string]string{
		"sample":     appSettings,
		"collisions": collisions,
		"empty":      `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			out := emitAll(t, text, "App", "")
			idx := indexCatalog(t, out.Catalog)
			refs := catalogRefs(t, out.Accessor)
			for _, ref := range refs {
				assert.True(t, idx.members[ref], "accessor references %s, missing from catalog", ref)
			}
		})
	}
}

func TestEmit_Header(t *testing.T) {
	out := emitAll(t, appSettings, "My.App", "regenerate with make gen")

	for _, src := range []string{out.Catalog, out.Accessor} {
		assert.True(t, strings.HasPrefix(src,
			"// Code generated by settingsgen. DO NOT EDIT.\n// regenerate with make gen\n"), src)
		assert.Contains(t, src, "// Namespace: My.App\n")
		assert.Contains(t, src, "\npackage app\n")
	}

	plain := emitAll(t, appSettings, "My.App", "")
	assert.True(t, strings.HasPrefix(plain.Catalog,
		"// Code generated by settingsgen. DO NOT EDIT.\n\n// Namespace: My.App\n"))
}

func TestEmit_DottedKeysSanitized(t *testing.T) {
	out := emitAll(t, appSettings, "App", "")

	assert.Contains(t, out.Catalog, "Microsoft_AspNetCoreKey")
	assert.Contains(t, out.Catalog, `"Microsoft.AspNetCore"`)
	assert.Contains(t, out.Accessor,
		"func (a *Logging_LogLevelAccessor) GetMicrosoft_AspNetCore() settings.LogLevel {")
	assert.Contains(t, out.Accessor, "Definitions.Logging.LogLevel.Microsoft_AspNetCoreKey")
}

func TestEmit_GetterTypes(t *testing.T) {
	out := emitAll(t, appSettings, "App", "")

	for _, sig := range []string{
		"func (a *AppSettingsAccessor) GetAllowedHosts() string {",
		"func (a *ServiceAccessor) GetUrl() string {",
		"func (a *ServiceAccessor) GetRetries() int {",
		"func (a *ServiceAccessor) GetRatio() float64 {",
		"func (a *ServiceAccessor) GetEnabled() bool {",
		"func (a *ServiceAccessor) GetTags() []string {",
		"func (a *ServiceAccessor) GetPorts() []int {",
		"func (a *ServiceAccessor) GetWeights() []float64 {",
		"func (a *ServiceAccessor) GetFlags() []bool {",
		"func (a *ServiceAccessor) GetNothing() any {",
		"func (a *Logging_LogLevelAccessor) GetDefault() settings.LogLevel {",
	} {
		assert.Contains(t, out.Accessor, sig)
	}
	assert.Contains(t, out.Accessor, "settings.Ints(a.scope, Definitions.Service.PortsKey)")
	assert.Contains(t, out.Catalog, "settings.KindDoubleArray")
}

func TestEmit_GetterDropsOnlyLastKey(t *testing.T) {
	out := emitAll(t, appSettings, "App", "")

	assert.Contains(t, out.Catalog, "ApiKeyKey")
	assert.Contains(t, out.Catalog, "ApiKeyType")
	assert.Contains(t, out.Accessor, "func (a *Service_AuthAccessor) GetApiKey() string {")
}

func TestEmit_SectionScopes(t *testing.T) {
	out := emitAll(t, appSettings, "App", "")

	assert.Contains(t, out.Accessor, "func NewAppSettingsAccessor(src settings.Source) *AppSettingsAccessor {")
	assert.Contains(t, out.Accessor,
		"settings.Section(src, Definitions.Service.Name, Definitions.Service.Auth.Name)")
	assert.Regexp(t, `Auth:\s+newService_AuthAccessor\(src\),`, out.Accessor)
}

const collisions = `{
  "A": {
    "Path": {"X": 1},
    "Name": "field called Name",
    "FooKey": {},
    "Foo": true,
    "GetBar": {},
    "Bar": 1,
    "B": {"Z": 1}
  },
  "A.B": {"C": 1},
  "a": {"B": {"D": 2}},
  "AppSettings": {},
  "9lives": 1,
  "": 2
}`

func TestEmit_Collisions(t *testing.T) {
	out := emitAll(t, collisions, "App", "")

	// Reserved member names are suffixed.
	assert.Contains(t, out.Catalog, "Path_2")
	// A field keeps its own name next to the section's Name member.
	assert.Contains(t, out.Catalog, "NameKey")
	// FooKey is taken by a subsection, so field Foo moves aside in both files.
	assert.Contains(t, out.Catalog, "Foo_2Key")
	assert.Contains(t, out.Accessor, "GetFoo_2() bool")
	assert.Contains(t, out.Accessor, "GetBar_2() int")

	// Section A.B and top-level "A.B" share a type name; "a" shares A's
	// member name.
	assert.Contains(t, out.Catalog, "type A_BDefinitions struct")
	assert.Contains(t, out.Catalog, "type A_B_2Definitions struct")
	assert.Contains(t, out.Catalog, "A_2 ")
	assert.Contains(t, out.Catalog, "type AppSettings_2Definitions struct")
	assert.Contains(t, out.Catalog, "X9livesKey")
	assert.Contains(t, out.Catalog, "XKey")
}

func TestEmit_EmptyDocument(t *testing.T) {
	out := emitAll(t, `{}`, "Empty", "")

	assert.NotContains(t, out.Catalog, "import")
	assert.Contains(t, out.Catalog, "var Definitions = AppSettingsDefinitions{")
	assert.Contains(t, out.Accessor, "func NewAppSettingsAccessor(")
}

func TestEmit_Deterministic(t *testing.T) {
	first := emitAll(t, appSettings, "App", "note")
	for range 5 {
		assert.Equal(t, first, emitAll(t, appSettings, "App", "note"))
	}
}

func TestEmit_SingleArtifacts(t *testing.T) {
	root := build(t, appSettings)
	both, err := Emit(root, "App", "")
	require.NoError(t, err)

	catalog, err := EmitCatalog(root, "App", "")
	require.NoError(t, err)
	accessor, err := EmitAccessor(root, "App", "")
	require.NoError(t, err)

	assert.Equal(t, both.Catalog, catalog)
	assert.Equal(t, both.Accessor, accessor)
}

func TestExported(t *testing.T) {
	tests := map[string]string{
		"Default":              "Default",
		"allowedHosts":         "AllowedHosts",
		"Microsoft.AspNetCore": "Microsoft_AspNetCore",
		"my-key name":          "My_key_name",
		"9lives":               "X9lives",
		"_hidden":              "X_hidden",
		"":                     "X",
		"état":                 "État",
	}
	for in, want := range tests {
		assert.Equal(t, want, Exported(in), in)
	}
}

func TestGetterName(t *testing.T) {
	assert.Equal(t, "GetApiKey", GetterName("ApiKeyKey"))
	assert.Equal(t, "GetUrl", GetterName("UrlKey"))
	assert.Equal(t, "GetKeyring", GetterName("KeyringKey"))
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"App":             "app",
		"My.App.Settings": "settings",
		"Company.Web-Api": "web_api",
		"App.2024":        "_2024",
		"":                "settings",
		"Trailing.":       "settings",
		"  Spaced.Name  ": "name",
		"Company.Go":      "go_",
		"App.Default":     "default_",
		"My.Package":      "package_",
		"App.Map":         "map_",
		"Acme.Type":       "type_",
	}
	for in, want := range tests {
		assert.Equal(t, want, PackageName(in), in)
	}
}
