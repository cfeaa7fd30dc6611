package ingest

import (
	"testing"

	"github.com/agentic-research/settingsgen/api"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appSettings = `{
  // ASP.NET style settings
  "Logging": {
    "LogLevel": {
      "Default": "Information",
      "Microsoft.AspNetCore": "Warning",
      "Verbosity": 3
    }
  },
  "AllowedHosts": "*",
  "Service": {
    "Url": "http://x//y",
    "Retries": 3,
    "Ratio": 0.25,
    "Enabled": true,
    "Tags": ["a", "b"],
    "DefaultLogLevel": "Debug"
  }
}`

func TestBuild_Tree(t *testing.T) {
	root, err := Build(appSettings)
	require.NoError(t, err)

	want := &api.Section{
		Children: []api.Node{
			&api.Section{
				Name: "Logging",
				Path: []string{"Logging"},
				Children: []api.Node{
					&api.Section{
						Name:          "LogLevel",
						Path:          []string{"Logging", "LogLevel"},
						LogLevelScope: true,
						Children: []api.Node{
							&api.Field{Name: "Default", Type: api.TypeLogLevel},
							&api.Field{Name: "Microsoft.AspNetCore", Type: api.TypeLogLevel},
							&api.Field{Name: "Verbosity", Type: api.TypeLogLevel},
						},
					},
				},
			},
			&api.Field{Name: "AllowedHosts", Type: api.TypeString},
			&api.Section{
				Name: "Service",
				Path: []string{"Service"},
				Children: []api.Node{
					&api.Field{Name: "Url", Type: api.TypeString},
					&api.Field{Name: "Retries", Type: api.TypeInt},
					&api.Field{Name: "Ratio", Type: api.TypeDouble},
					&api.Field{Name: "Enabled", Type: api.TypeBool},
					&api.Field{Name: "Tags", Type: api.TypeStringArray},
					&api.Field{Name: "DefaultLogLevel", Type: api.TypeLogLevel},
				},
			},
		},
	}

	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_LogLevelScopeIsOneLevelDeep(t *testing.T) {
	root, err := Build(`{
  "LogLevel": {
    "Default": 2,
    "Nested": { "Count": 1, "Name": "x" }
  }
}`)
	require.NoError(t, err)

	logLevel := root.Sections()[0]
	assert.True(t, logLevel.LogLevelScope)
	assert.Equal(t, api.TypeLogLevel, logLevel.Fields()[0].Type)

	nested := logLevel.Sections()[0]
	assert.False(t, nested.LogLevelScope)
	require.Len(t, nested.Fields(), 2)
	assert.Equal(t, api.TypeInt, nested.Fields()[0].Type)
	assert.Equal(t, api.TypeString, nested.Fields()[1].Type)
}

func TestBuild_PreservesKeyOrder(t *testing.T) {
	root, err := Build(`{"Z": 1, "A": {"y": 1, "b": 2}, "M": true}`)
	require.NoError(t, err)

	var names []string
	for _, c := range root.Children {
		names = append(names, c.NodeName())
	}
	assert.Equal(t, []string{"Z", "A", "M"}, names)

	var inner []string
	for _, c := range root.Sections()[0].Children {
		inner = append(inner, c.NodeName())
	}
	assert.Equal(t, []string{"y", "b"}, inner)
}

func TestBuild_DuplicateKeyReplacesInPlace(t *testing.T) {
	root, err := Build(`{"A": 1, "B": 2, "A": "later"}`)
	require.NoError(t, err)

	require.Len(t, root.Children, 2)
	assert.Equal(t, &api.Field{Name: "A", Type: api.TypeString}, root.Children[0])
	assert.Equal(t, "B", root.Children[1].NodeName())
}

func TestBuild_EmptyObjects(t *testing.T) {
	root, err := Build(`{"Empty": {}}`)
	require.NoError(t, err)
	require.Len(t, root.Sections(), 1)
	assert.Empty(t, root.Sections()[0].Children)

	root, err = Build(`{}`)
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestBuild_ParseErrors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		_, err := Build("{\n// comment\n  \"A\": ,\n}")
		require.Error(t, err)

		var perr *api.ParseError
		require.ErrorAs(t, err, &perr)
		// Line numbers point at the unstripped source.
		assert.Equal(t, 3, perr.Line)
	})
	t.Run("root is not an object", func(t *testing.T) {
		_, err := Build(`[1, 2]`)
		var perr *api.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Error(), "root must be a JSON object")
	})
	t.Run("empty input", func(t *testing.T) {
		_, err := Build("// only a comment\n")
		var perr *api.ParseError
		require.ErrorAs(t, err, &perr)
	})
}
