package watch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespace(t *testing.T) {
	root := filepath.FromSlash("/cfg")
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"root file", "App", "/cfg/appsettings.json", "App"},
		{"one level", "App", "/cfg/sub/appsettings.json", "App.sub"},
		{"nested", "App", "/cfg/a/b/appsettings.Development.json", "App.a.b"},
		{"outside root", "App", "/elsewhere/appsettings.json", "App"},
		{"empty base", "", "/cfg/sub/appsettings.json", "sub"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespace(root, tt.base, filepath.FromSlash(tt.path)))
		})
	}
}

func TestNamespace_TrailingSeparator(t *testing.T) {
	assert.Equal(t, "App.sub", Namespace(filepath.FromSlash("/cfg/"), "App",
		filepath.FromSlash("/cfg/sub/appsettings.json")))
}
