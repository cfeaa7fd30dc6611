package ingest

import (
	"errors"

	"github.com/agentic-research/settingsgen/api"
	"github.com/agentic-research/settingsgen/internal/infer"
	"github.com/agentic-research/settingsgen/internal/jsonc"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"
)

// Build strips comment lines from jsonText, validates it and walks it into a
// schema tree. The returned root is a Section with an empty name.
func Build(jsonText string) (*api.Section, error) {
	text := jsonc.Strip(jsonText)

	if err := validate(text); err != nil {
		return nil, err
	}

	doc := gjson.Parse(text.JSON)
	if !doc.IsObject() {
		return nil, &api.ParseError{Msg: "document root must be a JSON object"}
	}

	root := &api.Section{}
	buildSection(root, doc)
	return root, nil
}

// validate parses with ojg to get a positioned error; gjson does the
// order-preserving walk but only reports validity as a bool.
func validate(text jsonc.Text) error {
	if _, err := oj.ParseString(text.JSON); err != nil {
		perr := &api.ParseError{Msg: err.Error(), Err: err}
		var ojErr *oj.ParseError
		if errors.As(err, &ojErr) {
			perr.Line = text.OriginalLine(ojErr.Line)
			perr.Column = ojErr.Column
			perr.Msg = ojErr.Message
		}
		return perr
	}
	return nil
}

// buildSection fills sec with one child per key of obj. A repeated key
// replaces the earlier child in place.
func buildSection(sec *api.Section, obj gjson.Result) {
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		child := buildNode(sec, name, value)
		if i, dup := index[name]; dup {
			sec.Children[i] = child
			return true
		}
		index[name] = len(sec.Children)
		sec.Children = append(sec.Children, child)
		return true
	})
}

func buildNode(parent *api.Section, name string, value gjson.Result) api.Node {
	if value.IsObject() {
		path := make([]string, 0, len(parent.Path)+1)
		path = append(path, parent.Path...)
		path = append(path, name)

		child := &api.Section{
			Name:          name,
			Path:          path,
			LogLevelScope: infer.IsLogLevelKey(name),
		}
		buildSection(child, value)
		return child
	}
	return &api.Field{
		Name: name,
		Type: infer.Infer(name, value, parent.LogLevelScope),
	}
}
