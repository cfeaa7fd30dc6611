package emit

import "github.com/agentic-research/settingsgen/api"

// goType describes how one inferred type surfaces in generated code.
type goType struct {
	Name    string // Go type of the getter result
	Getter  string // settings package function reading it
	Default string // value returned when the key is absent, for docs
}

var goTypes = map[api.Type]goType{
	api.TypeString:      {"string", "String", `""`},
	api.TypeInt:         {"int", "Int", "0"},
	api.TypeDouble:      {"float64", "Float64", "0"},
	api.TypeBool:        {"bool", "Bool", "false"},
	api.TypeStringArray: {"[]string", "Strings", "an empty slice"},
	api.TypeIntArray:    {"[]int", "Ints", "an empty slice"},
	api.TypeDoubleArray: {"[]float64", "Float64s", "an empty slice"},
	api.TypeBoolArray:   {"[]bool", "Bools", "an empty slice"},
	api.TypeLogLevel:    {"settings.LogLevel", "Level", "settings.LogLevelNone"},
	api.TypeObject:      {"any", "Value", "nil"},
}

func lookupGoType(t api.Type) goType {
	if gt, ok := goTypes[t]; ok {
		return gt
	}
	return goTypes[api.TypeObject]
}

// GoType is the Go type of the field's getter.
func (f *fieldPlan) GoType() string { return lookupGoType(f.Type).Name }

// RuntimeFunc is the settings getter used to read the field.
func (f *fieldPlan) RuntimeFunc() string { return lookupGoType(f.Type).Getter }

// Default describes the value returned when the key is absent.
func (f *fieldPlan) Default() string { return lookupGoType(f.Type).Default }

// KindConst is the settings.Kind constant recorded in the catalog.
func (f *fieldPlan) KindConst() string { return "Kind" + f.Type.String() }
