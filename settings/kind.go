package settings

// Kind records the inferred type of a catalog entry.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDouble
	KindBool
	KindStringArray
	KindIntArray
	KindDoubleArray
	KindBoolArray
	KindLogLevel
	KindObject
)

var kindNames = [...]string{
	KindString:      "string",
	KindInt:         "int",
	KindDouble:      "float64",
	KindBool:        "bool",
	KindStringArray: "[]string",
	KindIntArray:    "[]int",
	KindDoubleArray: "[]float64",
	KindBoolArray:   "[]bool",
	KindLogLevel:    "settings.LogLevel",
	KindObject:      "any",
}

// String returns the Go type the kind is read as.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
