// Package bulkload describes tabular data about to be inserted into a
// database table, column by column, so engine adapters can decide which
// columns need an explicit SQL type.
package bulkload

// Kind is the declared element type of a column.
type Kind int

const (
	KindObject Kind = iota // untyped / mixed values
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "object"
	}
}

// Column is one named column of a frame. A nil entry in Values is a null.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// AllNull reports whether the column carries no value at all. An empty
// column counts as all-null.
func (c Column) AllNull() bool {
	for _, v := range c.Values {
		if v != nil {
			return false
		}
	}
	return true
}
