package sqltype

import "strings"

// Dialect carries the DDL conventions of one SQL dialect.
type Dialect struct {
	Name string

	// NationalPrefix renders NCHAR/NVARCHAR as NATIONAL CHAR/NATIONAL VARCHAR.
	NationalPrefix bool

	// CharsetClause emits CHARACTER SET / COLLATE after string types.
	CharsetClause bool

	// NumericModifiers emits UNSIGNED / ZEROFILL after numeric types.
	NumericModifiers bool
}

var (
	DialectMySQL    = Dialect{Name: "mysql", NationalPrefix: true, CharsetClause: true, NumericModifiers: true}
	DialectPostgres = Dialect{Name: "postgresql"}
	DialectRedshift = Dialect{Name: "redshift"}
)

// DialectByName looks a dialect up by its Name. "postgres" is accepted for
// "postgresql".
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DialectMySQL.Name:
		return DialectMySQL, true
	case DialectPostgres.Name, "postgres":
		return DialectPostgres, true
	case DialectRedshift.Name:
		return DialectRedshift, true
	}
	return Dialect{}, false
}

// Compile renders d the way dialect writes it in a column definition.
// Unknown type names fall back to d.String().
func Compile(d Descriptor, dialect Dialect) string {
	if !d.Known() {
		return d.String()
	}

	name := strings.ToUpper(d.Name)
	if d.family() == familyNational && dialect.NationalPrefix {
		name = "NATIONAL " + strings.TrimPrefix(name, "N")
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(d.args())
	if dialect.NumericModifiers {
		b.WriteString(d.modifiers())
	}

	if dialect.CharsetClause && d.family() == familyString {
		if d.Charset != "" {
			b.WriteString(" CHARACTER SET ")
			b.WriteString(d.Charset)
		}
		if d.Collation != "" {
			b.WriteString(" COLLATE ")
			b.WriteString(d.Collation)
		}
	}
	return b.String()
}
