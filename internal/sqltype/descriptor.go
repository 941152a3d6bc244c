// Package sqltype describes column types as reported by schema introspection
// and compiles them the way each SQL dialect writes them in DDL.
//
// Engine renderers build on Compile to produce the canonical, upper-case
// type string shown to users.
package sqltype

import (
	"fmt"
	"strings"
)

// Descriptor is a compound column type: a base name plus optional length,
// precision, enumerated values, numeric modifiers and string attributes.
type Descriptor struct {
	Name      string   `json:"name"`
	Length    *int     `json:"length,omitempty"`
	Precision *int     `json:"precision,omitempty"`
	Scale     *int     `json:"scale,omitempty"`
	Values    []string `json:"values,omitempty"`
	Unsigned  bool     `json:"unsigned,omitempty"`
	Zerofill  bool     `json:"zerofill,omitempty"`
	Charset   string   `json:"charset,omitempty"`
	Collation string   `json:"collation,omitempty"`
}

// Option customises a Descriptor built with one of the constructors.
type Option func(*Descriptor)

// WithCharset sets the character set.
func WithCharset(cs string) Option {
	return func(d *Descriptor) { d.Charset = cs }
}

// WithCollation sets the collation.
func WithCollation(c string) Option {
	return func(d *Descriptor) { d.Collation = c }
}

// New builds a descriptor with an upper-cased name.
func New(name string, opts ...Option) Descriptor {
	d := Descriptor{Name: strings.ToUpper(strings.TrimSpace(name))}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func sized(name string, length int, opts []Option) Descriptor {
	d := New(name, opts...)
	d.Length = &length
	return d
}

func Varchar(length int, opts ...Option) Descriptor  { return sized(TypeVarchar, length, opts) }
func NVarchar(length int, opts ...Option) Descriptor { return sized(TypeNVarchar, length, opts) }
func Char(length int, opts ...Option) Descriptor     { return sized(TypeChar, length, opts) }
func NChar(length int, opts ...Option) Descriptor    { return sized(TypeNChar, length, opts) }
func Text(opts ...Option) Descriptor                 { return New(TypeText, opts...) }
func Date() Descriptor                               { return New(TypeDate) }

// Numeric builds NUMERIC(precision, scale).
func Numeric(precision, scale int) Descriptor {
	d := New(TypeNumeric)
	d.Precision = &precision
	d.Scale = &scale
	return d
}

// Base type names known to the compiler.
const (
	TypeChar       = "CHAR"
	TypeVarchar    = "VARCHAR"
	TypeNChar      = "NCHAR"
	TypeNVarchar   = "NVARCHAR"
	TypeText       = "TEXT"
	TypeTinyText   = "TINYTEXT"
	TypeMediumText = "MEDIUMTEXT"
	TypeLongText   = "LONGTEXT"
	TypeDate       = "DATE"
	TypeTime       = "TIME"
	TypeDateTime   = "DATETIME"
	TypeTimestamp  = "TIMESTAMP"
	TypeTinyInt    = "TINYINT"
	TypeSmallInt   = "SMALLINT"
	TypeMediumInt  = "MEDIUMINT"
	TypeInteger    = "INTEGER"
	TypeBigInt     = "BIGINT"
	TypeNumeric    = "NUMERIC"
	TypeDecimal    = "DECIMAL"
	TypeFloat      = "FLOAT"
	TypeReal       = "REAL"
	TypeDouble     = "DOUBLE PRECISION"
	TypeBoolean    = "BOOLEAN"
	TypeEnum       = "ENUM"
	TypeSet        = "SET"
)

type family int

const (
	familyUnknown family = iota
	familyString
	familyNational
	familyNumeric
	familyTemporal
	familyOther
)

var families = map[string]family{
	TypeChar:       familyString,
	TypeVarchar:    familyString,
	TypeText:       familyString,
	TypeTinyText:   familyString,
	TypeMediumText: familyString,
	TypeLongText:   familyString,
	TypeEnum:       familyString,
	TypeSet:        familyString,
	TypeNChar:      familyNational,
	TypeNVarchar:   familyNational,
	TypeNumeric:    familyNumeric,
	TypeDecimal:    familyNumeric,
	TypeFloat:      familyNumeric,
	TypeDate:       familyTemporal,
	TypeTime:       familyTemporal,
	TypeDateTime:   familyTemporal,
	TypeTimestamp:  familyTemporal,
	TypeTinyInt:    familyOther,
	TypeSmallInt:   familyOther,
	TypeMediumInt:  familyOther,
	TypeInteger:    familyOther,
	TypeBigInt:     familyOther,
	TypeReal:       familyOther,
	TypeDouble:     familyOther,
	TypeBoolean:    familyOther,
}

func (d Descriptor) family() family {
	return families[strings.ToUpper(d.Name)]
}

// Known reports whether the compiler has rendering rules for d.
func (d Descriptor) Known() bool {
	return d.family() != familyUnknown
}

// IsString reports whether d holds character data (national types included).
func (d Descriptor) IsString() bool {
	f := d.family()
	return f == familyString || f == familyNational
}

// String is the dialect-independent rendering: name, parenthesized
// arguments or values, then modifiers. Charset and collation are never part
// of it.
func (d Descriptor) String() string {
	if d.Name == "" {
		return "NULL"
	}
	return d.Name + d.args() + d.modifiers()
}

func (d Descriptor) args() string {
	switch {
	case len(d.Values) > 0:
		quoted := make([]string, len(d.Values))
		for i, v := range d.Values {
			quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		return "(" + strings.Join(quoted, ",") + ")"
	case d.Precision != nil && d.Scale != nil:
		return fmt.Sprintf("(%d, %d)", *d.Precision, *d.Scale)
	case d.Precision != nil:
		return fmt.Sprintf("(%d)", *d.Precision)
	case d.Length != nil:
		return fmt.Sprintf("(%d)", *d.Length)
	}
	return ""
}

func (d Descriptor) modifiers() string {
	var s string
	if d.Unsigned {
		s += " UNSIGNED"
	}
	if d.Zerofill {
		s += " ZEROFILL"
	}
	return s
}
