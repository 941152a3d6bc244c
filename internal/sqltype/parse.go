package sqltype

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidType is returned by Parse for strings that are not a type.
var ErrInvalidType = errors.New("invalid column type")

var typeRE = regexp.MustCompile(`(?i)^\s*([a-z][a-z0-9_ ]*?)\s*` +
	`(?:\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\)|\(((?:\s*'(?:[^']|'')*'\s*,?)+)\))?` +
	`((?:\s+(?:unsigned|signed|zerofill))*)` +
	`(?:\s+(?:character\s+set|charset)\s+(\w+))?` +
	`(?:\s+collate\s+(\w+))?\s*$`)

var (
	valueRE      = regexp.MustCompile(`'((?:[^']|'')*)'`)
	leadingNameRE = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)`)
)

// aliases folds the spellings information_schema and DDL use onto base names.
var aliases = map[string]string{
	"CHARACTER VARYING":          TypeVarchar,
	"CHARACTER":                  TypeChar,
	"BPCHAR":                     TypeChar,
	"NATIONAL VARCHAR":           TypeNVarchar,
	"NATIONAL CHARACTER VARYING": TypeNVarchar,
	"NATIONAL CHAR":              TypeNChar,
	"NATIONAL CHARACTER":         TypeNChar,
	"INT":                        TypeInteger,
	"INT4":                       TypeInteger,
	"INT8":                       TypeBigInt,
	"INT2":                       TypeSmallInt,
	"BOOL":                       TypeBoolean,
	"FLOAT8":                     TypeDouble,
	"DOUBLE":                     TypeDouble,
	"FLOAT4":                     TypeReal,
}

// Parse reads a type string such as "varchar(255)",
// "national varchar(128)", "varchar(64) character set latin1",
// "int(10) unsigned" or "enum('a','b')".
func Parse(s string) (Descriptor, error) {
	m := typeRE.FindStringSubmatch(s)
	if m == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}

	d := Descriptor{Name: canonicalName(m[1]), Charset: m[6], Collation: m[7]}

	first, second, err := parseArgs(m[2], m[3])
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %q: %v", ErrInvalidType, s, err)
	}
	switch {
	case first != nil && second != nil:
		d.Precision, d.Scale = first, second
	case first != nil && d.family() == familyNumeric:
		d.Precision = first
	case first != nil:
		d.Length = first
	}

	if m[4] != "" {
		for _, v := range valueRE.FindAllStringSubmatch(m[4], -1) {
			d.Values = append(d.Values, strings.ReplaceAll(v[1], "''", "'"))
		}
	}

	for _, mod := range strings.Fields(strings.ToLower(m[5])) {
		switch mod {
		case "unsigned":
			d.Unsigned = true
		case "zerofill":
			d.Zerofill = true
		}
	}
	return d, nil
}

// ParseLenient is Parse for display paths. A string Parse rejects keeps its
// leading identifier as a bare type name so it still renders; only input
// without one is an error.
func ParseLenient(s string) (Descriptor, error) {
	d, err := Parse(s)
	if err == nil {
		return d, nil
	}
	m := leadingNameRE.FindStringSubmatch(s)
	if m == nil {
		return Descriptor{}, err
	}
	return Descriptor{Name: canonicalName(m[1])}, nil
}

func canonicalName(raw string) string {
	name := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}

func parseArgs(first, second string) (*int, *int, error) {
	var out [2]*int
	for i, raw := range []string{first, second} {
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, err
		}
		out[i] = &n
	}
	return out[0], out[1], nil
}
