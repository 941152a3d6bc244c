package redshift

import (
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/koustreak/dbspec/internal/bulkload"
	"github.com/koustreak/dbspec/internal/sqltype"
)

// MaxVarcharLength is the widest NVARCHAR Redshift accepts. Without an
// explicit type, string columns are created as VARCHAR(256) and longer
// values are rejected.
const MaxVarcharLength = 65535

// InsertTypes returns the explicit column types to use when loading columns
// into a table. Columns left out are typed by the driver: all-null columns
// and every column that is not a declared string column.
func InsertTypes(columns []bulkload.Column) map[string]sqltype.Descriptor {
	types := make(map[string]sqltype.Descriptor)
	for _, c := range columns {
		if c.AllNull() || c.Kind != bulkload.KindString {
			continue
		}
		types[c.Name] = sqltype.NVarchar(MaxVarcharLength)
	}
	return types
}

// inferred is what the driver picks for columns InsertTypes leaves out.
var inferred = map[bulkload.Kind]sqltype.Descriptor{
	bulkload.KindObject: sqltype.Varchar(256),
	bulkload.KindString: sqltype.Varchar(256),
	bulkload.KindInt:    sqltype.New(sqltype.TypeBigInt),
	bulkload.KindFloat:  sqltype.New(sqltype.TypeDouble),
	bulkload.KindBool:   sqltype.New(sqltype.TypeBoolean),
	bulkload.KindTime:   sqltype.New(sqltype.TypeTimestamp),
}

// CreateTableStatement renders the CREATE TABLE a load of columns into
// schema.table would issue. schema may be empty.
func CreateTableStatement(schema, table string, columns []bulkload.Column) string {
	ident := pgx.Identifier{table}
	if schema != "" {
		ident = pgx.Identifier{schema, table}
	}

	e := New()
	explicit := InsertTypes(columns)

	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		d, ok := explicit[c.Name]
		if !ok {
			d = inferred[c.Kind]
		}
		defs = append(defs, pgx.Identifier{c.Name}.Sanitize()+" "+e.ColumnTypeToString(d, e.Dialect()))
	}

	return "CREATE TABLE " + ident.Sanitize() + " (\n\t" + strings.Join(defs, ",\n\t") + "\n)"
}
