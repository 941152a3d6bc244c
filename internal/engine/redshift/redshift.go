// Package redshift is the Amazon Redshift engine adapter. Redshift speaks the
// PostgreSQL wire protocol, so connections go through pgx and driver errors
// arrive as libpq-style text or *pgconn.PgError values.
package redshift

import (
	"strings"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/sqltype"
)

const (
	Name       engine.Name = "redshift"
	EngineName             = "Amazon Redshift"
)

// Engine implements engine.Spec for Redshift.
type Engine struct{}

// New returns the Redshift adapter.
func New() *Engine {
	return &Engine{}
}

func (*Engine) Name() engine.Name        { return Name }
func (*Engine) EngineName() string       { return EngineName }
func (*Engine) Dialect() sqltype.Dialect { return sqltype.DialectRedshift }
func (*Engine) Catalog() *engine.Catalog { return catalog }
func (*Engine) Aliases() []string        { return []string{"postgres", "postgresql"} }
func (*Engine) Drivers() []string        { return []string{"psycopg2", "redshift_connector"} }

// ExtractErrors matches raw against the Redshift catalog.
func (*Engine) ExtractErrors(raw string, connParams engine.Params) []errs.Error {
	return catalog.Extract(raw, connParams)
}

// ColumnTypeToString renders d in upper case. Redshift has no column-level
// character sets, so charset and collation are dropped whatever the dialect.
func (*Engine) ColumnTypeToString(d sqltype.Descriptor, dialect sqltype.Dialect) string {
	dialect.CharsetClause = false
	return strings.ToUpper(sqltype.Compile(d, dialect))
}

var (
	_ engine.Spec             = (*Engine)(nil)
	_ engine.BackendSupporter = (*Engine)(nil)
)
